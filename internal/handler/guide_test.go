package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestGuideRoster_CRUD(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "walker", "")
	adminTok, _ := register(t, e, "boss", "admin")

	seeded := decodeList(t, do(e, http.MethodGet, "/api/guides", "", nil))
	if len(seeded) == 0 {
		t.Fatal("expected seeded roster entries")
	}

	newGuide := map[string]any{
		"name": "Ravi Sharma", "email": "ravi@example.com",
		"phone": "9876500000", "experience": "6 years",
	}
	if rec := do(e, http.MethodPost, "/api/guides", userTok, newGuide); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin create: status %d, want 403", rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/guides", adminTok, newGuide)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	id := created["id"].(string)
	if created["rating"] != 4.5 || created["status"] != "Active" {
		t.Errorf("defaults not applied: %v", created)
	}

	rec = do(e, http.MethodPut, "/api/guides/"+id, adminTok, map[string]any{
		"name": "Ravi S.", "email": "ravi@example.com",
		"phone": "9876500000", "experience": "7 years", "status": "Inactive",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d", rec.Code)
	}
	if updated := decode(t, rec); updated["status"] != "Inactive" {
		t.Errorf("status not updated: %v", updated)
	}

	if rec := do(e, http.MethodDelete, "/api/guides/"+id, adminTok, nil); rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, "/api/guides/"+id, adminTok, nil); rec.Code != http.StatusNotFound {
		t.Errorf("double delete: status %d, want 404", rec.Code)
	}

	after := decodeList(t, do(e, http.MethodGet, "/api/guides", "", nil))
	if len(after) != len(seeded) {
		t.Errorf("roster size %d after delete, want %d", len(after), len(seeded))
	}
}

func TestGuideRosterUpdate_RequiredFields(t *testing.T) {
	e, _ := newTestEnv(t)
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/guides", adminTok, map[string]any{
		"name": "Ravi Sharma", "email": "ravi@example.com",
		"phone": "9876500000", "experience": "6 years",
	})
	id := decode(t, rec)["id"].(string)

	// A PUT omitting required fields must not blank the entry.
	rec = do(e, http.MethodPut, "/api/guides/"+id, adminTok, map[string]any{"rating": 5.0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("partial update: status %d, want 400", rec.Code)
	}

	for _, g := range decodeList(t, do(e, http.MethodGet, "/api/guides", "", nil)) {
		if g["id"] == id && g["name"] != "Ravi Sharma" {
			t.Errorf("entry mutated by rejected update: %v", g)
		}
	}
}

func TestAbout_GetAndAdminUpdate(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "walker", "")
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodGet, "/api/about", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	if body := decode(t, rec); body["content"] == "" || body["content"] == nil {
		t.Error("about content empty on first read")
	}

	if rec := do(e, http.MethodPut, "/api/about", userTok, map[string]string{"content": "hax"}); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin update: status %d, want 403", rec.Code)
	}
	if rec := do(e, http.MethodPut, "/api/about", adminTok, map[string]string{"content": ""}); rec.Code != http.StatusBadRequest {
		t.Errorf("empty content: status %d, want 400", rec.Code)
	}

	rec = do(e, http.MethodPut, "/api/about", adminTok, map[string]string{"content": "New story"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d", rec.Code)
	}
	if body := decode(t, do(e, http.MethodGet, "/api/about", "", nil)); body["content"] != "New story" {
		t.Errorf("content after update: %v", body["content"])
	}
}

func TestUploadImage(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "walker", "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "banner.jpg")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake image bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userTok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", rec.Code, rec.Body.String())
	}
	url, _ := decode(t, rec)["imageUrl"].(string)
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, "banner.jpg") {
		t.Errorf("upload url %q", url)
	}

	// The uploaded file is retrievable from the static route.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "fake image bytes" {
		t.Errorf("serving %s: status %d body %q", url, rec.Code, rec.Body.String())
	}

	// Missing file part is a client error.
	var empty bytes.Buffer
	mw2 := multipart.NewWriter(&empty)
	mw2.Close()
	req = httptest.NewRequest(http.MethodPost, "/api/upload", &empty)
	req.Header.Set(echo.HeaderContentType, mw2.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userTok)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: status %d, want 400", rec.Code)
	}
}

func TestUploadProfilePhoto_PatchesProfile(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "walker", "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", "me.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake photo bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload-profile-photo", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userTok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", rec.Code, rec.Body.String())
	}
	photoURL, _ := decode(t, rec)["photoUrl"].(string)
	if !strings.HasPrefix(photoURL, "/uploads/") {
		t.Fatalf("photo url %q", photoURL)
	}

	// The caller's stored profile carries the new photo.
	profile := decode(t, do(e, http.MethodGet, "/api/profile", userTok, nil))["profile"].(map[string]any)
	if profile["photo"] != photoURL {
		t.Errorf("profile photo %v, want %q", profile["photo"], photoURL)
	}
}
