package handler_test

import (
	"net/http"
	"testing"
)

func TestGuideRequest_ApprovalPromotesUser(t *testing.T) {
	e, _ := newTestEnv(t)
	aTok, aID := register(t, e, "asha", "")
	bTok, _ := register(t, e, "bela", "")
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/guiderequest", aTok, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("request: status %d body %s", rec.Code, rec.Body.String())
	}
	reqID := decode(t, rec)["request"].(map[string]any)["id"].(string)

	// One pending petition per user.
	rec = do(e, http.MethodPost, "/api/guiderequest", aTok, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate request: status %d, want 400", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Already requested" {
		t.Errorf("message %v", msg)
	}

	queue := decodeList(t, do(e, http.MethodGet, "/api/guiderequests", adminTok, nil))
	if len(queue) != 1 || queue[0]["user"] != aID {
		t.Fatalf("admin queue: %v", queue)
	}

	rec = do(e, http.MethodPut, "/api/approveguide/"+reqID, adminTok, map[string]string{"status": "approved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d body %s", rec.Code, rec.Body.String())
	}

	// Only the referenced user is promoted.
	if p := decode(t, do(e, http.MethodGet, "/api/profile", aTok, nil)); p["role"] != "guide" {
		t.Errorf("asha role %v, want guide", p["role"])
	}
	if p := decode(t, do(e, http.MethodGet, "/api/profile", bTok, nil)); p["role"] != "user" {
		t.Errorf("bela role %v, want user", p["role"])
	}

	// Approval may not repeat.
	rec = do(e, http.MethodPut, "/api/approveguide/"+reqID, adminTok, map[string]string{"status": "approved"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second approval: status %d, want 400", rec.Code)
	}
}

func TestGuideRequest_RejectionAllowsRetry(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "asha", "")
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/guiderequest", userTok, nil)
	reqID := decode(t, rec)["request"].(map[string]any)["id"].(string)

	rec = do(e, http.MethodPut, "/api/approveguide/"+reqID, adminTok, map[string]string{"status": "rejected"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: status %d", rec.Code)
	}

	// Rejection leaves the role alone and unblocks a fresh petition.
	if p := decode(t, do(e, http.MethodGet, "/api/profile", userTok, nil)); p["role"] != "user" {
		t.Errorf("role after rejection %v, want user", p["role"])
	}
	if rec := do(e, http.MethodPost, "/api/guiderequest", userTok, nil); rec.Code != http.StatusCreated {
		t.Errorf("retry after rejection: status %d, want 201", rec.Code)
	}
}

func TestGuideRequest_AdminGate(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "asha", "")

	rec := do(e, http.MethodPost, "/api/guiderequest", userTok, nil)
	reqID := decode(t, rec)["request"].(map[string]any)["id"].(string)

	if rec := do(e, http.MethodPut, "/api/approveguide/"+reqID, userTok, map[string]string{"status": "approved"}); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin decision: status %d, want 403", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/guiderequests", userTok, nil); rec.Code != http.StatusForbidden {
		t.Errorf("non-admin queue read: status %d, want 403", rec.Code)
	}
}

func TestPublicGuideProfile(t *testing.T) {
	e, _ := newTestEnv(t)
	_, userID := register(t, e, "asha", "")
	_, guideID := register(t, e, "sherpa", "guide")

	rec := do(e, http.MethodGet, "/api/guides/"+guideID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("guide profile: status %d", rec.Code)
	}
	body := decode(t, rec)
	if body["username"] != "sherpa" || body["role"] != "guide" {
		t.Errorf("profile body %v", body)
	}

	// Non-guide users and unknown ids both read as missing.
	if rec := do(e, http.MethodGet, "/api/guides/"+userID, "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("plain user as guide: status %d, want 404", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/api/guides/u-404", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", rec.Code)
	}
}
