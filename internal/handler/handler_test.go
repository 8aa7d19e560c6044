package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/smarotkar/trek-booking/internal/config"
	"github.com/smarotkar/trek-booking/internal/handler"
	"github.com/smarotkar/trek-booking/internal/router"
	"github.com/smarotkar/trek-booking/internal/store"
	"github.com/smarotkar/trek-booking/internal/store/memstore"
)

// newTestEnv spins up the full route table backed by the in-memory
// store, with no redis and no broker attached.
func newTestEnv(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()
	cfg := config.Config{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
		UploadDir:     t.TempDir(),
	}
	st := memstore.NewStore(memstore.New())
	e := echo.New()
	router.Register(e, cfg, st, nil, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, st),
		Event:        handler.NewEventHandler(st, nil),
		EventRequest: handler.NewEventRequestHandler(st, nil),
		Guide:        handler.NewGuideHandler(st),
		GuideRequest: handler.NewGuideRequestHandler(st, nil),
		About:        handler.NewAboutHandler(st),
		Upload:       handler.NewUploadHandler(cfg.UploadDir, st),
	})
	return e, st
}

// do runs a request through the router and returns the recorder.
func do(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode list %q: %v", rec.Body.String(), err)
	}
	return l
}

// register creates an account through the API and returns its token
// and id.
func register(t *testing.T, e *echo.Echo, username, role string) (token, id string) {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/register", "", map[string]string{
		"username": username,
		"password": "pass123",
		"email":    username + "@example.com",
		"role":     role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	token, _ = body["token"].(string)
	user, _ := body["user"].(map[string]any)
	id, _ = user["id"].(string)
	if token == "" || id == "" {
		t.Fatalf("register %s: missing token or id in %v", username, body)
	}
	return token, id
}

// eventBody is a valid event/event-request payload.
func eventBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Three day Himalayan trek",
		"location":    "Himachal",
		"price":       1500.0,
		"date":        "2026-10-01T06:00:00Z",
		"duration":    "3 days",
		"difficulty":  "Moderate",
		"groupSize":   12,
	}
}
