package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/config"
)

func TestPayloadCodec_RoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"message":"ok"}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode rejected valid payload")
	}
	if status != http.StatusOK {
		t.Errorf("status %d", status)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body %q", gotBody)
	}
	if got := gotHdr.Values("X-Custom"); len(got) != 2 || got[0] != "a" {
		t.Errorf("header values %v", got)
	}
}

func TestPayloadCodec_RejectsCorrupt(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, {0, 0, 0, 200, 0, 0, 0, 99}} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decode accepted corrupt payload %v", bs)
		}
	}
}

func newCtx(path, query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path+"?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKey_Strategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "trekcache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, newCtx("/api/events", "status=approved"))
	b := cacheKey(cfg, newCtx("/api/events", "status=pending"))
	if a == b {
		t.Error("route_query strategy must separate different queries")
	}
	if !strings.HasPrefix(a, "trekcache:") {
		t.Errorf("key %q missing prefix", a)
	}

	cfg.KeyStrategy = "route"
	a = cacheKey(cfg, newCtx("/api/events", "status=approved"))
	b = cacheKey(cfg, newCtx("/api/events", "status=pending"))
	if a != b {
		t.Error("route strategy must ignore the query string")
	}
}

