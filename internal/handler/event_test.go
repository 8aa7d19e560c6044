package handler_test

import (
	"net/http"
	"testing"
)

func TestEventCreate_RoleGate(t *testing.T) {
	e, _ := newTestEnv(t)
	userTok, _ := register(t, e, "walker", "")
	guideTok, guideID := register(t, e, "sherpa", "guide")
	adminTok, _ := register(t, e, "boss", "admin")

	if rec := do(e, http.MethodPost, "/api/events", userTok, eventBody("User Trek")); rec.Code != http.StatusForbidden {
		t.Errorf("plain user creating event: status %d, want 403", rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/events", guideTok, eventBody("Guide Trek"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("guide create: status %d body %s", rec.Code, rec.Body.String())
	}
	ev := decode(t, rec)["event"].(map[string]any)
	if ev["status"] != "pending" {
		t.Errorf("guide-created event status %v, want pending", ev["status"])
	}
	if ev["guide"] != guideID {
		t.Errorf("guide not self-assigned: %v", ev["guide"])
	}

	rec = do(e, http.MethodPost, "/api/events", adminTok, eventBody("Admin Trek"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d", rec.Code)
	}
	if ev := decode(t, rec)["event"].(map[string]any); ev["status"] != "approved" {
		t.Errorf("admin-created event status %v, want approved", ev["status"])
	}
}

func TestEventCreate_Validation(t *testing.T) {
	e, _ := newTestEnv(t)
	adminTok, _ := register(t, e, "boss", "admin")

	body := eventBody("Broken")
	delete(body, "title")
	if rec := do(e, http.MethodPost, "/api/events", adminTok, body); rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status %d, want 400", rec.Code)
	}

	body = eventBody("Broken")
	body["groupSize"] = 0
	if rec := do(e, http.MethodPost, "/api/events", adminTok, body); rec.Code != http.StatusBadRequest {
		t.Errorf("zero group size: status %d, want 400", rec.Code)
	}
}

func TestEventApprove_OneShot(t *testing.T) {
	e, _ := newTestEnv(t)
	guideTok, _ := register(t, e, "sherpa", "guide")
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/events", guideTok, eventBody("Valley Trek"))
	id := decode(t, rec)["event"].(map[string]any)["id"].(string)

	// Pending events stay out of the approved listing.
	rec = do(e, http.MethodGet, "/api/events?status=approved", "", nil)
	if got := decodeList(t, rec); len(got) != 0 {
		t.Fatalf("pending event visible as approved: %v", got)
	}

	rec = do(e, http.MethodPut, "/api/events/"+id+"/approve", adminTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/api/events?status=approved", "", nil)
	got := decodeList(t, rec)
	if len(got) != 1 || got[0]["id"] != id {
		t.Fatalf("approved event missing from listing: %v", got)
	}

	// A second decision of either kind is refused.
	rec = do(e, http.MethodPut, "/api/events/"+id+"/reject", adminTok, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second decision: status %d, want 400", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Event already decided" {
		t.Errorf("message %v", msg)
	}

	if rec := do(e, http.MethodPut, "/api/events/missing/approve", adminTok, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", rec.Code)
	}
}

func TestEventReject_HidesEvent(t *testing.T) {
	e, _ := newTestEnv(t)
	guideTok, _ := register(t, e, "sherpa", "guide")
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/events", guideTok, eventBody("Doomed Trek"))
	id := decode(t, rec)["event"].(map[string]any)["id"].(string)

	if rec := do(e, http.MethodPut, "/api/events/"+id+"/reject", adminTok, nil); rec.Code != http.StatusOK {
		t.Fatalf("reject: status %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/events?status=approved", "", nil)
	if got := decodeList(t, rec); len(got) != 0 {
		t.Errorf("rejected event leaked into approved listing: %v", got)
	}
	// It still exists for the unfiltered admin view.
	rec = do(e, http.MethodGet, "/api/events", "", nil)
	got := decodeList(t, rec)
	if len(got) != 1 || got[0]["status"] != "rejected" {
		t.Errorf("unfiltered listing: %v", got)
	}
}

func TestEventList_StatusFilterExact(t *testing.T) {
	e, _ := newTestEnv(t)
	guideTok, _ := register(t, e, "sherpa", "guide")
	adminTok, _ := register(t, e, "boss", "admin")

	_ = do(e, http.MethodPost, "/api/events", guideTok, eventBody("Pending One"))
	_ = do(e, http.MethodPost, "/api/events", adminTok, eventBody("Approved One"))
	_ = do(e, http.MethodPost, "/api/events", adminTok, eventBody("Approved Two"))

	for status, want := range map[string]int{"pending": 1, "approved": 2, "rejected": 0} {
		rec := do(e, http.MethodGet, "/api/events?status="+status, "", nil)
		got := decodeList(t, rec)
		if len(got) != want {
			t.Errorf("status=%s: got %d events, want %d", status, len(got), want)
		}
		for _, ev := range got {
			if ev["status"] != status {
				t.Errorf("status=%s listing leaked %v", status, ev["status"])
			}
		}
	}
	if all := decodeList(t, do(e, http.MethodGet, "/api/events", "", nil)); len(all) != 3 {
		t.Errorf("unfiltered: got %d events, want 3", len(all))
	}
}

func TestEventGet(t *testing.T) {
	e, _ := newTestEnv(t)
	adminTok, _ := register(t, e, "boss", "admin")

	rec := do(e, http.MethodPost, "/api/events", adminTok, eventBody("Lookup Trek"))
	id := decode(t, rec)["event"].(map[string]any)["id"].(string)

	rec = do(e, http.MethodGet, "/api/events/"+id, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	if ev := decode(t, rec); ev["title"] != "Lookup Trek" {
		t.Errorf("title %v", ev["title"])
	}

	if rec := do(e, http.MethodGet, "/api/events/missing", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", rec.Code)
	}
}
