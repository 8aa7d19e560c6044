// Package store defines the storage abstraction behind every entity
// collection.  Business logic depends only on the interfaces here; the
// concrete backend (document store or in-memory mirror) is chosen once
// at process start and injected into handlers.  Sentinel
// errors let handlers map storage outcomes onto the HTTP taxonomy
// without inspecting backend-specific failures.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/smarotkar/trek-booking/internal/model"
)

// ErrNotFound is returned when an id does not resolve to a record.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned by UserStore.Create when the username
// is already taken.  Usernames are unique across all users at all
// times.
var ErrUsernameExists = errors.New("username already exists")

// ErrPendingExists is returned by GuideRequestStore.Create while the
// same user already has an undecided request.
var ErrPendingExists = errors.New("pending request already exists")

// ErrAlreadyDecided is returned when a status transition is attempted
// on a record that already left its pending state.  Decisions are
// one-shot; this guard is what keeps a repeated approval from running
// its side effects twice.
var ErrAlreadyDecided = errors.New("already decided")

// Backend modes reported by Store.Mode and the health endpoint.
const (
	ModeMongo  = "mongodb"
	ModeMemory = "memory"
)

// UserStore holds platform accounts.
type UserStore interface {
	// Create persists a new user and returns its id, failing with
	// ErrUsernameExists when the username is taken.
	Create(ctx context.Context, u *model.User) (string, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	// List returns every user; password hashes are included and must be
	// stripped by the caller before serialization.
	List(ctx context.Context) ([]model.User, error)
	// UpdateProfile replaces the stored profile block wholesale; merge
	// semantics are applied by the caller before writing.
	UpdateProfile(ctx context.Context, id string, p model.Profile) (model.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

// EventStore holds published and pending events.
type EventStore interface {
	Insert(ctx context.Context, e *model.Event) (string, error)
	GetByID(ctx context.Context, id string) (model.Event, error)
	// List returns events filtered by exact status match, or all events
	// when status is empty.  Visibility is caller responsibility.
	List(ctx context.Context, status string) ([]model.Event, error)
	// UpdateStatus transitions a pending event to the given status and
	// returns ErrAlreadyDecided when the event is no longer pending.
	UpdateStatus(ctx context.Context, id, status string) (model.Event, error)
}

// EventRequestStore holds user-submitted event proposals.
type EventRequestStore interface {
	Insert(ctx context.Context, r *model.EventRequest) (string, error)
	GetByID(ctx context.Context, id string) (model.EventRequest, error)
	ListByRequester(ctx context.Context, userID string) ([]model.EventRequest, error)
	List(ctx context.Context) ([]model.EventRequest, error)
	// UpdateStatus moves a Pending request to Approved or Rejected.  A
	// request that was already decided yields ErrAlreadyDecided.
	UpdateStatus(ctx context.Context, id, status string) (model.EventRequest, error)
}

// GuideRequestStore holds guide-role petitions.
type GuideRequestStore interface {
	// Create persists a new pending request, failing with
	// ErrPendingExists when the user already has one pending.
	Create(ctx context.Context, r *model.GuideRequest) (string, error)
	List(ctx context.Context) ([]model.GuideRequest, error)
	// Decide moves a pending request to approved or rejected, stamping
	// decisionAt.  ErrAlreadyDecided when the request is not pending.
	Decide(ctx context.Context, id, status string, at time.Time) (model.GuideRequest, error)
}

// GuideStore holds the admin-curated roster, unrelated to role-guides.
type GuideStore interface {
	Insert(ctx context.Context, g *model.Guide) (string, error)
	List(ctx context.Context) ([]model.Guide, error)
	Update(ctx context.Context, id string, g model.Guide) (model.Guide, error)
	Delete(ctx context.Context, id string) error
}

// AboutStore holds the singleton about/contact record.
type AboutStore interface {
	// Get returns the record, creating it with default content on first
	// read.
	Get(ctx context.Context) (model.About, error)
	// Put replaces the content, creating the record if missing.
	Put(ctx context.Context, content string) (model.About, error)
}

// Store aggregates one implementation per collection plus the backend
// mode it was opened in.  Handlers receive this struct and never learn
// which backend is underneath.
type Store struct {
	Users         UserStore
	Guides        GuideStore
	GuideRequests GuideRequestStore
	Events        EventStore
	EventRequests EventRequestStore
	About         AboutStore

	mode string
}

// Mode reports which backend this store routes to ("mongodb" or
// "memory").  Fixed for the process lifetime.
func (s *Store) Mode() string { return s.mode }

// New assembles a Store from one implementation per collection.  Used
// by the backend packages; handlers never call it directly.
func New(mode string, users UserStore, guides GuideStore, guideReqs GuideRequestStore,
	events EventStore, eventReqs EventRequestStore, about AboutStore) *Store {
	return &Store{
		Users:         users,
		Guides:        guides,
		GuideRequests: guideReqs,
		Events:        events,
		EventRequests: eventReqs,
		About:         about,
		mode:          mode,
	}
}
