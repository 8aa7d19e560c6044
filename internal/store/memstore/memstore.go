// Package memstore implements the store interfaces on plain slices
// guarded by a single mutex.  It is the fallback backend used when the
// document store is unreachable at startup: a single-process mirror,
// not durable storage.  Ids are synthetic timestamp strings and are
// opaque to callers just like ObjectID hex strings.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
)

// DB holds every in-memory collection.  One mutex serializes all
// access; contention is irrelevant at fallback scale.
type DB struct {
	mu sync.Mutex

	users         []model.User
	guides        []model.Guide
	guideRequests []model.GuideRequest
	events        []model.Event
	eventRequests []model.EventRequest
	about         model.About

	seq uint64
}

// New returns an empty in-memory database with the default about
// record and the sample guide roster in place.
func New() *DB {
	return &DB{
		about: model.About{Content: model.DefaultAboutContent, UpdatedAt: time.Now().UTC()},
		guides: []model.Guide{
			{ID: "g1", Name: "Amit Pawar", Email: "amit@example.com", Phone: "+91 98765 43214", Experience: "5 years", Rating: 4.8, Status: model.GuideActive},
			{ID: "g2", Name: "Sneha Patil", Email: "sneha@example.com", Phone: "+91 98765 43215", Experience: "3 years", Rating: 4.6, Status: model.GuideActive},
			{ID: "g3", Name: "Rohit Shinde", Email: "rohit@example.com", Phone: "+91 98765 43216", Experience: "7 years", Rating: 4.9, Status: model.GuideActive},
			{ID: "g4", Name: "Priya Desai", Email: "priya@example.com", Phone: "+91 98765 43217", Experience: "4 years", Rating: 4.7, Status: model.GuideInactive},
		},
	}
}

// SeedAdmin installs the bootstrap admin account so the platform has
// an operator even with no durable store behind it.  The password is
// already hashed by the caller.
func (d *DB) SeedAdmin(username, passwordHash, email string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Username == username {
			return
		}
	}
	d.users = append(d.users, model.User{
		ID:        "admin-1",
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		Role:      model.RoleAdmin,
		Profile:   model.Profile{Name: "Administrator", Email: email, About: "System Administrator"},
		CreatedAt: time.Now().UTC(),
	})
}

// NewStore assembles the fallback store aggregate over one shared DB.
func NewStore(db *DB) *store.Store {
	return store.New(store.ModeMemory,
		NewUserStore(db),
		NewGuideStore(db),
		NewGuideRequestStore(db),
		NewEventStore(db),
		NewEventRequestStore(db),
		NewAboutStore(db),
	)
}

// newID produces a timestamp-based synthetic id.  The sequence counter
// keeps ids distinct when two inserts land on the same nanosecond.
func (d *DB) newID(prefix string) string {
	d.seq++
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), d.seq)
}

// ----- UserStore -----

type UserStore struct{ db *DB }

func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Create(_ context.Context, u *model.User) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, ex := range s.db.users {
		if ex.Username == u.Username {
			return "", store.ErrUsernameExists
		}
	}
	u.ID = s.db.newID("user")
	s.db.users = append(s.db.users, *u)
	return u.ID, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.User, len(s.db.users))
	copy(out, s.db.users)
	return out, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id string, p model.Profile) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.users {
		if s.db.users[i].ID == id {
			s.db.users[i].Profile = p
			return s.db.users[i], nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (s *UserStore) UpdateRole(_ context.Context, id, role string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.users {
		if s.db.users[i].ID == id {
			s.db.users[i].Role = role
			return nil
		}
	}
	return store.ErrNotFound
}

// ----- EventStore -----

type EventStore struct{ db *DB }

func NewEventStore(db *DB) *EventStore { return &EventStore{db: db} }

func (s *EventStore) Insert(_ context.Context, e *model.Event) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	e.ID = s.db.newID("event")
	s.db.events = append(s.db.events, *e)
	return e.ID, nil
}

func (s *EventStore) GetByID(_ context.Context, id string) (model.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, e := range s.db.events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, store.ErrNotFound
}

func (s *EventStore) List(_ context.Context, status string) ([]model.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.Event{}
	for _, e := range s.db.events {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EventStore) UpdateStatus(_ context.Context, id, status string) (model.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.events {
		if s.db.events[i].ID == id {
			if s.db.events[i].Status != model.EventPending {
				return model.Event{}, store.ErrAlreadyDecided
			}
			s.db.events[i].Status = status
			return s.db.events[i], nil
		}
	}
	return model.Event{}, store.ErrNotFound
}

// ----- EventRequestStore -----

type EventRequestStore struct{ db *DB }

func NewEventRequestStore(db *DB) *EventRequestStore { return &EventRequestStore{db: db} }

func (s *EventRequestStore) Insert(_ context.Context, r *model.EventRequest) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r.ID = s.db.newID("request")
	s.db.eventRequests = append(s.db.eventRequests, *r)
	return r.ID, nil
}

func (s *EventRequestStore) GetByID(_ context.Context, id string) (model.EventRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, r := range s.db.eventRequests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.EventRequest{}, store.ErrNotFound
}

func (s *EventRequestStore) ListByRequester(_ context.Context, userID string) ([]model.EventRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []model.EventRequest{}
	for _, r := range s.db.eventRequests {
		if r.RequestedBy == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *EventRequestStore) List(_ context.Context) ([]model.EventRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.EventRequest, len(s.db.eventRequests))
	copy(out, s.db.eventRequests)
	return out, nil
}

func (s *EventRequestStore) UpdateStatus(_ context.Context, id, status string) (model.EventRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.eventRequests {
		if s.db.eventRequests[i].ID == id {
			if s.db.eventRequests[i].Status != model.RequestPending {
				return model.EventRequest{}, store.ErrAlreadyDecided
			}
			s.db.eventRequests[i].Status = status
			return s.db.eventRequests[i], nil
		}
	}
	return model.EventRequest{}, store.ErrNotFound
}

// ----- GuideRequestStore -----

type GuideRequestStore struct{ db *DB }

func NewGuideRequestStore(db *DB) *GuideRequestStore { return &GuideRequestStore{db: db} }

func (s *GuideRequestStore) Create(_ context.Context, r *model.GuideRequest) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, ex := range s.db.guideRequests {
		if ex.User == r.User && ex.Status == model.GuideReqPending {
			return "", store.ErrPendingExists
		}
	}
	r.ID = s.db.newID("guidereq")
	s.db.guideRequests = append(s.db.guideRequests, *r)
	return r.ID, nil
}

func (s *GuideRequestStore) List(_ context.Context) ([]model.GuideRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.GuideRequest, len(s.db.guideRequests))
	copy(out, s.db.guideRequests)
	return out, nil
}

func (s *GuideRequestStore) Decide(_ context.Context, id, status string, at time.Time) (model.GuideRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.guideRequests {
		if s.db.guideRequests[i].ID == id {
			if s.db.guideRequests[i].Status != model.GuideReqPending {
				return model.GuideRequest{}, store.ErrAlreadyDecided
			}
			s.db.guideRequests[i].Status = status
			s.db.guideRequests[i].DecisionAt = &at
			return s.db.guideRequests[i], nil
		}
	}
	return model.GuideRequest{}, store.ErrNotFound
}

// ----- GuideStore -----

type GuideStore struct{ db *DB }

func NewGuideStore(db *DB) *GuideStore { return &GuideStore{db: db} }

func (s *GuideStore) Insert(_ context.Context, g *model.Guide) (string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	g.ID = s.db.newID("g")
	s.db.guides = append(s.db.guides, *g)
	return g.ID, nil
}

func (s *GuideStore) List(_ context.Context) ([]model.Guide, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]model.Guide, len(s.db.guides))
	copy(out, s.db.guides)
	return out, nil
}

func (s *GuideStore) Update(_ context.Context, id string, g model.Guide) (model.Guide, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.guides {
		if s.db.guides[i].ID == id {
			g.ID = id
			s.db.guides[i] = g
			return g, nil
		}
	}
	return model.Guide{}, store.ErrNotFound
}

func (s *GuideStore) Delete(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.guides {
		if s.db.guides[i].ID == id {
			s.db.guides = append(s.db.guides[:i], s.db.guides[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// ----- AboutStore -----

type AboutStore struct{ db *DB }

func NewAboutStore(db *DB) *AboutStore { return &AboutStore{db: db} }

func (s *AboutStore) Get(_ context.Context) (model.About, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.about, nil
}

func (s *AboutStore) Put(_ context.Context, content string) (model.About, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.about = model.About{Content: content, UpdatedAt: time.Now().UTC()}
	return s.db.about, nil
}
