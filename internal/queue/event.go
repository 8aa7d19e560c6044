// Package queue defines message payloads exchanged over the broker and
// the background consumer that records them.
package queue

// Queue names used on the broker.
const (
	EventPublishedQueue = "event.published"
	GuideApprovedQueue  = "guide.approved"
)

// EventPublishedEvent is emitted whenever an event becomes publicly
// visible: direct admin creation, admin approval of a pending event,
// or approval of an event request.  Downstream consumers can log or
// notify without touching the primary store.
type EventPublishedEvent struct {
	EventID     string  `json:"event_id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
	CreatedBy   string  `json:"created_by"`
	Source      string  `json:"source"` // "admin", "approval" or "request"
	PublishedAt string  `json:"published_at"`
}

// GuideApprovedEvent is emitted when an admin approves a guide-role
// request and the user is promoted.
type GuideApprovedEvent struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	DecidedAt string `json:"decided_at"`
}
