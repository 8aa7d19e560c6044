package model

import "time"

// Roster guide status values.
const (
	GuideActive   = "Active"
	GuideInactive = "Inactive"
)

// Guide is an admin-curated roster entry shown on the public guides
// page.  It does not reference a User; a user holding the guide role is
// a separate concept and the two are maintained independently.
type Guide struct {
	ID         string  `bson:"_id,omitempty" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Email      string  `bson:"email" json:"email"`
	Phone      string  `bson:"phone" json:"phone"`
	Experience string  `bson:"experience" json:"experience"`
	Rating     float64 `bson:"rating" json:"rating"`
	Status     string  `bson:"status" json:"status"`
}

// GuideRequest status values (lowercase, unlike EventRequest).
const (
	GuideReqPending  = "pending"
	GuideReqApproved = "approved"
	GuideReqRejected = "rejected"
)

// GuideRequest is a user's petition to be promoted to the guide role.
// At most one pending request may exist per user; an admin decision is
// terminal and approval flips the referenced user's role.
type GuideRequest struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	User        string     `bson:"user" json:"user"`
	Status      string     `bson:"status" json:"status"`
	RequestedAt time.Time  `bson:"requestedAt" json:"requestedAt"`
	DecisionAt  *time.Time `bson:"decisionAt,omitempty" json:"decisionAt,omitempty"`
}
