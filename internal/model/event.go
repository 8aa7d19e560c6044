package model

import "time"

// Event status values.  Only approved events are meant for public
// listing; the store itself does not hide the other states, callers
// filter with the status query parameter.
const (
	EventPending  = "pending"
	EventApproved = "approved"
	EventRejected = "rejected"
)

// DefaultRating is applied to events and roster guides created without
// an explicit rating.
const DefaultRating = 4.5

// Event is a publicly bookable trek stored in the `events` collection.
// It is created either directly by an admin (auto-approved) or by a
// guide (pending, approved later), or derived from an approved
// EventRequest.
type Event struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Title           string    `bson:"title" json:"title"`
	PlaceName       string    `bson:"placeName,omitempty" json:"placeName,omitempty"`
	Description     string    `bson:"description" json:"description"`
	NearAttractions string    `bson:"nearAttractions,omitempty" json:"nearAttractions,omitempty"`
	ThingsToCarry   string    `bson:"thingsToCarry,omitempty" json:"thingsToCarry,omitempty"`
	PickupPoints    []string  `bson:"pickupPoints,omitempty" json:"pickupPoints,omitempty"`
	MeetupTime      string    `bson:"meetupTime,omitempty" json:"meetupTime,omitempty"`
	PickupTime      string    `bson:"pickupTime,omitempty" json:"pickupTime,omitempty"`
	Guide           string    `bson:"guide,omitempty" json:"guide,omitempty"` // assigned guide: user id for guide-created events, free-text name when carried over from a request
	Location        string    `bson:"location" json:"location"`
	Price           float64   `bson:"price" json:"price"`
	Date            time.Time `bson:"date" json:"date"`
	Duration        string    `bson:"duration" json:"duration"`
	Difficulty      string    `bson:"difficulty" json:"difficulty"`
	GroupSize       int       `bson:"groupSize" json:"groupSize"`
	BannerImage     string    `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`
	CardImage       string    `bson:"cardImage,omitempty" json:"cardImage,omitempty"`
	Image           string    `bson:"image,omitempty" json:"image,omitempty"` // legacy single-image field
	Rating          float64   `bson:"rating" json:"rating"`
	Status          string    `bson:"status" json:"status"`
	CreatedBy       string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// EventRequest status values.  Distinct casing from Event status is
// kept on purpose; the two state machines are separate and clients
// match on these exact strings.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
)

// EventRequest is a user-submitted proposal for a new Event, stored in
// the `event_requests` collection and reviewed by an admin.  Guide is
// a free-text name here, not a user reference.  Approval derives an
// Event owned by the requester.
type EventRequest struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Guide       string    `bson:"guide" json:"guide"`
	Location    string    `bson:"location" json:"location"`
	Price       float64   `bson:"price" json:"price"`
	Date        time.Time `bson:"date" json:"date"`
	Duration    string    `bson:"duration" json:"duration"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	GroupSize   int       `bson:"groupSize" json:"groupSize"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Status      string    `bson:"status" json:"status"`
	RequestedBy string    `bson:"requestedBy" json:"requestedBy"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ToEvent copies an approved request's fields into the Event derived
// from it.  Ownership transfers to the requester and the event is
// published immediately.
func (r EventRequest) ToEvent(now time.Time) Event {
	return Event{
		Title:       r.Title,
		Description: r.Description,
		Guide:       r.Guide,
		Location:    r.Location,
		Price:       r.Price,
		Date:        r.Date,
		Duration:    r.Duration,
		Difficulty:  r.Difficulty,
		GroupSize:   r.GroupSize,
		Image:       r.Image,
		Rating:      DefaultRating,
		Status:      EventApproved,
		CreatedBy:   r.RequestedBy,
		CreatedAt:   now,
	}
}
