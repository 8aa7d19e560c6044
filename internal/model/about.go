package model

import "time"

// About is the singleton contact/about content block.  Publicly
// readable, admin-editable, created on first read if missing.
type About struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Content   string    `bson:"content" json:"content"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DefaultAboutContent seeds the About record when none exists yet.
const DefaultAboutContent = "Explore Beautiful Destinations. Contact: safer.sukoon@example.com | +91-1234567890"
