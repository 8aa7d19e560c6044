package model

import "time"

// Role values stored on a user account. Role gating in the middleware
// compares against these exact strings; there is no hierarchy between
// them (a guide does not inherit admin capabilities).
const (
	RoleUser  = "user"
	RoleGuide = "guide"
	RoleAdmin = "admin"
)

// User is a platform account stored in the `users` collection.  The
// username is unique and immutable after registration.  Password holds
// the bcrypt hash and is never serialized into any response.
//
// Fields:
//  ID           – opaque document identifier (ObjectID hex or memory id).
//  Username     – unique login name, case-sensitive.
//  Email        – optional contact email.
//  Password     – bcrypt hash of the password.
//  Role         – one of RoleUser, RoleGuide, RoleAdmin.
//  Profile      – user-editable profile block.
//  GuideProfile – extra public fields shown for role-guide users.
//  CreatedAt    – registration timestamp.
type User struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Username     string       `bson:"username" json:"username"`
	Email        string       `bson:"email,omitempty" json:"email,omitempty"`
	Password     string       `bson:"password" json:"-"`
	Role         string       `bson:"role" json:"role"`
	Profile      Profile      `bson:"profile" json:"profile"`
	GuideProfile GuideProfile `bson:"guideProfile,omitempty" json:"guideProfile,omitempty"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}

// Profile is the user-owned portion of an account.  Updates are
// merge-style: empty incoming fields keep the stored value.
type Profile struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	About   string `bson:"about,omitempty" json:"about,omitempty"`
	Photo   string `bson:"photo,omitempty" json:"photo,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
}

// GuideProfile carries the trekking credentials displayed on a
// role-guide user's public page.  Unrelated to the Guide roster entry
// in guide.go; the two notions of "guide" are deliberately separate.
type GuideProfile struct {
	Experience     string  `bson:"experience,omitempty" json:"experience,omitempty"`
	Achievements   string  `bson:"achievements,omitempty" json:"achievements,omitempty"`
	CompletedTreks int     `bson:"completedTreks,omitempty" json:"completedTreks,omitempty"`
	Ratings        float64 `bson:"ratings,omitempty" json:"ratings,omitempty"`
	Contact        string  `bson:"contact,omitempty" json:"contact,omitempty"`
}

// Merge applies a partial profile update: each field replaces the
// stored one only when the incoming value is non-empty.
func (p Profile) Merge(in Profile) Profile {
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Email != "" {
		p.Email = in.Email
	}
	if in.Phone != "" {
		p.Phone = in.Phone
	}
	if in.Address != "" {
		p.Address = in.Address
	}
	if in.About != "" {
		p.About = in.About
	}
	if in.Photo != "" {
		p.Photo = in.Photo
	}
	if in.Country != "" {
		p.Country = in.Country
	}
	if in.State != "" {
		p.State = in.State
	}
	return p
}
