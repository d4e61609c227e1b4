package models

import "time"

// ConsultationMinutes is the fixed length of one consultation window.
const ConsultationMinutes = 90

// Identity kinds for BookingIdentity.
const (
	IdentityKindUser  = "user"
	IdentityKindGuest = "guest"
)

// BookingIdentity records who reserved a slot. A slot is booked either by a
// signed-in calendar user (Kind "user", UserID set) or by a guest contact
// (Kind "guest", Name and Email set).
type BookingIdentity struct {
	Kind   string `bson:"kind" json:"kind"`
	UserID string `bson:"userId,omitempty" json:"userId,omitempty"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// GuestIdentity builds the guest variant from a raw name/email pair.
func GuestIdentity(name, email string) *BookingIdentity {
	return &BookingIdentity{Kind: IdentityKindGuest, Name: name, Email: email}
}

// UserIdentity builds the signed-in variant from a calendar user id.
func UserIdentity(userID string) *BookingIdentity {
	return &BookingIdentity{Kind: IdentityKindUser, UserID: userID}
}

// Slot represents one bookable 90-minute consultation window.
// The (Date, Time) pair is unique across the collection.
type Slot struct {
	ID          string           `bson:"id" json:"id"`
	Date        string           `bson:"date" json:"date"` // "2006-01-02"
	Time        string           `bson:"time" json:"time"` // "15:04", service-local
	IsBooked    bool             `bson:"isBooked" json:"isBooked"`
	BookedBy    *BookingIdentity `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	BookedEmail string           `bson:"bookedEmail,omitempty" json:"bookedEmail,omitempty"`
	TimeZone    string           `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	BookedAt    *time.Time       `bson:"bookedAt,omitempty" json:"bookedAt,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}
