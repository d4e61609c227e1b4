package models

import "time"

// CalendarUser is the service provider's Google identity. The stored refresh
// token is the durable credential used to mint calendar access for bookings;
// at most one live refresh token per GoogleID (latest overwrites).
type CalendarUser struct {
	ID           string    `bson:"id" json:"id"`
	GoogleID     string    `bson:"googleId" json:"googleId"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	RefreshToken string    `bson:"refreshToken" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
