package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is shared by the local (email/password) and Google sign-in flows.
// PasswordHash is empty for OAuth-only accounts.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password,omitempty" json:"-"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	FavoriteColor  string             `bson:"favoriteColor,omitempty" json:"favoriteColor,omitempty"`
	Birthday       string             `bson:"birthday,omitempty" json:"birthday,omitempty"`
	PhoneNumber    string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	GoogleID       string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Provider       string             `bson:"provider" json:"provider"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserFilter struct {
	Email string
	// Name matches first or last name, case-insensitive substring.
	Name string
}
