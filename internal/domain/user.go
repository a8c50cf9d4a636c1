package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between account roles
type Role string

// Define constants for roles
const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
)

// Account holds the login credentials. The business data lives in the
// matching User or TrainerProfile document, linked through AccountID.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *Account) IsTrainer() bool {
	return a.Role == RoleTrainer
}

// User is a coached person: identity plus body metrics.
// Owns zero or more Progress records.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AccountID      *primitive.ObjectID `bson:"accountId,omitempty" json:"accountId,omitempty"`
	Name           string              `bson:"name" json:"name"`
	Email          string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Weight         *float64            `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height         *float64            `bson:"height,omitempty" json:"height,omitempty"` // cm
	Age            *int                `bson:"age,omitempty" json:"age,omitempty"`
	Goals          []string            `bson:"goals,omitempty" json:"goals,omitempty"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumbnail string              `bson:"imageThumbnail,omitempty" json:"imageThumbnail,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the subset of a User shown next to the records that reference it.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}
