package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainer authors training and nutrition plans.
type Trainer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Specialty      string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Certifications []string           `bson:"certifications" json:"certifications"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"` // Unique when set
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumbnail string             `bson:"imageThumbnail,omitempty" json:"imageThumbnail,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainerProfile is the business profile attached to a trainer Account.
// There is at most one profile per account.
type TrainerProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID      primitive.ObjectID `bson:"accountId" json:"accountId"`
	FullName       string             `bson:"fullName" json:"fullName"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialty      string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Certifications []string           `bson:"certifications" json:"certifications"`
	Experience     string             `bson:"experience,omitempty" json:"experience,omitempty"`
	IsVerified     bool               `bson:"isVerified" json:"isVerified"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
