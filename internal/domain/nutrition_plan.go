package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionPlan is authored by a Trainer. Macros and meals are opaque to the backend.
type NutritionPlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	TrainerID      primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Calories       float64            `bson:"calories" json:"calories"` // Daily caloric target
	Macros         map[string]any     `bson:"macros,omitempty" json:"macros,omitempty"`
	Meals          []map[string]any   `bson:"meals" json:"meals"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumbnail string             `bson:"imageThumbnail,omitempty" json:"imageThumbnail,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type NutritionPlanSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Calories    float64            `bson:"calories" json:"calories"`
	Macros      map[string]any     `bson:"macros,omitempty" json:"macros,omitempty"`
}
