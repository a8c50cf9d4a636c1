// internal/domain/training_plan.go
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanLevel is the difficulty of a training plan.
type PlanLevel string

const (
	LevelBeginner     PlanLevel = "beginner"
	LevelIntermediate PlanLevel = "intermediate"
	LevelAdvanced     PlanLevel = "advanced"
)

// DefaultDurationWeeks applies when a plan is created without a duration.
const DefaultDurationWeeks = 4

// ParsePlanLevel returns the level matching s (case-insensitive).
func ParsePlanLevel(s string) (PlanLevel, bool) {
	switch PlanLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, true
	case LevelIntermediate:
		return LevelIntermediate, true
	case LevelAdvanced:
		return LevelAdvanced, true
	}
	return "", false
}

// TrainingPlan is authored by a Trainer and optionally assigned to a User.
type TrainingPlan struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Description     string              `bson:"description" json:"description"`
	TrainerID       primitive.ObjectID  `bson:"trainerId" json:"trainerId"`                                 // Who created the plan
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`                   // Who the plan is for
	NutritionPlanID *primitive.ObjectID `bson:"nutritionPlanId,omitempty" json:"nutritionPlanId,omitempty"` // Inherited by progress records
	DurationWeeks   int                 `bson:"durationWeeks" json:"durationWeeks"`
	Level           PlanLevel           `bson:"level" json:"level"`
	Exercises       []map[string]any    `bson:"exercises" json:"exercises"` // Opaque, ordered
	Image           string              `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumbnail  string              `bson:"imageThumbnail,omitempty" json:"imageThumbnail,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TrainingPlanSummary is shown next to progress records linked to the plan.
type TrainingPlanSummary struct {
	ID              primitive.ObjectID  `bson:"_id" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Level           PlanLevel           `bson:"level" json:"level"`
	DurationWeeks   int                 `bson:"durationWeeks" json:"durationWeeks"`
	NutritionPlanID *primitive.ObjectID `bson:"nutritionPlanId,omitempty" json:"nutritionPlanId,omitempty"`
}
