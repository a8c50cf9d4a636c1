package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressTypeWeight is the one progress type stored in Progress.Weight.
// Every other type is stored inside Progress.Measurements.
const ProgressTypeWeight = "weight"

// ProgressTypeMeasurement is assigned to untyped records that only carry measurements.
const ProgressTypeMeasurement = "measurement"

// Measurement map keys written by the register pathway.
const (
	MeasurementKeyType  = "type"
	MeasurementKeyValue = "value"
	MeasurementKeyUnit  = "unit"
)

// Progress is one logged observation for a User.
// Invariant: Weight is set iff Type == ProgressTypeWeight, Measurements is set otherwise.
type Progress struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"` // Immutable owner
	Date            time.Time           `bson:"date" json:"date"`
	TrainingPlanID  *primitive.ObjectID `bson:"trainingPlanId,omitempty" json:"trainingPlanId,omitempty"`
	NutritionPlanID *primitive.ObjectID `bson:"nutritionPlanId,omitempty" json:"nutritionPlanId,omitempty"`
	Type            string              `bson:"type" json:"type"`
	Weight          *float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Measurements    map[string]any      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Image           string              `bson:"image,omitempty" json:"image,omitempty"`
	ImageThumbnail  string              `bson:"imageThumbnail,omitempty" json:"imageThumbnail,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasMeasurements reports whether the record carries a non-empty measurement map.
func (p *Progress) HasMeasurements() bool {
	return len(p.Measurements) > 0
}

// ProgressDetails is a Progress record with the display fields of the
// entities it references. Missing references leave the summary nil.
type ProgressDetails struct {
	Progress      `bson:",inline"`
	User          *UserSummary          `bson:"user,omitempty" json:"user,omitempty"`
	TrainingPlan  *TrainingPlanSummary  `bson:"trainingPlan,omitempty" json:"trainingPlan,omitempty"`
	NutritionPlan *NutritionPlanSummary `bson:"nutritionPlan,omitempty" json:"nutritionPlan,omitempty"`
}

// Evolution summarises a user's progress history.
type Evolution struct {
	TotalCount           int                   `json:"totalCount"`
	FirstDate            *time.Time            `json:"firstDate,omitempty"`
	LastDate             *time.Time            `json:"lastDate,omitempty"`
	WeightEvolution      *WeightEvolution      `json:"weightEvolution,omitempty"`
	MeasurementEvolution *MeasurementEvolution `json:"measurementEvolution,omitempty"`
}

type WeightEvolution struct {
	Initial float64 `json:"initial"`
	Current float64 `json:"current"`
	Delta   float64 `json:"delta"`
}

type MeasurementEvolution struct {
	Count    int       `json:"count"`
	LastDate time.Time `json:"lastDate"`
}
