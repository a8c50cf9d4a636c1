package service

import (
	"strings"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/metrics"
)

// positiveWeight holds every weight pathway to the same bound.
func positiveWeight(w float64) (float64, error) {
	if w <= 0 {
		return 0, validationError("weight must be greater than zero")
	}
	return w, nil
}

// ProgressInput is one of the accepted progress payload shapes:
// CreateProgressInput or RegisterProgressInput. Each variant normalizes
// itself into a domain.Progress; nothing outside this file inspects which
// fields a caller happened to send.
type ProgressInput interface {
	// references returns the keys to validate for this input.
	references() (ReferenceSet, error)
	// build produces the record to store from validated references.
	build(refs *ValidatedReferences, now time.Time) (*domain.Progress, error)
	pathway() string
}

// CreateProgressInput mirrors the stored record. Weight and Measurements
// are exclusive, and Type is inferred from them when left empty.
type CreateProgressInput struct {
	UserID          string
	TrainingPlanID  string
	NutritionPlanID string
	Type            string
	Value           *float64
	Unit            string
	Weight          *float64
	Measurements    map[string]any
	Date            *time.Time
	Notes           string
	Image           string
	ImageThumbnail  string
}

func (in CreateProgressInput) references() (ReferenceSet, error) {
	if in.UserID == "" {
		return ReferenceSet{}, validationError("user is required")
	}
	return ReferenceSet{
		UserID:          in.UserID,
		TrainingPlanID:  in.TrainingPlanID,
		NutritionPlanID: in.NutritionPlanID,
	}, nil
}

func (in CreateProgressInput) build(refs *ValidatedReferences, now time.Time) (*domain.Progress, error) {
	progress := &domain.Progress{
		UserID:          *refs.UserID,
		Date:            now,
		TrainingPlanID:  refs.TrainingPlanID,
		NutritionPlanID: ResolveNutritionPlan(refs.TrainingPlan, refs.NutritionPlanID),
		Notes:           in.Notes,
		Image:           in.Image,
		ImageThumbnail:  in.ImageThumbnail,
	}
	if in.Date != nil && !in.Date.IsZero() {
		progress.Date = in.Date.UTC()
	}

	kind := strings.TrimSpace(in.Type)
	hasMeasurements := len(in.Measurements) > 0
	if kind == "" {
		switch {
		case in.Weight != nil && hasMeasurements:
			return nil, validationError("weight and measurements cannot be combined")
		case in.Weight != nil:
			kind = domain.ProgressTypeWeight
		case hasMeasurements:
			kind = domain.ProgressTypeMeasurement
		default:
			return nil, validationError("type, weight or measurements is required")
		}
	}
	progress.Type = kind

	if kind == domain.ProgressTypeWeight {
		if hasMeasurements {
			return nil, validationError("a weight record cannot carry measurements")
		}
		weight := in.Weight
		if weight == nil {
			weight = in.Value
		}
		if weight == nil {
			return nil, validationError("a weight record requires weight or value")
		}
		w, err := positiveWeight(*weight)
		if err != nil {
			return nil, err
		}
		progress.Weight = &w
		return progress, nil
	}

	if in.Weight != nil {
		return nil, validationError("a %q record cannot carry weight", kind)
	}
	measurements := make(map[string]any, len(in.Measurements)+3)
	for k, v := range in.Measurements {
		measurements[k] = v
	}
	if in.Value != nil {
		measurements[domain.MeasurementKeyType] = kind
		measurements[domain.MeasurementKeyValue] = *in.Value
		measurements[domain.MeasurementKeyUnit] = in.Unit
	}
	if len(measurements) == 0 {
		return nil, validationError("a %q record requires value or measurements", kind)
	}
	progress.Measurements = measurements
	return progress, nil
}

func (CreateProgressInput) pathway() string { return metrics.PathwayCreate }

// RegisterProgressInput is the structured "log one value" payload. The
// record is always dated at registration time.
type RegisterProgressInput struct {
	UserID string
	Type   string
	Value  float64
	Unit   string
	// PlanID and TrainingPlanID are aliases. When both are set they must match.
	PlanID         string
	TrainingPlanID string
	Notes          string
}

// planID picks the plan alias, rejecting two different values.
func (in RegisterProgressInput) planID() (string, error) {
	switch {
	case in.TrainingPlanID == "":
		return in.PlanID, nil
	case in.PlanID == "" || strings.EqualFold(in.PlanID, in.TrainingPlanID):
		return in.TrainingPlanID, nil
	}
	return "", ErrAmbiguousPlanReference
}

func (in RegisterProgressInput) references() (ReferenceSet, error) {
	if in.UserID == "" {
		return ReferenceSet{}, validationError("userId is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return ReferenceSet{}, validationError("type is required")
	}
	planID, err := in.planID()
	if err != nil {
		return ReferenceSet{}, err
	}
	return ReferenceSet{UserID: in.UserID, TrainingPlanID: planID}, nil
}

func (in RegisterProgressInput) build(refs *ValidatedReferences, now time.Time) (*domain.Progress, error) {
	kind := strings.TrimSpace(in.Type)
	progress := &domain.Progress{
		UserID:          *refs.UserID,
		Date:            now,
		TrainingPlanID:  refs.TrainingPlanID,
		NutritionPlanID: ResolveNutritionPlan(refs.TrainingPlan, nil),
		Type:            kind,
		Notes:           in.Notes,
	}
	if kind == domain.ProgressTypeWeight {
		w, err := positiveWeight(in.Value)
		if err != nil {
			return nil, err
		}
		progress.Weight = &w
		return progress, nil
	}
	progress.Measurements = map[string]any{
		domain.MeasurementKeyType:  kind,
		domain.MeasurementKeyValue: in.Value,
		domain.MeasurementKeyUnit:  in.Unit,
	}
	return progress, nil
}

func (RegisterProgressInput) pathway() string { return metrics.PathwayRegister }
