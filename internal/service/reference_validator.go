package service

import (
	"context"
	"errors"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceSet carries the raw foreign keys of a write. Empty fields are skipped.
type ReferenceSet struct {
	UserID          string
	TrainerID       string
	TrainingPlanID  string
	NutritionPlanID string
}

// ValidatedReferences holds the parsed keys of a ReferenceSet. Fields left
// empty in the set stay nil. TrainingPlan is the snapshot loaded while
// checking existence, so callers never read it twice.
type ValidatedReferences struct {
	UserID          *primitive.ObjectID
	TrainerID       *primitive.ObjectID
	TrainingPlanID  *primitive.ObjectID
	NutritionPlanID *primitive.ObjectID
	TrainingPlan    *domain.TrainingPlan
}

// ReferenceValidator checks that foreign keys are well formed, point at
// existing documents, and that a linked training plan belongs to the user.
// It never writes.
type ReferenceValidator struct {
	users     repository.UserRepository
	trainers  repository.TrainerRepository
	plans     repository.TrainingPlanRepository
	nutrition repository.NutritionPlanRepository
}

func NewReferenceValidator(
	users repository.UserRepository,
	trainers repository.TrainerRepository,
	plans repository.TrainingPlanRepository,
	nutrition repository.NutritionPlanRepository,
) *ReferenceValidator {
	return &ReferenceValidator{users: users, trainers: trainers, plans: plans, nutrition: nutrition}
}

// Parse runs only the syntactic check of every non-empty key.
func (refs ReferenceSet) Parse() (*ValidatedReferences, error) {
	var (
		out ValidatedReferences
		err error
	)
	if out.UserID, err = domain.ParseOptionalReference("userId", refs.UserID); err != nil {
		return nil, err
	}
	if out.TrainerID, err = domain.ParseOptionalReference("trainerId", refs.TrainerID); err != nil {
		return nil, err
	}
	if out.TrainingPlanID, err = domain.ParseOptionalReference("trainingPlanId", refs.TrainingPlanID); err != nil {
		return nil, err
	}
	if out.NutritionPlanID, err = domain.ParseOptionalReference("nutritionPlanId", refs.NutritionPlanID); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate parses every non-empty key before touching storage, so a
// malformed id is always reported as InvalidReference.
func (v *ReferenceValidator) Validate(ctx context.Context, refs ReferenceSet) (*ValidatedReferences, error) {
	out, err := refs.Parse()
	if err != nil {
		return nil, err
	}

	if out.UserID != nil {
		if err := requireExists(ctx, v.users.Exists, KindUser, *out.UserID); err != nil {
			return nil, err
		}
	}
	if out.TrainerID != nil {
		if err := requireExists(ctx, v.trainers.Exists, KindTrainer, *out.TrainerID); err != nil {
			return nil, err
		}
	}
	if out.TrainingPlanID != nil {
		plan, err := v.plans.GetByID(ctx, *out.TrainingPlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &ReferenceNotFoundError{Kind: KindTrainingPlan, ID: out.TrainingPlanID.Hex()}
			}
			return nil, err
		}
		out.TrainingPlan = plan
	}
	if out.NutritionPlanID != nil {
		if err := requireExists(ctx, v.nutrition.Exists, KindNutritionPlan, *out.NutritionPlanID); err != nil {
			return nil, err
		}
	}

	if out.UserID != nil && out.TrainingPlan != nil {
		if err := CheckPlanOwnership(out.TrainingPlan, *out.UserID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CheckPlanOwnership fails when the plan records an owner other than userID.
// Unassigned plans can be linked by anyone.
func CheckPlanOwnership(plan *domain.TrainingPlan, userID primitive.ObjectID) error {
	if plan.UserID != nil && *plan.UserID != userID {
		return ErrOwnershipMismatch
	}
	return nil
}

func requireExists(ctx context.Context, exists func(context.Context, primitive.ObjectID) (bool, error), kind string, id primitive.ObjectID) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceNotFoundError{Kind: kind, ID: id.Hex()}
	}
	return nil
}
