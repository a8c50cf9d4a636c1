package service

import (
	"context"
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
)

// TrainingPlanPatch carries plan fields. On update nil fields are left
// untouched and an empty UserID or NutritionPlanID removes the link.
type TrainingPlanPatch struct {
	Name            *string
	Description     *string
	TrainerID       *string
	UserID          *string
	NutritionPlanID *string
	DurationWeeks   *int
	Level           *string
	Exercises       []map[string]any
}

type TrainingPlanService interface {
	Create(ctx context.Context, in TrainingPlanPatch) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error)
	GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TrainingPlan, error)
	ListByLevel(ctx context.Context, level string) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, id string, patch TrainingPlanPatch) (*domain.TrainingPlan, error)
	AssignUser(ctx context.Context, id, userID string) (*domain.TrainingPlan, error)
	LinkNutritionPlan(ctx context.Context, id, nutritionPlanID string) (*domain.TrainingPlan, error)
	Delete(ctx context.Context, id string) error
}

type trainingPlanService struct {
	planRepo  repository.TrainingPlanRepository
	validator *ReferenceValidator
}

func NewTrainingPlanService(planRepo repository.TrainingPlanRepository, validator *ReferenceValidator) TrainingPlanService {
	return &trainingPlanService{planRepo: planRepo, validator: validator}
}

func (s *trainingPlanService) Create(ctx context.Context, in TrainingPlanPatch) (*domain.TrainingPlan, error) {
	if deref(in.TrainerID) == "" {
		return nil, validationError("trainer is required")
	}
	plan := &domain.TrainingPlan{
		DurationWeeks: domain.DefaultDurationWeeks,
		Level:         domain.LevelBeginner,
		Exercises:     []map[string]any{},
	}
	if err := s.apply(ctx, plan, in); err != nil {
		return nil, err
	}
	if plan.Name == "" || plan.Description == "" {
		return nil, validationError("name and description are required")
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *trainingPlanService) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *trainingPlanService) GetByID(ctx context.Context, rawID string) (*domain.TrainingPlan, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindTrainingPlan, id)
	}
	return plan, nil
}

func (s *trainingPlanService) ListByUser(ctx context.Context, rawUserID string) ([]domain.TrainingPlan, error) {
	userID, err := domain.ParseReference("userId", rawUserID)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

func (s *trainingPlanService) ListByLevel(ctx context.Context, level string) ([]domain.TrainingPlan, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return nil, validationError("level is required")
	}
	return s.planRepo.GetByLevel(ctx, level)
}

func (s *trainingPlanService) Update(ctx context.Context, rawID string, patch TrainingPlanPatch) (*domain.TrainingPlan, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	refSet := ReferenceSet{
		TrainerID:       deref(patch.TrainerID),
		UserID:          deref(patch.UserID),
		NutritionPlanID: deref(patch.NutritionPlanID),
	}
	if _, err := refSet.Parse(); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindTrainingPlan, id)
	}
	if err := s.apply(ctx, plan, patch); err != nil {
		return nil, err
	}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, notFoundOr(err, KindTrainingPlan, id)
	}
	return s.planRepo.GetByID(ctx, id)
}

// AssignUser makes userID the plan's owner.
func (s *trainingPlanService) AssignUser(ctx context.Context, id, userID string) (*domain.TrainingPlan, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	return s.Update(ctx, id, TrainingPlanPatch{UserID: &userID})
}

func (s *trainingPlanService) LinkNutritionPlan(ctx context.Context, id, nutritionPlanID string) (*domain.TrainingPlan, error) {
	if nutritionPlanID == "" {
		return nil, validationError("nutritionPlanId is required")
	}
	return s.Update(ctx, id, TrainingPlanPatch{NutritionPlanID: &nutritionPlanID})
}

// Delete leaves progress records that link the plan untouched.
func (s *trainingPlanService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return err
	}
	return notFoundOr(s.planRepo.Delete(ctx, id), KindTrainingPlan, id)
}

// apply validates the patch references and merges the patch into plan.
func (s *trainingPlanService) apply(ctx context.Context, plan *domain.TrainingPlan, p TrainingPlanPatch) error {
	refs, err := s.validator.Validate(ctx, ReferenceSet{
		TrainerID:       deref(p.TrainerID),
		UserID:          deref(p.UserID),
		NutritionPlanID: deref(p.NutritionPlanID),
	})
	if err != nil {
		return err
	}

	if p.Name != nil {
		plan.Name = strings.TrimSpace(*p.Name)
		if plan.Name == "" {
			return validationError("name cannot be empty")
		}
	}
	if p.Description != nil {
		plan.Description = strings.TrimSpace(*p.Description)
		if plan.Description == "" {
			return validationError("description cannot be empty")
		}
	}
	if p.TrainerID != nil {
		if refs.TrainerID == nil {
			return validationError("trainer cannot be removed")
		}
		plan.TrainerID = *refs.TrainerID
	}
	if p.UserID != nil {
		plan.UserID = refs.UserID
	}
	if p.NutritionPlanID != nil {
		plan.NutritionPlanID = refs.NutritionPlanID
	}
	if p.DurationWeeks != nil {
		if *p.DurationWeeks <= 0 {
			return validationError("durationWeeks must be positive")
		}
		plan.DurationWeeks = *p.DurationWeeks
	}
	if p.Level != nil {
		level, ok := domain.ParsePlanLevel(*p.Level)
		if !ok {
			return validationError("level must be one of beginner, intermediate, advanced")
		}
		plan.Level = level
	}
	if p.Exercises != nil {
		plan.Exercises = p.Exercises
	}
	return nil
}
