package service

import (
	"context"
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
)

// NutritionPlanPatch carries plan fields; nil fields are left untouched.
type NutritionPlanPatch struct {
	Name        *string
	Description *string
	TrainerID   *string
	Calories    *float64
	Macros      map[string]any
	Meals       []map[string]any
}

type NutritionPlanService interface {
	Create(ctx context.Context, in NutritionPlanPatch) (*domain.NutritionPlan, error)
	List(ctx context.Context) ([]domain.NutritionPlan, error)
	GetByID(ctx context.Context, id string) (*domain.NutritionPlan, error)
	Update(ctx context.Context, id string, patch NutritionPlanPatch) (*domain.NutritionPlan, error)
	Delete(ctx context.Context, id string) error
}

type nutritionPlanService struct {
	planRepo  repository.NutritionPlanRepository
	validator *ReferenceValidator
}

func NewNutritionPlanService(planRepo repository.NutritionPlanRepository, validator *ReferenceValidator) NutritionPlanService {
	return &nutritionPlanService{planRepo: planRepo, validator: validator}
}

func (s *nutritionPlanService) Create(ctx context.Context, in NutritionPlanPatch) (*domain.NutritionPlan, error) {
	if deref(in.TrainerID) == "" {
		return nil, validationError("trainer is required")
	}
	plan := &domain.NutritionPlan{Meals: []map[string]any{}}
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

func (s *nutritionPlanService) List(ctx context.Context) ([]domain.NutritionPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *nutritionPlanService) GetByID(ctx context.Context, rawID string) (*domain.NutritionPlan, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindNutritionPlan, id)
	}
	return plan, nil
}

func (s *nutritionPlanService) Update(ctx context.Context, rawID string, patch NutritionPlanPatch) (*domain.NutritionPlan, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	if _, err := (ReferenceSet{TrainerID: deref(patch.TrainerID)}).Parse(); err != nil {
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindNutritionPlan, id)
	}
	if err := s.apply(ctx, plan, patch); err != nil {
		return nil, err
	}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, notFoundOr(err, KindNutritionPlan, id)
	}
	return s.planRepo.GetByID(ctx, id)
}

// Delete leaves training plans and progress records that link the plan untouched.
func (s *nutritionPlanService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return err
	}
	return notFoundOr(s.planRepo.Delete(ctx, id), KindNutritionPlan, id)
}

func (s *nutritionPlanService) apply(ctx context.Context, plan *domain.NutritionPlan, p NutritionPlanPatch) error {
	refs, err := s.validator.Validate(ctx, ReferenceSet{TrainerID: deref(p.TrainerID)})
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
	if p.Calories != nil {
		if *p.Calories < 0 {
			return validationError("calories cannot be negative")
		}
		plan.Calories = *p.Calories
	}
	if p.Macros != nil {
		plan.Macros = p.Macros
	}
	if p.Meals != nil {
		plan.Meals = p.Meals
	}
	return nil
}
