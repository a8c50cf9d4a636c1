package service

import (
	"fitcoach/coaching-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveNutritionPlan returns the nutrition plan a progress record should
// link to. An explicit choice always wins, even over a plan that carries a
// different one. Otherwise the training plan's own link is inherited.
func ResolveNutritionPlan(plan *domain.TrainingPlan, explicit *primitive.ObjectID) *primitive.ObjectID {
	if explicit != nil {
		id := *explicit
		return &id
	}
	if plan != nil && plan.NutritionPlanID != nil {
		id := *plan.NutritionPlanID
		return &id
	}
	return nil
}
