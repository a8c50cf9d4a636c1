package service

import (
	"testing"

	"fitcoach/coaching-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveNutritionPlan(t *testing.T) {
	inherited := primitive.NewObjectID()
	explicit := primitive.NewObjectID()
	linked := &domain.TrainingPlan{NutritionPlanID: &inherited}
	unlinked := &domain.TrainingPlan{}

	tests := []struct {
		name     string
		plan     *domain.TrainingPlan
		explicit *primitive.ObjectID
		want     *primitive.ObjectID
	}{
		{"no plan, no explicit", nil, nil, nil},
		{"explicit without plan", nil, &explicit, &explicit},
		{"inherited from plan", linked, nil, &inherited},
		{"explicit wins over plan", linked, &explicit, &explicit},
		{"plan without nutrition plan", unlinked, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveNutritionPlan(tt.plan, tt.explicit)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestResolveNutritionPlan_ReturnsCopy(t *testing.T) {
	inherited := primitive.NewObjectID()
	plan := &domain.TrainingPlan{NutritionPlanID: &inherited}

	got := ResolveNutritionPlan(plan, nil)
	require.NotNil(t, got)
	*got = primitive.NewObjectID()

	assert.Equal(t, inherited, *plan.NutritionPlanID)
}
