package service

import (
	"context"
	"testing"

	"fitcoach/coaching-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (f *fixture) plans() TrainingPlanService {
	return NewTrainingPlanService(f.repos.TrainingPlans, f.validator)
}

func TestTrainingPlanCreate_Defaults(t *testing.T) {
	f := newFixture(t)

	plan, err := f.plans().Create(context.Background(), TrainingPlanPatch{
		Name:        ptr("Hipertrofia"),
		Description: ptr("Cuatro dias"),
		TrainerID:   ptr(f.trainerID.Hex()),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationWeeks, plan.DurationWeeks)
	assert.Equal(t, domain.LevelBeginner, plan.Level)
	assert.NotNil(t, plan.Exercises)
	assert.Nil(t, plan.UserID)
}

func TestTrainingPlanCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := f.plans()
	ctx := context.Background()
	base := func() TrainingPlanPatch {
		return TrainingPlanPatch{Name: ptr("Plan"), Description: ptr("Desc"), TrainerID: ptr(f.trainerID.Hex())}
	}

	noTrainer := base()
	noTrainer.TrainerID = nil
	_, err := svc.Create(ctx, noTrainer)
	assert.ErrorIs(t, err, ErrValidationFailed)

	missingTrainer := base()
	missingTrainer.TrainerID = ptr(primitive.NewObjectID().Hex())
	_, err = svc.Create(ctx, missingTrainer)
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	missingUser := base()
	missingUser.UserID = ptr(primitive.NewObjectID().Hex())
	_, err = svc.Create(ctx, missingUser)
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	badLevel := base()
	badLevel.Level = ptr("expert")
	_, err = svc.Create(ctx, badLevel)
	assert.ErrorIs(t, err, ErrValidationFailed)

	noDescription := base()
	noDescription.Description = nil
	_, err = svc.Create(ctx, noDescription)
	assert.ErrorIs(t, err, ErrValidationFailed)

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestTrainingPlan_Queries(t *testing.T) {
	f := newFixture(t)
	svc := f.plans()
	ctx := context.Background()

	_, err := svc.Create(ctx, TrainingPlanPatch{
		Name: ptr("A"), Description: ptr("a"), TrainerID: ptr(f.trainerID.Hex()), Level: ptr("Advanced"),
		UserID: ptr(f.userID.Hex()),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, TrainingPlanPatch{Name: ptr("B"), Description: ptr("b"), TrainerID: ptr(f.trainerID.Hex())})
	require.NoError(t, err)

	advanced, err := svc.ListByLevel(ctx, "ADVANCED")
	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, "A", advanced[0].Name)

	_, err = svc.ListByLevel(ctx, " ")
	assert.ErrorIs(t, err, ErrValidationFailed)

	mine, err := svc.ListByUser(ctx, f.userID.Hex())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Name)

	_, err = svc.ListByUser(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestTrainingPlan_AssignAndLink(t *testing.T) {
	f := newFixture(t)
	svc := f.plans()
	ctx := context.Background()
	planID := f.trainingPlan(t, nil, nil)
	nutrition := f.nutritionPlan(t, "Definicion")

	plan, err := svc.AssignUser(ctx, planID.Hex(), f.userID.Hex())
	require.NoError(t, err)
	require.NotNil(t, plan.UserID)
	assert.Equal(t, f.userID, *plan.UserID)

	plan, err = svc.LinkNutritionPlan(ctx, planID.Hex(), nutrition.Hex())
	require.NoError(t, err)
	require.NotNil(t, plan.NutritionPlanID)
	assert.Equal(t, nutrition, *plan.NutritionPlanID)
	assert.Equal(t, f.userID, *plan.UserID, "linking keeps the assigned user")

	_, err = svc.AssignUser(ctx, planID.Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrReferenceNotFound)
	_, err = svc.AssignUser(ctx, planID.Hex(), "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	plan, err = svc.Update(ctx, planID.Hex(), TrainingPlanPatch{UserID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, plan.UserID)

	_, err = svc.Update(ctx, planID.Hex(), TrainingPlanPatch{TrainerID: ptr("")})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestTrainingPlan_DeleteLeavesProgress(t *testing.T) {
	f := newFixture(t)
	svc := f.plans()
	ctx := context.Background()
	planID := f.trainingPlan(t, &f.userID, nil)
	record := f.weightRecord(t, planID.Hex())

	require.NoError(t, svc.Delete(ctx, planID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, planID.Hex()), ErrNotFound)

	details, err := f.progress.GetByID(ctx, record.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, planID, *details.TrainingPlanID)
	assert.Nil(t, details.TrainingPlan, "a dangling link has no display fields")
}

func TestNutritionPlan_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := NewNutritionPlanService(f.repos.NutritionPlans, f.validator)
	ctx := context.Background()

	plan, err := svc.Create(ctx, NutritionPlanPatch{
		Name: ptr("Volumen"), Description: ptr("Superavit"), TrainerID: ptr(f.trainerID.Hex()),
		Macros: map[string]any{"protein": 160},
	})
	require.NoError(t, err)
	assert.Zero(t, plan.Calories)

	updated, err := svc.Update(ctx, plan.ID.Hex(), NutritionPlanPatch{Calories: ptr(2800.0)})
	require.NoError(t, err)
	assert.Equal(t, 2800.0, updated.Calories)
	assert.Equal(t, "Volumen", updated.Name)

	_, err = svc.Update(ctx, plan.ID.Hex(), NutritionPlanPatch{Calories: ptr(-1.0)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Create(ctx, NutritionPlanPatch{Name: ptr("X"), Description: ptr("x")})
	assert.ErrorIs(t, err, ErrValidationFailed)

	require.NoError(t, svc.Delete(ctx, plan.ID.Hex()))
	_, err = svc.GetByID(ctx, plan.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.repos.Users)
	ctx := context.Background()

	_, err := svc.Create(ctx, UserPatch{Name: ptr("Otra Ana"), Email: ptr("ANA@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, UserPatch{Name: ptr("Nadie"), Age: ptr(-1)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	user, err := svc.Update(ctx, f.userID.Hex(), UserPatch{Height: ptr(168.0)})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, 168.0, *user.Height)

	_, err = svc.GetByID(ctx, primitive.NewObjectID().Hex())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindUser, notFound.Entity)
}

func TestTrainerProfileService(t *testing.T) {
	f := newFixture(t)
	svc := NewTrainerProfileService(f.repos.TrainerProfiles)
	ctx := context.Background()
	accountID := primitive.NewObjectID()

	_, err := svc.UpdateMine(ctx, accountID, TrainerProfilePatch{FullName: ptr("Marta")})
	assert.ErrorIs(t, err, ErrNotFound, "updates never create a profile")

	_, err = f.repos.TrainerProfiles.Create(ctx, &domain.TrainerProfile{
		AccountID: accountID, FullName: "Marta", Certifications: []string{}, IsActive: true,
	})
	require.NoError(t, err)

	profile, err := svc.UpdateMine(ctx, accountID, TrainerProfilePatch{Experience: ptr("8 years"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Marta", profile.FullName)
	assert.Equal(t, "8 years", profile.Experience)
	assert.False(t, profile.IsActive)

	byAccount, err := svc.GetByAccountID(ctx, accountID.Hex())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byAccount.ID)

	_, err = svc.GetByAccountID(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidReference)
}
