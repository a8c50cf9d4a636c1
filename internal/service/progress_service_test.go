package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/metrics"
	"fitcoach/coaching-api/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// =============================================================================
// Create (full record payload)
// =============================================================================

func TestCreate_WeightRecord(t *testing.T) {
	f := newFixture(t)

	details, err := f.progress.Create(context.Background(), CreateProgressInput{
		UserID: f.userID.Hex(),
		Weight: ptr(80.5),
		Notes:  "ayunas",
	})

	require.NoError(t, err)
	assert.False(t, details.ID.IsZero())
	assert.Equal(t, domain.ProgressTypeWeight, details.Type)
	require.NotNil(t, details.Weight)
	assert.Equal(t, 80.5, *details.Weight)
	assert.Empty(t, details.Measurements)
	assert.Equal(t, fixedNow, details.Date)
	require.NotNil(t, details.User)
	assert.Equal(t, "Ana", details.User.Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterProgressCreated.WithLabelValues(metrics.PathwayCreate)))
}

func TestCreate_ShapeRules(t *testing.T) {
	date := time.Date(2024, 5, 20, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      CreateProgressInput
		wantErr error
		check   func(t *testing.T, p *domain.ProgressDetails)
	}{
		{
			name: "measurements infer type",
			in:   CreateProgressInput{Measurements: map[string]any{"cintura": 82}},
			check: func(t *testing.T, p *domain.ProgressDetails) {
				assert.Equal(t, domain.ProgressTypeMeasurement, p.Type)
				assert.Nil(t, p.Weight)
				assert.Equal(t, 82, p.Measurements["cintura"])
			},
		},
		{
			name: "weight type takes value",
			in:   CreateProgressInput{Type: "weight", Value: ptr(75.0), Date: &date},
			check: func(t *testing.T, p *domain.ProgressDetails) {
				require.NotNil(t, p.Weight)
				assert.Equal(t, 75.0, *p.Weight)
				assert.Equal(t, date, p.Date)
			},
		},
		{
			name: "explicit weight wins over value",
			in:   CreateProgressInput{Type: "weight", Value: ptr(1.0), Weight: ptr(70.0)},
			check: func(t *testing.T, p *domain.ProgressDetails) {
				assert.Equal(t, 70.0, *p.Weight)
			},
		},
		{
			name: "typed value goes to measurements",
			in:   CreateProgressInput{Type: "cintura", Value: ptr(81.0), Unit: "cm"},
			check: func(t *testing.T, p *domain.ProgressDetails) {
				assert.Nil(t, p.Weight)
				assert.Equal(t, "cintura", p.Measurements[domain.MeasurementKeyType])
				assert.Equal(t, 81.0, p.Measurements[domain.MeasurementKeyValue])
				assert.Equal(t, "cm", p.Measurements[domain.MeasurementKeyUnit])
			},
		},
		{
			name:    "weight and measurements together",
			in:      CreateProgressInput{Weight: ptr(80.0), Measurements: map[string]any{"cintura": 82}},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "weight type with measurements",
			in:      CreateProgressInput{Type: "weight", Weight: ptr(80.0), Measurements: map[string]any{"cintura": 82}},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "measurement type with weight",
			in:      CreateProgressInput{Type: "cintura", Weight: ptr(80.0)},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "nothing measured",
			in:      CreateProgressInput{},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "weight type without a value",
			in:      CreateProgressInput{Type: "weight"},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "zero weight through value",
			in:      CreateProgressInput{Type: "weight", Value: ptr(0.0)},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "negative weight",
			in:      CreateProgressInput{Weight: ptr(-3.0)},
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.in.UserID = f.userID.Hex()

			details, err := f.progress.Create(context.Background(), tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, f.progressCount(t), "rejected input must not be stored")
				return
			}
			require.NoError(t, err)
			tt.check(t, details)
		})
	}
}

func TestCreate_References(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progress.Create(ctx, CreateProgressInput{UserID: "bad", Weight: ptr(80.0)})
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = f.progress.Create(ctx, CreateProgressInput{UserID: primitive.NewObjectID().Hex(), Weight: ptr(80.0)})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	// The all-zero id is well formed, so it is looked up like any other.
	_, err = f.progress.Create(ctx, CreateProgressInput{UserID: primitive.NilObjectID.Hex(), Weight: ptr(80.0)})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.NotErrorIs(t, err, ErrInvalidReference)

	othersPlan := f.trainingPlan(t, &f.otherUserID, nil)
	_, err = f.progress.Create(ctx, CreateProgressInput{
		UserID:         f.userID.Hex(),
		TrainingPlanID: othersPlan.Hex(),
		Weight:         ptr(80.0),
	})
	assert.ErrorIs(t, err, ErrOwnershipMismatch)

	_, err = f.progress.Create(ctx, CreateProgressInput{Weight: ptr(80.0)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	assert.Zero(t, f.progressCount(t))
}

func TestCreate_InheritsNutritionPlan(t *testing.T) {
	f := newFixture(t)
	nutrition := f.nutritionPlan(t, "Definicion")
	plan := f.trainingPlan(t, &f.userID, &nutrition)

	details, err := f.progress.Create(context.Background(), CreateProgressInput{
		UserID:         f.userID.Hex(),
		TrainingPlanID: plan.Hex(),
		Weight:         ptr(79.0),
	})

	require.NoError(t, err)
	require.NotNil(t, details.NutritionPlanID)
	assert.Equal(t, nutrition, *details.NutritionPlanID)
	require.NotNil(t, details.TrainingPlan)
	assert.Equal(t, "Fuerza", details.TrainingPlan.Name)
	require.NotNil(t, details.NutritionPlan)
	assert.Equal(t, "Definicion", details.NutritionPlan.Name)
}

func TestCreate_ExplicitNutritionPlanWins(t *testing.T) {
	f := newFixture(t)
	inherited := f.nutritionPlan(t, "Volumen")
	explicit := f.nutritionPlan(t, "Mantenimiento")
	plan := f.trainingPlan(t, nil, &inherited)

	details, err := f.progress.Create(context.Background(), CreateProgressInput{
		UserID:          f.userID.Hex(),
		TrainingPlanID:  plan.Hex(),
		NutritionPlanID: explicit.Hex(),
		Weight:          ptr(79.0),
	})

	require.NoError(t, err)
	require.NotNil(t, details.NutritionPlanID)
	assert.Equal(t, explicit, *details.NutritionPlanID)
}

// failingDetails stores records but cannot read them back joined.
type failingDetails struct {
	repository.ProgressRepository
}

func (failingDetails) GetDetailsByID(context.Context, primitive.ObjectID) (*domain.ProgressDetails, error) {
	return nil, errors.New("lookup unavailable")
}

func TestCreate_RereadFailureReturnsStoredRecord(t *testing.T) {
	f := newFixture(t)
	svc := NewProgressService(failingDetails{f.repos.Progress}, f.validator, nil, nil)

	details, err := svc.Create(context.Background(), CreateProgressInput{UserID: f.userID.Hex(), Weight: ptr(81.0)})

	require.NoError(t, err)
	assert.False(t, details.ID.IsZero())
	assert.Equal(t, 81.0, *details.Weight)
	assert.Nil(t, details.User)

	stored, err := f.repos.Progress.GetByID(context.Background(), details.ID)
	require.NoError(t, err)
	assert.Equal(t, f.userID, stored.UserID)
}

// =============================================================================
// Create (register payload)
// =============================================================================

func TestRegister_WeightGoesToWeight(t *testing.T) {
	f := newFixture(t)

	details, err := f.progress.Create(context.Background(), RegisterProgressInput{
		UserID: f.userID.Hex(),
		Type:   "weight",
		Value:  77.2,
		Unit:   "kg",
	})

	require.NoError(t, err)
	require.NotNil(t, details.Weight)
	assert.Equal(t, 77.2, *details.Weight)
	assert.Empty(t, details.Measurements)
	assert.Equal(t, fixedNow, details.Date)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CounterProgressCreated.WithLabelValues(metrics.PathwayRegister)))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.CounterProgressCreated.WithLabelValues(metrics.PathwayCreate)))
}

func TestRegister_WeightMustBePositive(t *testing.T) {
	f := newFixture(t)

	for _, value := range []float64{0, -1} {
		_, err := f.progress.Create(context.Background(), RegisterProgressInput{
			UserID: f.userID.Hex(),
			Type:   "weight",
			Value:  value,
			Unit:   "kg",
		})
		assert.ErrorIs(t, err, ErrValidationFailed, "value %v", value)
	}
	assert.Zero(t, f.progressCount(t))

	// Other types keep any value.
	_, err := f.progress.Create(context.Background(), RegisterProgressInput{
		UserID: f.userID.Hex(),
		Type:   "grasa",
		Value:  0,
	})
	require.NoError(t, err)
}

func TestRegister_OtherTypesGoToMeasurements(t *testing.T) {
	f := newFixture(t)

	details, err := f.progress.Create(context.Background(), RegisterProgressInput{
		UserID: f.userID.Hex(),
		Type:   "grasa",
		Value:  18.5,
		Unit:   "%",
	})

	require.NoError(t, err)
	assert.Nil(t, details.Weight)
	assert.Equal(t, "grasa", details.Type)
	assert.Equal(t, map[string]any{"type": "grasa", "value": 18.5, "unit": "%"}, details.Measurements)
}

func TestRegister_PlanAliases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nutrition := f.nutritionPlan(t, "Definicion")
	plan := f.trainingPlan(t, &f.userID, &nutrition)
	other := f.trainingPlan(t, &f.userID, nil)

	details, err := f.progress.Create(ctx, RegisterProgressInput{
		UserID: f.userID.Hex(), Type: "weight", Value: 80, PlanID: plan.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, plan, *details.TrainingPlanID)
	assert.Equal(t, nutrition, *details.NutritionPlanID)

	details, err = f.progress.Create(ctx, RegisterProgressInput{
		UserID: f.userID.Hex(), Type: "weight", Value: 80,
		PlanID: plan.Hex(), TrainingPlanID: strings.ToUpper(plan.Hex()),
	})
	require.NoError(t, err)
	assert.Equal(t, plan, *details.TrainingPlanID)

	_, err = f.progress.Create(ctx, RegisterProgressInput{
		UserID: f.userID.Hex(), Type: "weight", Value: 80,
		PlanID: plan.Hex(), TrainingPlanID: other.Hex(),
	})
	assert.ErrorIs(t, err, ErrAmbiguousPlanReference)
	assert.Equal(t, 2, f.progressCount(t))
}

func TestRegister_RequiresType(t *testing.T) {
	f := newFixture(t)

	_, err := f.progress.Create(context.Background(), RegisterProgressInput{UserID: f.userID.Hex(), Type: "  ", Value: 1})

	assert.ErrorIs(t, err, ErrValidationFailed)
}

// =============================================================================
// Update
// =============================================================================

func (f *fixture) weightRecord(t *testing.T, plan string) *domain.ProgressDetails {
	t.Helper()
	details, err := f.progress.Create(context.Background(), CreateProgressInput{
		UserID:         f.userID.Hex(),
		TrainingPlanID: plan,
		Weight:         ptr(80.0),
	})
	require.NoError(t, err)
	return details
}

func TestUpdate_PlanLinksCheckedAgainstOwner(t *testing.T) {
	f := newFixture(t)
	record := f.weightRecord(t, "")
	othersPlan := f.trainingPlan(t, &f.otherUserID, nil)

	_, err := f.progress.Update(context.Background(), record.ID.Hex(), ProgressPatch{TrainingPlanID: ptr(othersPlan.Hex())})

	assert.ErrorIs(t, err, ErrOwnershipMismatch)
	stored, err := f.repos.Progress.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TrainingPlanID)
}

func TestUpdate_LinkAndClearPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nutrition := f.nutritionPlan(t, "Definicion")
	plan := f.trainingPlan(t, &f.userID, &nutrition)
	record := f.weightRecord(t, "")

	details, err := f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{TrainingPlanID: ptr(plan.Hex())})
	require.NoError(t, err)
	require.NotNil(t, details.TrainingPlanID)
	assert.Equal(t, plan, *details.TrainingPlanID)
	require.NotNil(t, details.NutritionPlanID)
	assert.Equal(t, nutrition, *details.NutritionPlanID)
	assert.Equal(t, f.userID, details.UserID)

	details, err = f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{TrainingPlanID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, details.TrainingPlanID)
	assert.Nil(t, details.TrainingPlan)

	details, err = f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{NutritionPlanID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, details.NutritionPlanID)

	// Linking the plan while clearing the nutrition plan keeps it cleared.
	fresh := f.weightRecord(t, "")
	details, err = f.progress.Update(ctx, fresh.ID.Hex(), ProgressPatch{
		TrainingPlanID:  ptr(plan.Hex()),
		NutritionPlanID: ptr(""),
	})
	require.NoError(t, err)
	require.NotNil(t, details.TrainingPlanID)
	assert.Equal(t, plan, *details.TrainingPlanID)
	assert.Nil(t, details.NutritionPlanID)
	assert.Nil(t, details.NutritionPlan)

	// An explicit nutrition plan wins over the plan's own.
	other := f.nutritionPlan(t, "Volumen")
	details, err = f.progress.Update(ctx, fresh.ID.Hex(), ProgressPatch{
		TrainingPlanID:  ptr(plan.Hex()),
		NutritionPlanID: ptr(other.Hex()),
	})
	require.NoError(t, err)
	require.NotNil(t, details.NutritionPlanID)
	assert.Equal(t, other, *details.NutritionPlanID)
}

func TestUpdate_ExclusivityOnMergedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.weightRecord(t, "")

	// Still typed as weight, so measurements alone are rejected.
	_, err := f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{Measurements: map[string]any{"cintura": 80}})
	assert.ErrorIs(t, err, ErrValidationFailed)

	details, err := f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{
		Type:         ptr("cintura"),
		Measurements: map[string]any{"cintura": 80},
	})
	require.NoError(t, err)
	assert.Nil(t, details.Weight)
	assert.Equal(t, "cintura", details.Type)

	_, err = f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{Weight: ptr(79.0)})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdate_Values(t *testing.T) {
	f := newFixture(t)
	record := f.weightRecord(t, "")
	date := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	details, err := f.progress.Update(context.Background(), record.ID.Hex(), ProgressPatch{
		Weight: ptr(78.0),
		Notes:  ptr("tras vacaciones"),
		Date:   &date,
	})

	require.NoError(t, err)
	assert.Equal(t, 78.0, *details.Weight)
	assert.Equal(t, "tras vacaciones", details.Notes)
	assert.Equal(t, date, details.Date)
}

func TestUpdate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	_, err := f.progress.Update(ctx, "bad", ProgressPatch{})
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = f.progress.Update(ctx, missing, ProgressPatch{Notes: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	// A malformed link is reported before the record is looked up.
	_, err = f.progress.Update(ctx, missing, ProgressPatch{TrainingPlanID: ptr("bad")})
	assert.ErrorIs(t, err, ErrInvalidReference)

	record := f.weightRecord(t, "")
	_, err = f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{NutritionPlanID: ptr(missing)})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	_, err = f.progress.Update(ctx, record.ID.Hex(), ProgressPatch{Weight: ptr(0.0)})
	assert.ErrorIs(t, err, ErrValidationFailed)
	stored, err := f.progress.GetByID(ctx, record.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 80.0, *stored.Weight)
}

// =============================================================================
// Delete, history and evolution
// =============================================================================

func TestDelete_RemovesRecordAndImages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	record := f.weightRecord(t, "")
	require.NoError(t, f.repos.Progress.SetImage(ctx, record.ID,
		f.files.PublicURL("images/progreso/a.jpg"), "https://elsewhere.test/thumb.jpg"))

	require.NoError(t, f.progress.Delete(ctx, record.ID.Hex()))

	assert.Equal(t, []string{"images/progreso/a.jpg"}, f.files.deleted)
	_, err := f.progress.GetByID(ctx, record.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.progress.Delete(ctx, record.ID.Hex())
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, KindProgress, notFound.Entity)
}

func TestDelete_StorageFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.files.deleteErr = errors.New("bucket offline")
	record := f.weightRecord(t, "")
	require.NoError(t, f.repos.Progress.SetImage(ctx, record.ID, f.files.PublicURL("images/progreso/a.jpg"), ""))

	assert.NoError(t, f.progress.Delete(ctx, record.ID.Hex()))
	assert.Zero(t, f.progressCount(t))
}

func TestHistoryAndEvolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 1, 0)

	_, err := f.progress.Create(ctx, CreateProgressInput{UserID: f.userID.Hex(), Weight: ptr(80.0), Date: &d1})
	require.NoError(t, err)
	_, err = f.progress.Create(ctx, CreateProgressInput{UserID: f.userID.Hex(), Weight: ptr(77.0), Date: &d2})
	require.NoError(t, err)
	_, err = f.progress.Create(ctx, CreateProgressInput{UserID: f.otherUserID.Hex(), Weight: ptr(60.0), Date: &d2})
	require.NoError(t, err)

	history, err := f.progress.History(ctx, f.userID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, d2, history[0].Date)
	assert.Equal(t, d1, history[1].Date)

	evo, err := f.progress.Evolution(ctx, f.userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, evo.TotalCount)
	assert.Equal(t, -3.0, evo.WeightEvolution.Delta)

	_, err = f.progress.History(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidReference)
	_, err = f.progress.Evolution(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidReference)

	evo, err = f.progress.Evolution(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Zero(t, evo.TotalCount)
}
