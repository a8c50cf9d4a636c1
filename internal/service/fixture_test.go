package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/metrics"
	"fitcoach/coaching-api/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

// fixture wires the services on top of the in-memory repositories and seeds
// two users and one trainer.
type fixture struct {
	repos     *memory.Repositories
	metrics   *metrics.Metrics
	files     *fakeStorage
	validator *ReferenceValidator
	progress  *progressService

	userID      primitive.ObjectID
	otherUserID primitive.ObjectID
	trainerID   primitive.ObjectID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repos := memory.NewRepositories()
	f := &fixture{
		repos:   repos,
		metrics: metrics.NewTest(),
		files:   &fakeStorage{base: "https://cdn.test/bucket"},
	}
	f.validator = NewReferenceValidator(repos.Users, repos.Trainers, repos.TrainingPlans, repos.NutritionPlans)
	f.progress = NewProgressService(repos.Progress, f.validator, f.files, f.metrics).(*progressService)
	f.progress.now = func() time.Time { return fixedNow }

	var err error
	f.userID, err = repos.Users.Create(ctx, &domain.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	f.otherUserID, err = repos.Users.Create(ctx, &domain.User{Name: "Luis", Email: "luis@example.com"})
	require.NoError(t, err)
	f.trainerID, err = repos.Trainers.Create(ctx, &domain.Trainer{Name: "Marta", Certifications: []string{}})
	require.NoError(t, err)
	return f
}

func (f *fixture) nutritionPlan(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	id, err := f.repos.NutritionPlans.Create(context.Background(), &domain.NutritionPlan{
		Name:        name,
		Description: name + " plan",
		TrainerID:   f.trainerID,
		Calories:    2000,
		Meals:       []map[string]any{},
	})
	require.NoError(t, err)
	return id
}

// trainingPlan stores a plan owned by owner (nil for unassigned), linked to nutrition (may be nil).
func (f *fixture) trainingPlan(t *testing.T, owner, nutrition *primitive.ObjectID) primitive.ObjectID {
	t.Helper()
	id, err := f.repos.TrainingPlans.Create(context.Background(), &domain.TrainingPlan{
		Name:            "Fuerza",
		Description:     "Tres dias por semana",
		TrainerID:       f.trainerID,
		UserID:          owner,
		NutritionPlanID: nutrition,
		DurationWeeks:   domain.DefaultDurationWeeks,
		Level:           domain.LevelBeginner,
		Exercises:       []map[string]any{},
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) progressCount(t *testing.T) int {
	t.Helper()
	records, err := f.repos.Progress.ListDetails(context.Background(), nil)
	require.NoError(t, err)
	return len(records)
}

func ptr[T any](v T) *T {
	return &v
}

// fakeStorage serves objects from base and records deletions.
type fakeStorage struct {
	base       string
	deleted    []string
	presignErr error
	deleteErr  error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.base + "/" + objectKey + "?content-type=" + contentType + "&signature=test", nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return f.deleteErr
}

func (f *fakeStorage) PublicURL(objectKey string) string {
	return f.base + "/" + objectKey
}

func (f *fakeStorage) ObjectKey(publicURL string) (string, bool) {
	key, ok := strings.CutPrefix(publicURL, f.base+"/")
	return key, ok && key != ""
}
