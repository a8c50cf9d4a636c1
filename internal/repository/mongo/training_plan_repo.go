// internal/repository/mongo/training_plan_repo.go
package mongo

import (
	"context"
	"errors"
	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	trainingPlanCollectionName  = "training_plans"
	nutritionPlanCollectionName = "nutrition_plans"
)

// newestFirst is the default ordering for plan listings.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// mongoTrainingPlanRepository implements repository.TrainingPlanRepository
type mongoTrainingPlanRepository struct {
	store[domain.TrainingPlan]
}

// NewMongoTrainingPlanRepository creates a new TrainingPlan repository.
func NewMongoTrainingPlanRepository(db *mongo.Database) repository.TrainingPlanRepository {
	return &mongoTrainingPlanRepository{store: newStore[domain.TrainingPlan](db, trainingPlanCollectionName)}
}

// Create inserts a new training plan.
func (r *mongoTrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.TrainerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires trainerId and name")
	}
	if plan.Exercises == nil {
		plan.Exercises = []map[string]any{}
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	return r.insert(ctx, plan)
}

// GetByID retrieves a single training plan by its ID.
func (r *mongoTrainingPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	return r.findByID(ctx, id)
}

func (r *mongoTrainingPlanRepository) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	return r.find(ctx, bson.M{}, newestFirst)
}

// GetByUserID retrieves all plans assigned to a user, newest first.
func (r *mongoTrainingPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	return r.find(ctx, bson.M{"userId": userID}, newestFirst)
}

// GetByLevel matches the level case-insensitively.
func (r *mongoTrainingPlanRepository) GetByLevel(ctx context.Context, level string) ([]domain.TrainingPlan, error) {
	filter := bson.M{"level": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(level) + "$", Options: "i"}}
	return r.find(ctx, filter, newestFirst)
}

// Update overwrites the plan. CreatedAt is never changed.
func (r *mongoTrainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("training plan ID is required for update")
	}

	set := bson.M{
		"name":          plan.Name,
		"description":   plan.Description,
		"trainerId":     plan.TrainerID,
		"durationWeeks": plan.DurationWeeks,
		"level":         plan.Level,
		"exercises":     plan.Exercises,
	}
	unset := bson.M{}
	setOptionalID(set, unset, "userId", plan.UserID)
	setOptionalID(set, unset, "nutritionPlanId", plan.NutritionPlanID)

	return r.updateByID(ctx, plan.ID, set, unset)
}

func (r *mongoTrainingPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoTrainingPlanRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.setImage(ctx, id, image, thumbnail)
}

// mongoNutritionPlanRepository implements repository.NutritionPlanRepository
type mongoNutritionPlanRepository struct {
	store[domain.NutritionPlan]
}

func NewMongoNutritionPlanRepository(db *mongo.Database) repository.NutritionPlanRepository {
	return &mongoNutritionPlanRepository{store: newStore[domain.NutritionPlan](db, nutritionPlanCollectionName)}
}

func (r *mongoNutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	if plan.TrainerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires trainerId and name")
	}
	if plan.Meals == nil {
		plan.Meals = []map[string]any{}
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	return r.insert(ctx, plan)
}

func (r *mongoNutritionPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	return r.findByID(ctx, id)
}

func (r *mongoNutritionPlanRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *mongoNutritionPlanRepository) List(ctx context.Context) ([]domain.NutritionPlan, error) {
	return r.find(ctx, bson.M{}, newestFirst)
}

func (r *mongoNutritionPlanRepository) Update(ctx context.Context, plan *domain.NutritionPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("nutrition plan ID is required for update")
	}
	set := bson.M{
		"name":        plan.Name,
		"description": plan.Description,
		"trainerId":   plan.TrainerID,
		"calories":    plan.Calories,
		"meals":       plan.Meals,
	}
	unset := bson.M{}
	if plan.Macros != nil {
		set["macros"] = plan.Macros
	} else {
		unset["macros"] = ""
	}
	return r.updateByID(ctx, plan.ID, set, unset)
}

func (r *mongoNutritionPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoNutritionPlanRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.setImage(ctx, id, image, thumbnail)
}

// EnsureTrainingPlanIndexes creates necessary indexes. Call during startup.
func EnsureTrainingPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "level", Value: 1}},
			Options: options.Index(),
		},
		{
			// Plans assigned to a user, newest first
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "nutritionPlanId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}

func EnsureNutritionPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
	})
}
