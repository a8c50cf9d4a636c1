package mongo

import (
	"context"
	"errors"
	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "progress"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	store[domain.Progress]
}

// NewMongoProgressRepository creates a new Progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{store: newStore[domain.Progress](db, progressCollectionName)}
}

// Create inserts a new progress record. Date must already be set by the caller.
func (r *mongoProgressRepository) Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	if progress.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress requires userId")
	}

	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if progress.Date.IsZero() {
		progress.Date = now
	}
	progress.CreatedAt = now
	progress.UpdatedAt = now

	return r.insert(ctx, progress)
}

func (r *mongoProgressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	return r.findByID(ctx, id)
}

// GetDetailsByID runs the display-field join for a single record.
func (r *mongoProgressRepository) GetDetailsByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressDetails, error) {
	details, err := r.aggregateDetails(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, repository.ErrNotFound
	}
	return &details[0], nil
}

// ListDetails returns records newest first, optionally restricted to one user.
func (r *mongoProgressRepository) ListDetails(ctx context.Context, userID *primitive.ObjectID) ([]domain.ProgressDetails, error) {
	match := bson.M{}
	if userID != nil {
		match["userId"] = *userID
	}
	return r.aggregateDetails(ctx, match)
}

// GetByUserID returns a user's records in chronological order.
func (r *mongoProgressRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return r.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "date", Value: 1}})
}

// Update writes every mutable field. UserID and CreatedAt are never changed.
func (r *mongoProgressRepository) Update(ctx context.Context, progress *domain.Progress) error {
	if progress.ID == primitive.NilObjectID {
		return errors.New("progress ID is required for update")
	}

	set := bson.M{
		"date": progress.Date,
		"type": progress.Type,
	}
	unset := bson.M{}
	setOptionalID(set, unset, "trainingPlanId", progress.TrainingPlanID)
	setOptionalID(set, unset, "nutritionPlanId", progress.NutritionPlanID)
	if progress.Weight != nil {
		set["weight"] = *progress.Weight
	} else {
		unset["weight"] = ""
	}
	if progress.HasMeasurements() {
		set["measurements"] = progress.Measurements
	} else {
		unset["measurements"] = ""
	}
	setOrUnset(set, unset, "notes", progress.Notes)
	setOrUnset(set, unset, "image", progress.Image)
	setOrUnset(set, unset, "imageThumbnail", progress.ImageThumbnail)

	return r.updateByID(ctx, progress.ID, set, unset)
}

func (r *mongoProgressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoProgressRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.setImage(ctx, id, image, thumbnail)
}

func (r *mongoProgressRepository) aggregateDetails(ctx context.Context, match bson.M) ([]domain.ProgressDetails, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = append(pipeline, lookupOne(userCollectionName, "userId", "user",
		bson.M{"name": 1, "email": 1, "image": 1})...)
	pipeline = append(pipeline, lookupOne(trainingPlanCollectionName, "trainingPlanId", "trainingPlan",
		bson.M{"name": 1, "level": 1, "durationWeeks": 1, "nutritionPlanId": 1})...)
	pipeline = append(pipeline, lookupOne(nutritionPlanCollectionName, "nutritionPlanId", "nutritionPlan",
		bson.M{"name": 1, "description": 1, "calories": 1, "macros": 1})...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	details := []domain.ProgressDetails{}
	if err = cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// lookupOne joins at most one document from another collection under field `as`,
// keeping only the projected fields. A dangling reference leaves `as` absent.
func lookupOne(from, localField, as string, projection bson.M) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   localField,
			"foreignField": "_id",
			"pipeline":     bson.A{bson.M{"$project": projection}},
			"as":           as,
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$" + as, "preserveNullAndEmptyArrays": true}}},
	}
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			// History and evolution queries: one user's records by date
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}
