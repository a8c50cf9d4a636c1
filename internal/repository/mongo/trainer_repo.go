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

const (
	trainerCollectionName        = "trainers"
	trainerProfileCollectionName = "trainer_profiles"
)

// mongoTrainerRepository implements repository.TrainerRepository
type mongoTrainerRepository struct {
	store[domain.Trainer]
}

// NewMongoTrainerRepository creates a new Trainer repository backed by MongoDB.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{store: newStore[domain.Trainer](db, trainerCollectionName)}
}

func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Name == "" {
		return primitive.NilObjectID, errors.New("trainer name is required")
	}
	if trainer.Certifications == nil {
		trainer.Certifications = []string{}
	}

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	return r.insert(ctx, trainer)
}

func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	return r.findByID(ctx, id)
}

func (r *mongoTrainerRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, id)
}

func (r *mongoTrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "name", Value: 1}})
}

func (r *mongoTrainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	if trainer.ID == primitive.NilObjectID {
		return errors.New("trainer ID is required for update")
	}
	set := bson.M{
		"name":           trainer.Name,
		"certifications": trainer.Certifications,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "specialty", trainer.Specialty)
	setOrUnset(set, unset, "email", trainer.Email)
	setOrUnset(set, unset, "phone", trainer.Phone)
	return r.updateByID(ctx, trainer.ID, set, unset)
}

func (r *mongoTrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoTrainerRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.setImage(ctx, id, image, thumbnail)
}

// mongoTrainerProfileRepository implements repository.TrainerProfileRepository
type mongoTrainerProfileRepository struct {
	store[domain.TrainerProfile]
}

func NewMongoTrainerProfileRepository(db *mongo.Database) repository.TrainerProfileRepository {
	return &mongoTrainerProfileRepository{store: newStore[domain.TrainerProfile](db, trainerProfileCollectionName)}
}

func (r *mongoTrainerProfileRepository) Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error) {
	if profile.AccountID == primitive.NilObjectID || profile.FullName == "" {
		return primitive.NilObjectID, errors.New("profile requires accountId and fullName")
	}
	if profile.Certifications == nil {
		profile.Certifications = []string{}
	}

	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return r.insert(ctx, profile)
}

func (r *mongoTrainerProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	return r.findOne(ctx, bson.M{"accountId": accountID})
}

func (r *mongoTrainerProfileRepository) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

// Update never touches accountId or the verification flag.
func (r *mongoTrainerProfileRepository) Update(ctx context.Context, profile *domain.TrainerProfile) error {
	set := bson.M{
		"fullName":       profile.FullName,
		"certifications": profile.Certifications,
		"isActive":       profile.IsActive,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "phone", profile.Phone)
	setOrUnset(set, unset, "specialty", profile.Specialty)
	setOrUnset(set, unset, "experience", profile.Experience)
	return r.updateByID(ctx, profile.ID, set, unset)
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "specialty", Value: 1}},
			Options: options.Index(),
		},
	})
}

// EnsureTrainerProfileIndexes creates necessary indexes for the trainer_profiles collection.
func EnsureTrainerProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().SetUnique(true), // One profile per account
		},
	})
}
