package mongo

import (
	"context"
	"errors"
	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository" // Import the repository interfaces package
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	accountCollectionName = "accounts"
	userCollectionName    = "users"
)

// mongoAccountRepository implements the repository.AccountRepository interface using MongoDB.
type mongoAccountRepository struct {
	store[domain.Account]
}

// NewMongoAccountRepository creates a new instance of mongoAccountRepository.
func NewMongoAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &mongoAccountRepository{store: newStore[domain.Account](db, accountCollectionName)}
}

// Create inserts a new account into the database.
func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	// Basic validation, more robust validation belongs in service layer
	if account.Email == "" || account.PasswordHash == "" || account.Role == "" {
		return primitive.NilObjectID, errors.New("account email, password hash, and role are required")
	}

	account.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	return r.insert(ctx, account)
}

// GetByEmail retrieves an account by its email address.
func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	return r.findByID(ctx, id)
}

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	store[domain.User]
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{store: newStore[domain.User](db, userCollectionName)}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Name == "" {
		return primitive.NilObjectID, errors.New("user name is required")
	}

	user.ID = primitive.NewObjectID() // Generate new ObjectID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	return r.insert(ctx, user)
}

// GetByID retrieves a user by its MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *mongoUserRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"accountId": accountID})
}

func (r *mongoUserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.exists(ctx, id)
}

// List returns all users sorted by name.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "name", Value: 1}})
}

// Update overwrites the editable fields. AccountID is never changed here.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == primitive.NilObjectID {
		return errors.New("user ID is required for update")
	}
	set := bson.M{
		"name":  user.Name,
		"goals": user.Goals,
	}
	unset := bson.M{}
	setOrUnset(set, unset, "email", user.Email)
	setOrUnset(set, unset, "phone", user.Phone)
	if user.Weight != nil {
		set["weight"] = *user.Weight
	} else {
		unset["weight"] = ""
	}
	if user.Height != nil {
		set["height"] = *user.Height
	} else {
		unset["height"] = ""
	}
	if user.Age != nil {
		set["age"] = *user.Age
	} else {
		unset["age"] = ""
	}
	return r.updateByID(ctx, user.ID, set, unset)
}

func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.deleteByID(ctx, id)
}

func (r *mongoUserRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.setImage(ctx, id, image, thumbnail)
}

// setOrUnset writes a string field, or removes it when the value is empty.
func setOrUnset(set, unset bson.M, key, value string) {
	if value != "" {
		set[key] = value
		return
	}
	unset[key] = ""
}

// EnsureAccountIndexes creates necessary indexes for the accounts collection.
// Call this once during application startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true), // One account per email
		},
	})
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	ensureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true), // Sparse because email is optional
		},
		{
			Keys:    bson.D{{Key: "accountId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
}
