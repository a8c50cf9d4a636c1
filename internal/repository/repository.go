package repository

import (
	"context"
	"fitcoach/coaching-api/internal/domain" // Import our defined domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// AccountRepository stores login credentials.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error)
}

// ImageRepository is implemented by every repository whose documents carry an image.
type ImageRepository interface {
	SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	ImageRepository
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.User, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainerRepository defines the interface for interacting with trainer data.
type TrainerRepository interface {
	ImageRepository
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	Update(ctx context.Context, trainer *domain.Trainer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainerProfileRepository stores trainer profiles keyed by account.
type TrainerProfileRepository interface {
	Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error)
	GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error)
	List(ctx context.Context) ([]domain.TrainerProfile, error)
	Update(ctx context.Context, profile *domain.TrainerProfile) error
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	ImageRepository
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) // Newest first
	GetByLevel(ctx context.Context, level string) ([]domain.TrainingPlan, error)               // Case-insensitive
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NutritionPlanRepository defines the interface for interacting with nutrition plan data.
type NutritionPlanRepository interface {
	ImageRepository
	Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]domain.NutritionPlan, error)
	Update(ctx context.Context, plan *domain.NutritionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgressRepository defines the interface for interacting with progress records.
type ProgressRepository interface {
	ImageRepository
	Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error)
	// GetDetailsByID returns the record joined with its user and plan summaries.
	GetDetailsByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressDetails, error)
	// ListDetails returns records newest first, restricted to userID when it is non-nil.
	ListDetails(ctx context.Context, userID *primitive.ObjectID) ([]domain.ProgressDetails, error)
	// GetByUserID returns a user's records ordered by date ascending.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error)
	Update(ctx context.Context, progress *domain.Progress) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
