package memory

import (
	"context"
	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repositories groups one in-memory repository per collection.
type Repositories struct {
	Accounts        *AccountRepository
	Users           *UserRepository
	Trainers        *TrainerRepository
	TrainerProfiles *TrainerProfileRepository
	TrainingPlans   *TrainingPlanRepository
	NutritionPlans  *NutritionPlanRepository
	Progress        *ProgressRepository
}

// NewRepositories returns an empty set of collections.
func NewRepositories() *Repositories {
	users := &UserRepository{store: newStore(func(u *domain.User) *primitive.ObjectID { return &u.ID })}
	plans := &TrainingPlanRepository{store: newStore(func(p *domain.TrainingPlan) *primitive.ObjectID { return &p.ID })}
	nutrition := &NutritionPlanRepository{store: newStore(func(p *domain.NutritionPlan) *primitive.ObjectID { return &p.ID })}
	return &Repositories{
		Accounts:        &AccountRepository{store: newStore(func(a *domain.Account) *primitive.ObjectID { return &a.ID })},
		Users:           users,
		Trainers:        &TrainerRepository{store: newStore(func(t *domain.Trainer) *primitive.ObjectID { return &t.ID })},
		TrainerProfiles: &TrainerProfileRepository{store: newStore(func(p *domain.TrainerProfile) *primitive.ObjectID { return &p.ID })},
		TrainingPlans:   plans,
		NutritionPlans:  nutrition,
		Progress: &ProgressRepository{
			store:     newStore(func(p *domain.Progress) *primitive.ObjectID { return &p.ID }),
			users:     users,
			plans:     plans,
			nutrition: nutrition,
		},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

func newestFirst[T any](createdAt func(*T) time.Time) func(a, b *T) bool {
	return func(a, b *T) bool { return createdAt(a).After(createdAt(b)) }
}

// --- Accounts ---

type AccountRepository struct {
	store *store[domain.Account]
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	account.CreatedAt, account.UpdatedAt = now(), now()
	return r.store.insert(ctx, account, func(existing *domain.Account) bool {
		return existing.Email == account.Email
	})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.store.findOne(ctx, func(a *domain.Account) bool { return a.Email == email })
}

func (r *AccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	return r.store.get(ctx, id)
}

// --- Users ---

type UserRepository struct {
	store *store[domain.User]
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.CreatedAt, user.UpdatedAt = now(), now()
	return r.store.insert(ctx, user, func(existing *domain.User) bool {
		return user.Email != "" && existing.Email == user.Email
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.store.get(ctx, id)
}

func (r *UserRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.User, error) {
	return r.store.findOne(ctx, func(u *domain.User) bool {
		return u.AccountID != nil && *u.AccountID == accountID
	})
}

func (r *UserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.store.exists(ctx, id)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.store.find(ctx, nil, func(a, b *domain.User) bool { return a.Name < b.Name }), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.store.update(ctx, user.ID, func(u *domain.User) {
		accountID, image, thumbnail, createdAt := u.AccountID, u.Image, u.ImageThumbnail, u.CreatedAt
		*u = *user
		u.AccountID, u.Image, u.ImageThumbnail, u.CreatedAt = accountID, image, thumbnail, createdAt
		u.UpdatedAt = now()
	})
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.store.delete(ctx, id)
}

func (r *UserRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.store.update(ctx, id, func(u *domain.User) {
		u.Image, u.ImageThumbnail, u.UpdatedAt = image, thumbnail, now()
	})
}

// --- Trainers ---

type TrainerRepository struct {
	store *store[domain.Trainer]
}

var _ repository.TrainerRepository = (*TrainerRepository)(nil)

func (r *TrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	trainer.CreatedAt, trainer.UpdatedAt = now(), now()
	return r.store.insert(ctx, trainer, func(existing *domain.Trainer) bool {
		return trainer.Email != "" && existing.Email == trainer.Email
	})
}

func (r *TrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	return r.store.get(ctx, id)
}

func (r *TrainerRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.store.exists(ctx, id)
}

func (r *TrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	return r.store.find(ctx, nil, func(a, b *domain.Trainer) bool { return a.Name < b.Name }), nil
}

func (r *TrainerRepository) Update(ctx context.Context, trainer *domain.Trainer) error {
	return r.store.update(ctx, trainer.ID, func(t *domain.Trainer) {
		image, thumbnail, createdAt := t.Image, t.ImageThumbnail, t.CreatedAt
		*t = *trainer
		t.Image, t.ImageThumbnail, t.CreatedAt = image, thumbnail, createdAt
		t.UpdatedAt = now()
	})
}

func (r *TrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.store.delete(ctx, id)
}

func (r *TrainerRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.store.update(ctx, id, func(t *domain.Trainer) {
		t.Image, t.ImageThumbnail, t.UpdatedAt = image, thumbnail, now()
	})
}

// --- Trainer profiles ---

type TrainerProfileRepository struct {
	store *store[domain.TrainerProfile]
}

var _ repository.TrainerProfileRepository = (*TrainerProfileRepository)(nil)

func (r *TrainerProfileRepository) Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error) {
	profile.CreatedAt, profile.UpdatedAt = now(), now()
	return r.store.insert(ctx, profile, func(existing *domain.TrainerProfile) bool {
		return existing.AccountID == profile.AccountID
	})
}

func (r *TrainerProfileRepository) GetByAccountID(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	return r.store.findOne(ctx, func(p *domain.TrainerProfile) bool { return p.AccountID == accountID })
}

func (r *TrainerProfileRepository) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	return r.store.find(ctx, nil, newestFirst(func(p *domain.TrainerProfile) time.Time { return p.CreatedAt })), nil
}

func (r *TrainerProfileRepository) Update(ctx context.Context, profile *domain.TrainerProfile) error {
	return r.store.update(ctx, profile.ID, func(p *domain.TrainerProfile) {
		p.FullName, p.Phone, p.Specialty = profile.FullName, profile.Phone, profile.Specialty
		p.Certifications, p.Experience, p.IsActive = profile.Certifications, profile.Experience, profile.IsActive
		p.UpdatedAt = now()
	})
}

// --- Training plans ---

type TrainingPlanRepository struct {
	store *store[domain.TrainingPlan]
}

var _ repository.TrainingPlanRepository = (*TrainingPlanRepository)(nil)

var planNewestFirst = newestFirst(func(p *domain.TrainingPlan) time.Time { return p.CreatedAt })

func (r *TrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.CreatedAt, plan.UpdatedAt = now(), now()
	return r.store.insert(ctx, plan, nil)
}

func (r *TrainingPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	return r.store.get(ctx, id)
}

func (r *TrainingPlanRepository) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	return r.store.find(ctx, nil, planNewestFirst), nil
}

func (r *TrainingPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	return r.store.find(ctx, func(p *domain.TrainingPlan) bool {
		return p.UserID != nil && *p.UserID == userID
	}, planNewestFirst), nil
}

func (r *TrainingPlanRepository) GetByLevel(ctx context.Context, level string) ([]domain.TrainingPlan, error) {
	return r.store.find(ctx, func(p *domain.TrainingPlan) bool {
		return strings.EqualFold(string(p.Level), level)
	}, planNewestFirst), nil
}

func (r *TrainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	return r.store.update(ctx, plan.ID, func(p *domain.TrainingPlan) {
		image, thumbnail, createdAt := p.Image, p.ImageThumbnail, p.CreatedAt
		*p = *plan
		p.Image, p.ImageThumbnail, p.CreatedAt = image, thumbnail, createdAt
		p.UpdatedAt = now()
	})
}

func (r *TrainingPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.store.delete(ctx, id)
}

func (r *TrainingPlanRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.store.update(ctx, id, func(p *domain.TrainingPlan) {
		p.Image, p.ImageThumbnail, p.UpdatedAt = image, thumbnail, now()
	})
}

// --- Nutrition plans ---

type NutritionPlanRepository struct {
	store *store[domain.NutritionPlan]
}

var _ repository.NutritionPlanRepository = (*NutritionPlanRepository)(nil)

func (r *NutritionPlanRepository) Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error) {
	plan.CreatedAt, plan.UpdatedAt = now(), now()
	return r.store.insert(ctx, plan, nil)
}

func (r *NutritionPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	return r.store.get(ctx, id)
}

func (r *NutritionPlanRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return r.store.exists(ctx, id)
}

func (r *NutritionPlanRepository) List(ctx context.Context) ([]domain.NutritionPlan, error) {
	return r.store.find(ctx, nil, newestFirst(func(p *domain.NutritionPlan) time.Time { return p.CreatedAt })), nil
}

func (r *NutritionPlanRepository) Update(ctx context.Context, plan *domain.NutritionPlan) error {
	return r.store.update(ctx, plan.ID, func(p *domain.NutritionPlan) {
		image, thumbnail, createdAt := p.Image, p.ImageThumbnail, p.CreatedAt
		*p = *plan
		p.Image, p.ImageThumbnail, p.CreatedAt = image, thumbnail, createdAt
		p.UpdatedAt = now()
	})
}

func (r *NutritionPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.store.delete(ctx, id)
}

func (r *NutritionPlanRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.store.update(ctx, id, func(p *domain.NutritionPlan) {
		p.Image, p.ImageThumbnail, p.UpdatedAt = image, thumbnail, now()
	})
}

// --- Progress ---

type ProgressRepository struct {
	store     *store[domain.Progress]
	users     *UserRepository
	plans     *TrainingPlanRepository
	nutrition *NutritionPlanRepository
}

var _ repository.ProgressRepository = (*ProgressRepository)(nil)

func (r *ProgressRepository) Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	progress.CreatedAt, progress.UpdatedAt = now(), now()
	if progress.Date.IsZero() {
		progress.Date = progress.CreatedAt
	}
	return r.store.insert(ctx, progress, nil)
}

func (r *ProgressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	return r.store.get(ctx, id)
}

func (r *ProgressRepository) GetDetailsByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressDetails, error) {
	progress, err := r.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	details := r.join(ctx, *progress)
	return &details, nil
}

func (r *ProgressRepository) ListDetails(ctx context.Context, userID *primitive.ObjectID) ([]domain.ProgressDetails, error) {
	var match func(*domain.Progress) bool
	if userID != nil {
		match = func(p *domain.Progress) bool { return p.UserID == *userID }
	}
	records := r.store.find(ctx, match, func(a, b *domain.Progress) bool { return a.Date.After(b.Date) })

	details := make([]domain.ProgressDetails, len(records))
	for i, record := range records {
		details[i] = r.join(ctx, record)
	}
	return details, nil
}

func (r *ProgressRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return r.store.find(ctx,
		func(p *domain.Progress) bool { return p.UserID == userID },
		func(a, b *domain.Progress) bool { return a.Date.Before(b.Date) },
	), nil
}

func (r *ProgressRepository) Update(ctx context.Context, progress *domain.Progress) error {
	return r.store.update(ctx, progress.ID, func(p *domain.Progress) {
		userID, createdAt := p.UserID, p.CreatedAt
		*p = *progress
		p.UserID, p.CreatedAt = userID, createdAt
		p.UpdatedAt = now()
	})
}

func (r *ProgressRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.store.delete(ctx, id)
}

func (r *ProgressRepository) SetImage(ctx context.Context, id primitive.ObjectID, image, thumbnail string) error {
	return r.store.update(ctx, id, func(p *domain.Progress) {
		p.Image, p.ImageThumbnail, p.UpdatedAt = image, thumbnail, now()
	})
}

// join resolves the display fields the mongo repository gets from $lookup.
func (r *ProgressRepository) join(ctx context.Context, progress domain.Progress) domain.ProgressDetails {
	details := domain.ProgressDetails{Progress: progress}
	if user, err := r.users.GetByID(ctx, progress.UserID); err == nil {
		details.User = &domain.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Image: user.Image}
	}
	if progress.TrainingPlanID != nil {
		if plan, err := r.plans.GetByID(ctx, *progress.TrainingPlanID); err == nil {
			details.TrainingPlan = &domain.TrainingPlanSummary{
				ID:              plan.ID,
				Name:            plan.Name,
				Level:           plan.Level,
				DurationWeeks:   plan.DurationWeeks,
				NutritionPlanID: plan.NutritionPlanID,
			}
		}
	}
	if progress.NutritionPlanID != nil {
		if plan, err := r.nutrition.GetByID(ctx, *progress.NutritionPlanID); err == nil {
			details.NutritionPlan = &domain.NutritionPlanSummary{
				ID:          plan.ID,
				Name:        plan.Name,
				Description: plan.Description,
				Calories:    plan.Calories,
				Macros:      plan.Macros,
			}
		}
	}
	return details
}
