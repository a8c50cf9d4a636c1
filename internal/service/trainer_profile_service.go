package service

import (
	"context"
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfilePatch carries the fields a trainer may edit on their own
// profile. Verification is not self-service.
type TrainerProfilePatch struct {
	FullName       *string
	Phone          *string
	Specialty      *string
	Certifications []string
	Experience     *string
	IsActive       *bool
}

type TrainerProfileService interface {
	GetMine(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error)
	UpdateMine(ctx context.Context, accountID primitive.ObjectID, patch TrainerProfilePatch) (*domain.TrainerProfile, error)
	List(ctx context.Context) ([]domain.TrainerProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.TrainerProfile, error)
}

type trainerProfileService struct {
	profileRepo repository.TrainerProfileRepository
}

func NewTrainerProfileService(profileRepo repository.TrainerProfileRepository) TrainerProfileService {
	return &trainerProfileService{profileRepo: profileRepo}
}

func (s *trainerProfileService) GetMine(ctx context.Context, accountID primitive.ObjectID) (*domain.TrainerProfile, error) {
	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, KindTrainerProfile, accountID)
	}
	return profile, nil
}

// UpdateMine edits an existing profile. It never creates one.
func (s *trainerProfileService) UpdateMine(ctx context.Context, accountID primitive.ObjectID, p TrainerProfilePatch) (*domain.TrainerProfile, error) {
	profile, err := s.GetMine(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		if name == "" {
			return nil, validationError("fullName cannot be empty")
		}
		profile.FullName = name
	}
	if p.Phone != nil {
		profile.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Specialty != nil {
		profile.Specialty = strings.TrimSpace(*p.Specialty)
	}
	if p.Certifications != nil {
		profile.Certifications = p.Certifications
	}
	if p.Experience != nil {
		profile.Experience = *p.Experience
	}
	if p.IsActive != nil {
		profile.IsActive = *p.IsActive
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, notFoundOr(err, KindTrainerProfile, accountID)
	}
	return s.GetMine(ctx, accountID)
}

func (s *trainerProfileService) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	return s.profileRepo.List(ctx)
}

func (s *trainerProfileService) GetByAccountID(ctx context.Context, rawAccountID string) (*domain.TrainerProfile, error) {
	accountID, err := domain.ParseReference("accountId", rawAccountID)
	if err != nil {
		return nil, err
	}
	return s.GetMine(ctx, accountID)
}
