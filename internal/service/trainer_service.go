package service

import (
	"context"
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
)

// TrainerPatch carries trainer fields; nil fields are left untouched.
type TrainerPatch struct {
	Name           *string
	Specialty      *string
	Certifications []string
	Email          *string
	Phone          *string
}

type TrainerService interface {
	Create(ctx context.Context, in TrainerPatch) (*domain.Trainer, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	GetByID(ctx context.Context, id string) (*domain.Trainer, error)
	Update(ctx context.Context, id string, patch TrainerPatch) (*domain.Trainer, error)
	Delete(ctx context.Context, id string) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	trainerRepo repository.TrainerRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(trainerRepo repository.TrainerRepository) TrainerService {
	return &trainerService{trainerRepo: trainerRepo}
}

func (s *trainerService) Create(ctx context.Context, in TrainerPatch) (*domain.Trainer, error) {
	trainer := &domain.Trainer{Certifications: []string{}}
	if err := applyTrainerPatch(trainer, in); err != nil {
		return nil, err
	}
	if trainer.Name == "" {
		return nil, validationError("name is required")
	}

	id, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		return nil, conflictOr(err, "a trainer with this email already exists")
	}
	trainer.ID = id
	return trainer, nil
}

func (s *trainerService) List(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

func (s *trainerService) GetByID(ctx context.Context, rawID string) (*domain.Trainer, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindTrainer, id)
	}
	return trainer, nil
}

func (s *trainerService) Update(ctx context.Context, rawID string, patch TrainerPatch) (*domain.Trainer, error) {
	trainer, err := s.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := applyTrainerPatch(trainer, patch); err != nil {
		return nil, err
	}
	if err := s.trainerRepo.Update(ctx, trainer); err != nil {
		return nil, conflictOr(notFoundOr(err, KindTrainer, trainer.ID), "a trainer with this email already exists")
	}
	return s.trainerRepo.GetByID(ctx, trainer.ID)
}

// Delete does not touch the plans the trainer authored.
func (s *trainerService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return err
	}
	return notFoundOr(s.trainerRepo.Delete(ctx, id), KindTrainer, id)
}

func applyTrainerPatch(trainer *domain.Trainer, p TrainerPatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return validationError("name cannot be empty")
		}
		trainer.Name = name
	}
	if p.Specialty != nil {
		trainer.Specialty = strings.TrimSpace(*p.Specialty)
	}
	if p.Certifications != nil {
		trainer.Certifications = p.Certifications
	}
	if p.Email != nil {
		trainer.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		trainer.Phone = strings.TrimSpace(*p.Phone)
	}
	return nil
}
