package service

import (
	"context"
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
)

// UserPatch carries user fields. On update nil fields are left untouched;
// on create they stay unset.
type UserPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Weight *float64
	Height *float64
	Age    *int
	Goals  []string
}

type UserService interface {
	Create(ctx context.Context, in UserPatch) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, in UserPatch) (*domain.User, error) {
	user := &domain.User{}
	if err := applyUserPatch(user, in); err != nil {
		return nil, err
	}
	if user.Name == "" {
		return nil, validationError("name is required")
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, conflictOr(err, "a user with this email already exists")
	}
	user.ID = id
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, rawID string) (*domain.User, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindUser, id)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, rawID string, patch UserPatch) (*domain.User, error) {
	user, err := s.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := applyUserPatch(user, patch); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, conflictOr(notFoundOr(err, KindUser, user.ID), "a user with this email already exists")
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

func (s *userService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return err
	}
	return notFoundOr(s.userRepo.Delete(ctx, id), KindUser, id)
}

func applyUserPatch(user *domain.User, p UserPatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return validationError("name cannot be empty")
		}
		user.Name = name
	}
	if p.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		user.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Weight != nil {
		if *p.Weight <= 0 {
			return validationError("weight must be positive")
		}
		user.Weight = p.Weight
	}
	if p.Height != nil {
		if *p.Height <= 0 {
			return validationError("height must be positive")
		}
		user.Height = p.Height
	}
	if p.Age != nil {
		if *p.Age < 0 {
			return validationError("age cannot be negative")
		}
		user.Age = p.Age
	}
	if p.Goals != nil {
		user.Goals = p.Goals
	}
	return nil
}
