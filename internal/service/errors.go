package service

import (
	"errors"
	"fmt"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity kinds reported by ReferenceNotFoundError and NotFoundError.
const (
	KindUser           = "Usuario"
	KindTrainer        = "Entrenador"
	KindTrainerProfile = "PerfilEntrenador"
	KindTrainingPlan   = "PlanEntrenamiento"
	KindNutritionPlan  = "PlanNutricional"
	KindProgress       = "Progreso"
)

// --- Error Definitions ---
var (
	// ErrInvalidReference is re-exported so handlers only depend on this package.
	ErrInvalidReference       = domain.ErrInvalidReference
	ErrReferenceNotFound      = errors.New("referenced entity not found")
	ErrOwnershipMismatch      = errors.New("training plan belongs to a different user")
	ErrNotFound               = errors.New("entity not found")
	ErrValidationFailed       = errors.New("validation failed")
	ErrAmbiguousPlanReference = errors.New("planId and trainingPlanId reference different plans")
	ErrConflict               = errors.New("resource already exists")
	ErrMediaUnavailable       = errors.New("media storage is not configured")

	ErrUserAlreadyExists    = fmt.Errorf("%w: an account with this email already exists", ErrConflict)
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// ReferenceNotFoundError is returned when a well-formed reference points at
// nothing. It matches ErrReferenceNotFound.
type ReferenceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// NotFoundError is returned when the entity an operation targets is missing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// notFoundOr turns a repository miss into a NotFoundError for the entity.
func notFoundOr(err error, entity string, id primitive.ObjectID) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id.Hex()}
	}
	return err
}

// conflictOr turns a unique index violation into ErrConflict.
func conflictOr(err error, what string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, what)
	}
	return err
}
