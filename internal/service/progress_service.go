package service

import (
	"context"
	"strings"
	"time"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/metrics"
	"fitcoach/coaching-api/internal/repository"
	"fitcoach/coaching-api/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPatch is a partial update. Nil fields are left untouched; an empty
// plan id removes the link. The owning user cannot be changed.
type ProgressPatch struct {
	TrainingPlanID  *string
	NutritionPlanID *string
	Date            *time.Time
	Type            *string
	Weight          *float64
	Measurements    map[string]any
	Notes           *string
}

type ProgressService interface {
	// Create validates, links, builds and stores one record, then reads it
	// back with its display fields.
	Create(ctx context.Context, in ProgressInput) (*domain.ProgressDetails, error)
	List(ctx context.Context) ([]domain.ProgressDetails, error)
	GetByID(ctx context.Context, id string) (*domain.ProgressDetails, error)
	Update(ctx context.Context, id string, patch ProgressPatch) (*domain.ProgressDetails, error)
	Delete(ctx context.Context, id string) error
	// History lists a user's records newest first.
	History(ctx context.Context, userID string) ([]domain.ProgressDetails, error)
	Evolution(ctx context.Context, userID string) (*domain.Evolution, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	validator    *ReferenceValidator
	files        storage.FileStorage // Nil when media is disabled
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	validator *ReferenceValidator,
	files storage.FileStorage,
	m *metrics.Metrics,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		validator:    validator,
		files:        files,
		metrics:      m,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) Create(ctx context.Context, in ProgressInput) (*domain.ProgressDetails, error) {
	if in == nil {
		return nil, validationError("progress payload is required")
	}

	// 1. Validate references (syntax, existence, ownership)
	refSet, err := in.references()
	if err != nil {
		return nil, err
	}
	refs, err := s.validator.Validate(ctx, refSet)
	if err != nil {
		return nil, err
	}

	// 2. Resolve linkage and normalize the record
	record, err := in.build(refs, s.now())
	if err != nil {
		return nil, err
	}

	// 3. Store
	id, err := s.progressRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	s.metrics.ProgressCreated(in.pathway())

	// 4. Re-read with display fields. The record is already stored, so a
	// failure here is not a failed create.
	details, err := s.progressRepo.GetDetailsByID(ctx, id)
	if err != nil {
		log.WithError(err).WithField("progressId", id.Hex()).
			Warn("progress stored but re-read failed, returning the built record")
		return &domain.ProgressDetails{Progress: *record}, nil
	}
	return details, nil
}

func (s *progressService) List(ctx context.Context) ([]domain.ProgressDetails, error) {
	return s.progressRepo.ListDetails(ctx, nil)
}

func (s *progressService) GetByID(ctx context.Context, rawID string) (*domain.ProgressDetails, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	details, err := s.progressRepo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindProgress, id)
	}
	return details, nil
}

func (s *progressService) Update(ctx context.Context, rawID string, patch ProgressPatch) (*domain.ProgressDetails, error) {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return nil, err
	}
	refSet := ReferenceSet{
		TrainingPlanID:  deref(patch.TrainingPlanID),
		NutritionPlanID: deref(patch.NutritionPlanID),
	}
	if _, err := refSet.Parse(); err != nil {
		return nil, err
	}

	record, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindProgress, id)
	}

	refs, err := s.validator.Validate(ctx, refSet)
	if err != nil {
		return nil, err
	}
	// Plan links are checked against the record's immutable owner.
	if refs.TrainingPlan != nil {
		if err := CheckPlanOwnership(refs.TrainingPlan, record.UserID); err != nil {
			return nil, err
		}
	}
	applyLinks(record, patch, refs)

	if err := applyValues(record, patch); err != nil {
		return nil, err
	}

	if err := s.progressRepo.Update(ctx, record); err != nil {
		return nil, notFoundOr(err, KindProgress, id)
	}
	details, err := s.progressRepo.GetDetailsByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, KindProgress, id)
	}
	return details, nil
}

// applyLinks merges the plan links of a patch. The nutrition plan is only
// re-derived when the patch links a training plan without naming a nutrition
// plan, and an empty derivation keeps the current link.
func applyLinks(record *domain.Progress, patch ProgressPatch, refs *ValidatedReferences) {
	if patch.TrainingPlanID != nil {
		record.TrainingPlanID = refs.TrainingPlanID
	}
	if patch.NutritionPlanID != nil {
		record.NutritionPlanID = refs.NutritionPlanID
		return
	}
	if refs.TrainingPlan != nil {
		if resolved := ResolveNutritionPlan(refs.TrainingPlan, nil); resolved != nil {
			record.NutritionPlanID = resolved
		}
	}
}

// applyValues merges the measured values and re-checks that weight and
// measurements stay exclusive on the merged record.
func applyValues(record *domain.Progress, patch ProgressPatch) error {
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return validationError("date cannot be empty")
		}
		record.Date = patch.Date.UTC()
	}
	if patch.Notes != nil {
		record.Notes = *patch.Notes
	}
	if patch.Type != nil {
		kind := strings.TrimSpace(*patch.Type)
		if kind == "" {
			return validationError("type cannot be empty")
		}
		record.Type = kind
	}
	if patch.Weight != nil {
		w, err := positiveWeight(*patch.Weight)
		if err != nil {
			return err
		}
		record.Weight = &w
		if patch.Measurements == nil {
			record.Measurements = nil
		}
	}
	if patch.Measurements != nil {
		record.Measurements = patch.Measurements
		if patch.Weight == nil {
			record.Weight = nil
		}
	}

	if record.Type == domain.ProgressTypeWeight {
		if record.Weight == nil || record.HasMeasurements() {
			return validationError("a weight record must carry weight and no measurements")
		}
		return nil
	}
	if record.Weight != nil || !record.HasMeasurements() {
		return validationError("a %q record must carry measurements and no weight", record.Type)
	}
	return nil
}

// Delete removes the record only. The image objects are removed best effort
// afterwards; a storage failure does not fail the delete.
func (s *progressService) Delete(ctx context.Context, rawID string) error {
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return err
	}
	record, err := s.progressRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, KindProgress, id)
	}
	if err := s.progressRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, KindProgress, id)
	}
	s.removeImages(ctx, id, record.Image, record.ImageThumbnail)
	return nil
}

func (s *progressService) removeImages(ctx context.Context, id primitive.ObjectID, urls ...string) {
	if s.files == nil {
		return
	}
	for _, url := range urls {
		key, ok := s.files.ObjectKey(url)
		if !ok {
			continue
		}
		if err := s.files.DeleteObject(ctx, key); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"progressId": id.Hex(),
				"objectKey":  key,
			}).Warn("failed to remove progress image")
		}
	}
}

func (s *progressService) History(ctx context.Context, rawUserID string) ([]domain.ProgressDetails, error) {
	userID, err := domain.ParseReference("userId", rawUserID)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.ListDetails(ctx, &userID)
}

func (s *progressService) Evolution(ctx context.Context, rawUserID string) (*domain.Evolution, error) {
	userID, err := domain.ParseReference("userId", rawUserID)
	if err != nil {
		return nil, err
	}
	records, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	evo := ComputeEvolution(records)
	return &evo, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
