package service

import (
	"context"
	"errors"
	"fmt"
	"path" // For constructing object keys
	"strings"

	"fitcoach/coaching-api/internal/domain"
	"fitcoach/coaching-api/internal/repository"
	"fitcoach/coaching-api/internal/storage"

	"github.com/google/uuid" // Unique component of every object key
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadURLResponse is returned to the client before a direct upload.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back on confirm
	ImageURL  string `json:"imageUrl"`  // Where the object will be served from
}

// ImageResponse carries the URLs stored on the entity.
type ImageResponse struct {
	Image          string `json:"image"`
	ImageThumbnail string `json:"imageThumbnail,omitempty"`
}

// MediaTarget is one resource whose documents carry an image.
type MediaTarget struct {
	Kind   string
	Exists func(ctx context.Context, id primitive.ObjectID) (bool, error)
	Images repository.ImageRepository
}

// ExistsFromGet adapts a repository GetByID to MediaTarget.Exists.
func ExistsFromGet[T any](get func(context.Context, primitive.ObjectID) (*T, error)) func(context.Context, primitive.ObjectID) (bool, error) {
	return func(ctx context.Context, id primitive.ObjectID) (bool, error) {
		_, err := get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	}
}

type MediaService interface {
	RequestUploadURL(ctx context.Context, resource, rawID, contentType string) (*UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, resource, rawID, objectKey, thumbnailKey string) (*ImageResponse, error)
}

type mediaService struct {
	files   storage.FileStorage // Nil disables every operation
	targets map[string]MediaTarget
}

// NewMediaService maps resource path names (e.g. "progreso") to their targets.
func NewMediaService(files storage.FileStorage, targets map[string]MediaTarget) MediaService {
	return &mediaService{files: files, targets: targets}
}

func (s *mediaService) target(ctx context.Context, resource, rawID string) (MediaTarget, primitive.ObjectID, error) {
	if s.files == nil {
		return MediaTarget{}, primitive.NilObjectID, ErrMediaUnavailable
	}
	target, ok := s.targets[resource]
	if !ok {
		return MediaTarget{}, primitive.NilObjectID, validationError("resource %q has no images", resource)
	}
	id, err := domain.ParseReference("id", rawID)
	if err != nil {
		return MediaTarget{}, primitive.NilObjectID, err
	}
	exists, err := target.Exists(ctx, id)
	if err != nil {
		return MediaTarget{}, primitive.NilObjectID, err
	}
	if !exists {
		return MediaTarget{}, primitive.NilObjectID, &NotFoundError{Entity: target.Kind, ID: id.Hex()}
	}
	return target, id, nil
}

// RequestUploadURL presigns a PUT for a new object under images/<resource>/<id>/.
func (s *mediaService) RequestUploadURL(ctx context.Context, resource, rawID, contentType string) (*UploadURLResponse, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") || len(contentType) == len("image/") {
		return nil, validationError("content type must be an image/* type")
	}
	_, id, err := s.target(ctx, resource, rawID)
	if err != nil {
		return nil, err
	}

	objectKey := path.Join(keyPrefix(resource, id), fmt.Sprintf("%s.%s", uuid.NewString(), extension(contentType)))
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ImageURL:  s.files.PublicURL(objectKey),
	}, nil
}

// ConfirmUpload stores the public URLs of uploaded objects on the entity.
// Keys must have been issued for that same entity.
func (s *mediaService) ConfirmUpload(ctx context.Context, resource, rawID, objectKey, thumbnailKey string) (*ImageResponse, error) {
	target, id, err := s.target(ctx, resource, rawID)
	if err != nil {
		return nil, err
	}
	prefix := keyPrefix(resource, id) + "/"
	if !strings.HasPrefix(objectKey, prefix) {
		return nil, validationError("objectKey does not belong to this %s", target.Kind)
	}
	if thumbnailKey != "" && !strings.HasPrefix(thumbnailKey, prefix) {
		return nil, validationError("thumbnailKey does not belong to this %s", target.Kind)
	}

	resp := &ImageResponse{Image: s.files.PublicURL(objectKey)}
	if thumbnailKey != "" {
		resp.ImageThumbnail = s.files.PublicURL(thumbnailKey)
	}
	if err := target.Images.SetImage(ctx, id, resp.Image, resp.ImageThumbnail); err != nil {
		return nil, notFoundOr(err, target.Kind, id)
	}
	return resp, nil
}

func keyPrefix(resource string, id primitive.ObjectID) string {
	return path.Join("images", resource, id.Hex())
}

// extension derives a file extension from an image/* content type.
func extension(contentType string) string {
	sub := strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexAny(sub, "+;"); i >= 0 {
		sub = sub[:i]
	}
	if sub == "jpeg" {
		return "jpg"
	}
	return sub
}
