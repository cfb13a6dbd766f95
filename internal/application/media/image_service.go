// Package media associates one uploaded image with an owning entity. File
// I/O goes through ImageStorage; the owning service persists the image path
// through its own update path so the change is audit-stamped normally.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageHost is implemented by the service that owns the entity an image is
// attached to. All path writes go through the host so they follow the owning
// entity's usual guards and stamping.
type ImageHost interface {
	// EntityName names the hosted entity for error messages.
	EntityName() string
	// SubDirectory is the storage subdirectory for this entity type.
	SubDirectory() string
	// ImageSubPath returns the stored image path of the entity, nil when the
	// entity has no image. A missing entity is a NOT_FOUND domain error.
	ImageSubPath(ctx context.Context, entityID int) (*string, error)
	// SaveImageSubPath persists a new image path on the entity.
	SaveImageSubPath(ctx context.Context, entityID int, subPath, actingUserID string) error
	// ClearImageSubPath removes the image path from the entity.
	ClearImageSubPath(ctx context.Context, entityID int, actingUserID string) error
}

// ImageStorage stores image files. Implementations live in infrastructure.
type ImageStorage interface {
	// Save writes the file under subDir/fileName and returns the sub path
	// to persist on the entity.
	Save(ctx context.Context, subDir, fileName string, r io.Reader) (string, error)
	// Delete removes a stored file. Deleting a missing file is an error.
	Delete(ctx context.Context, subPath string) error
	// URL resolves a stored sub path against the public base URL.
	URL(baseURL, subPath string) string
}

// allowedImageExtensions is the upload whitelist.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Result reports the outcome of an image mutation. Warning is set when the
// primary effect succeeded but a follow-up step failed, e.g. the file was
// written but the entity's path could not be updated. File-system effects
// have no transactional tie to the database, so a completed file write is
// reported rather than rolled back.
type Result struct {
	Warning string `json:"warning,omitempty"`
}

// ImageService manages the one-image association of a host's entities
type ImageService struct {
	host   ImageHost
	store  ImageStorage
	logger *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(host ImageHost, store ImageStorage, logger *zap.Logger) *ImageService {
	return &ImageService{
		host:   host,
		store:  store,
		logger: logger,
	}
}

// GetImageURL resolves the public URL of the entity's image. It fails when
// the entity does not exist or has no image.
func (s *ImageService) GetImageURL(ctx context.Context, entityID int, baseURL string) (string, error) {
	subPath, err := s.host.ImageSubPath(ctx, entityID)
	if err != nil {
		return "", err
	}
	if subPath == nil || *subPath == "" {
		return "", shared.NewDomainErrorf(shared.CodeImageNotFound,
			"%s with id %d doesn't have an image", s.host.EntityName(), entityID)
	}
	return s.store.URL(baseURL, *subPath), nil
}

// AddImage attaches an image to an entity that has none. The file name is
// derived from the entity id plus the sanitized original extension.
func (s *ImageService) AddImage(ctx context.Context, entityID int, r io.Reader, originalName, actingUserID string) (*Result, error) {
	existing, err := s.host.ImageSubPath(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if existing != nil && *existing != "" {
		return nil, shared.NewDomainErrorf(shared.CodeImageExists,
			"%s with id %d already has an image, update it instead", s.host.EntityName(), entityID)
	}

	fileName, err := imageFileName(entityID, originalName)
	if err != nil {
		return nil, err
	}

	subPath, err := s.store.Save(ctx, s.host.SubDirectory(), fileName, r)
	if err != nil {
		s.logger.Error("image write failed",
			zap.String("entity", s.host.EntityName()),
			zap.Int("id", entityID),
			zap.Error(err))
		return nil, shared.ErrInternal
	}

	if err := s.host.SaveImageSubPath(ctx, entityID, subPath, actingUserID); err != nil {
		s.logger.Warn("image stored but path not persisted",
			zap.String("entity", s.host.EntityName()),
			zap.Int("id", entityID),
			zap.String("subPath", subPath),
			zap.Error(err))
		return &Result{Warning: fmt.Sprintf(
			"Image was stored but updating the %s failed: %v", s.host.EntityName(), err)}, nil
	}
	return &Result{}, nil
}

// UpdateImage replaces the entity's image by deleting the old one and adding
// the new one. Partial failure is reported explicitly rather than silently
// losing the old image.
func (s *ImageService) UpdateImage(ctx context.Context, entityID int, r io.Reader, originalName, actingUserID string) (*Result, error) {
	delResult, err := s.DeleteImage(ctx, entityID, actingUserID)
	if err != nil {
		return nil, err
	}

	addResult, err := s.AddImage(ctx, entityID, r, originalName, actingUserID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, shared.NewDomainErrorf(domainErr.Code,
				"Old image was deleted but adding the new one failed: %s", domainErr.Message)
		}
		return nil, err
	}

	warning := strings.TrimSpace(strings.Join([]string{delResult.Warning, addResult.Warning}, " "))
	return &Result{Warning: warning}, nil
}

// DeleteImage removes the entity's image. Deleting when no image is set is a
// no-op success, so a second delete is idempotent. A file that has already
// drifted off disk is reported as a warning and the stale reference is still
// cleared.
func (s *ImageService) DeleteImage(ctx context.Context, entityID int, actingUserID string) (*Result, error) {
	subPath, err := s.host.ImageSubPath(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if subPath == nil || *subPath == "" {
		return &Result{}, nil
	}

	var warning string
	if err := s.store.Delete(ctx, *subPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("image delete failed",
				zap.String("entity", s.host.EntityName()),
				zap.Int("id", entityID),
				zap.String("subPath", *subPath),
				zap.Error(err))
			return nil, shared.ErrInternal
		}
		s.logger.Warn("image file missing on delete",
			zap.String("entity", s.host.EntityName()),
			zap.Int("id", entityID),
			zap.String("subPath", *subPath))
		warning = fmt.Sprintf(
			"Image file was already missing, the %s reference was removed", s.host.EntityName())
	}

	if err := s.host.ClearImageSubPath(ctx, entityID, actingUserID); err != nil {
		s.logger.Warn("image deleted but path not cleared",
			zap.String("entity", s.host.EntityName()),
			zap.Int("id", entityID),
			zap.Error(err))
		return &Result{Warning: fmt.Sprintf(
			"Image was deleted but updating the %s failed: %v", s.host.EntityName(), err)}, nil
	}
	return &Result{Warning: warning}, nil
}

// imageFileName derives the stored file name from the entity id and the
// sanitized lowercase extension of the uploaded file.
func imageFileName(entityID int, originalName string) (string, error) {
	ext := strings.ToLower(path.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return "", shared.NewDomainErrorf(shared.CodeInvalidImageType,
			"Image type %q is not allowed, use .jpg, .jpeg, .png or .webp", ext)
	}
	return fileNameSanitizer.ReplaceAllString(fmt.Sprintf("%d%s", entityID, ext), "_"), nil
}
