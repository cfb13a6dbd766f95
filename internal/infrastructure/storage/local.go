// Package storage implements image file storage on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/application/media"
)

// LocalImageStorage stores image files under a base directory. Stored sub
// paths use forward slashes regardless of OS so they can be persisted and
// served as URL fragments.
type LocalImageStorage struct {
	basePath string
}

// NewLocalImageStorage creates the storage rooted at basePath, creating the
// directory if needed.
func NewLocalImageStorage(basePath string) (*LocalImageStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolving image base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating image base path: %w", err)
	}
	return &LocalImageStorage{basePath: abs}, nil
}

// Save writes the file under subDir/fileName and returns the sub path to
// persist on the owning entity.
func (s *LocalImageStorage) Save(ctx context.Context, subDir, fileName string, r io.Reader) (string, error) {
	subPath := path.Join(subDir, fileName)
	full, err := s.resolve(subPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return subPath, nil
}

// Delete removes a stored file. A missing file is an error so callers notice
// drift between the database and the filesystem.
func (s *LocalImageStorage) Delete(ctx context.Context, subPath string) error {
	full, err := s.resolve(subPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("removing image file: %w", err)
	}
	return nil
}

// URL resolves a stored sub path against the public base URL
func (s *LocalImageStorage) URL(baseURL, subPath string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(subPath, "/")
}

// BasePath returns the absolute directory files are stored under
func (s *LocalImageStorage) BasePath() string {
	return s.basePath
}

// resolve maps a sub path to an absolute file path, rejecting anything that
// would escape the base directory.
func (s *LocalImageStorage) resolve(subPath string) (string, error) {
	cleaned := path.Clean(strings.TrimLeft(subPath, "/"))
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("empty image path")
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", fmt.Errorf("image path %q escapes the storage root", subPath)
		}
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleaned)), nil
}

// Ensure LocalImageStorage implements media.ImageStorage
var _ media.ImageStorage = (*LocalImageStorage)(nil)
