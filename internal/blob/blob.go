// Package blob abstracts the binary object store used for profile pictures
// and versioned classifier models.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/config"
)

// ObjectStore uploads, deletes and lists objects. Upload returns the
// publicly reachable URL of the stored object.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	// PublicURL resolves the URL an already-stored key is served from.
	PublicURL(key string) string
}

// NewObjectStore picks the backend from configuration.
func NewObjectStore(cfg *config.Config, logger internal.Logger) (ObjectStore, error) {
	switch cfg.BlobBackend {
	case "s3":
		return NewS3Store(cfg.S3Bucket, cfg.S3Region, logger)
	case "local":
		return NewLocalStore(cfg.BlobDir, cfg.BlobBaseURL, logger)
	default:
		return nil, fmt.Errorf("blob: unknown backend %q", cfg.BlobBackend)
	}
}

// LocalStore keeps objects under a directory and serves them from a base
// URL. Development only.
type LocalStore struct {
	dir     string
	baseURL string
	logger  internal.Logger
}

func NewLocalStore(dir, baseURL string, logger internal.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/"), logger: logger}, nil
}

func (s *LocalStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Errorf("blob: failed to write %s: %v", key, err)
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	root := s.dir
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

var _ ObjectStore = (*LocalStore)(nil)
