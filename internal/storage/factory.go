package storage

import (
	"fmt"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/config"
)

// NewStore picks the backend from configuration.
func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case "postgres":
		return NewPostgresStorage(cfg.PostgresDSN, logger)
	case "file":
		return NewFileStorage(cfg.DataDir, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
