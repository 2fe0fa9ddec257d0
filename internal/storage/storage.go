// Package storage persists uploaded images.
//
// Files are addressed by their sanitized original filename. Saving a name
// that already exists replaces the previous content.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-backend/internal/config"
)

// ErrNotFound is returned by Open for unknown names.
var ErrNotFound = errors.New("storage: object not found")

// Object is an opened stored file. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Store is implemented by every upload backend.
type Store interface {
	// Save writes r under name, replacing any existing object.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// Open returns the object stored under name or ErrNotFound.
	Open(ctx context.Context, name string) (*Object, error)
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "minio":
		store, err := NewMinioStore(ctx, cfg.Minio)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.Minio.Bucket).Msg("using minio upload storage")
		return store, nil
	default:
		store, err := NewLocalStore(cfg.UploadDir())
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dir", cfg.UploadDir()).Msg("using local upload storage")
		return store, nil
	}
}
