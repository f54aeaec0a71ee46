package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lppm/research-portal/internal/config"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores the content of r under key and returns the location it can be found at.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes a previously saved key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ArchiveKey builds a collision free key for an uploaded import file, grouped by
// entity and date: "books/2024/05/20240517-101500-<uuid>.xlsx".
func ArchiveKey(entity, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(
		entity,
		now.Format("2006"),
		now.Format("01"),
		fmt.Sprintf("%s-%s%s", now.Format("20060102-150405"), uuid.New().String(), ext),
	)
}

// New creates the storage selected by the configuration
func New(ctx context.Context, cfg *config.Config) (FileStorage, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Endpoint:  cfg.Storage.S3.Endpoint,
			Region:    cfg.Storage.S3.Region,
			Bucket:    cfg.Storage.S3.Bucket,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		})
	case "local", "":
		return NewLocalStorage(cfg.Storage.LocalPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
