package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/site-backend/internal/config"
)

// Storage keeps uploaded blobs and hands back the public URL to store on
// the owning record.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
	TypeMinio Type = "minio"
)

func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch Type(cfg.Type) {
	case TypeLocal, "":
		return NewLocalStorage(cfg.LocalPath, cfg.PublicBaseURL)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeMinio:
		m, err := NewMinioStorage(cfg)
		if err != nil {
			return nil, err
		}
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewKey builds a unique object key under prefix, e.g. avatars/3f/3f2c...webp.
func NewKey(prefix, ext string) string {
	id := uuid.NewString()
	ext = strings.TrimPrefix(ext, ".")
	return path.Join(prefix, id[:2], id+"."+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
