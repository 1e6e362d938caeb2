package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BruksfildServices01/site-backend/internal/domain"
	"github.com/BruksfildServices01/site-backend/internal/storage"
)

type Converter interface {
	ToWebP(r io.Reader) ([]byte, error)
}

// Uploader converts an image and stores it under a fresh key.
type Uploader struct {
	images Converter
	store  storage.Storage
}

func NewUploader(images Converter, store storage.Storage) *Uploader {
	return &Uploader{images: images, store: store}
}

// Upload returns the public URL and the storage key. field names the
// request field reported when the image is rejected.
func (u *Uploader) Upload(ctx context.Context, prefix, field string, r io.Reader) (url, key string, err error) {
	out, err := u.images.ToWebP(r)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) {
			return "", "", domain.NewValidationError(field, ErrUnsupportedImage.Error())
		}
		return "", "", err
	}

	key = storage.NewKey(prefix, "webp")
	url, err = u.store.Put(ctx, key, bytes.NewReader(out), int64(len(out)), ContentTypeWebP)
	if err != nil {
		return "", "", fmt.Errorf("store %s: %w", prefix, err)
	}
	return url, key, nil
}

// Remove is best effort; an empty key is a no-op.
func (u *Uploader) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return u.store.Delete(ctx, key)
}
