package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrEmpty           = errors.New("image is empty")
	ErrTooLarge        = errors.New("image is too large")
	ErrUnsupportedType = errors.New("only jpeg, png and webp images are accepted")
	ErrNotFound        = errors.New("image not found")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var keyPattern = regexp.MustCompile(`^users/[0-9]+/[0-9a-f-]{36}$`)

type Service struct {
	store    BlobStore
	maxBytes int64
}

func NewService(store BlobStore, maxBytes int64) *Service {
	return &Service{store: store, maxBytes: maxBytes}
}

func (s *Service) MaxBytes() int64 { return s.maxBytes }

// Upload stores an image owned by ownerID and returns its key.
func (s *Service) Upload(ctx context.Context, ownerID int64, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return "", ErrUnsupportedType
	}

	key := fmt.Sprintf("users/%d/%s", ownerID, uuid.NewString())
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

func (s *Service) Get(ctx context.Context, key string) ([]byte, string, error) {
	if !keyPattern.MatchString(key) {
		return nil, "", ErrNotFound
	}
	return s.store.Get(ctx, key)
}
