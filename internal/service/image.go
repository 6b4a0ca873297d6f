package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/msomdec/folio-cms/internal/domain"
)

// imageExtensions maps the accepted content types to the extension used in
// storage keys.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore validates uploaded images, persists them in a FileStore and
// turns stored relative paths into public URLs.
type ImageStore struct {
	files    domain.FileStore
	baseURL  string
	maxBytes int64
}

// NewImageStore creates an ImageStore. baseURL is the public API origin,
// for example "https://api.example.com".
func NewImageStore(files domain.FileStore, baseURL string, maxBytes int64) *ImageStore {
	return &ImageStore{
		files:    files,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// Store saves an upload and returns its relative path "images/<key>".
func (s *ImageStore) Store(ctx context.Context, up *domain.Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return "", fmt.Errorf("%w: image file is empty", domain.ErrInvalidInput)
	}
	if s.maxBytes > 0 && int64(len(up.Data)) > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d byte limit", domain.ErrInvalidInput, s.maxBytes)
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(up.Data)
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: only JPEG, PNG, GIF and WebP images are accepted", domain.ErrInvalidInput)
	}

	key := uuid.NewString() + ext
	if err := s.files.Save(ctx, key, up.Data); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return domain.ImagePathPrefix + key, nil
}

// Remove deletes the file behind a stored path. Failures are logged and
// swallowed: an orphaned file never blocks a record mutation.
func (s *ImageStore) Remove(ctx context.Context, path string) {
	key, ok := strings.CutPrefix(path, domain.ImagePathPrefix)
	if !ok || key == "" {
		return
	}
	if err := s.files.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete stored image", "path", path, "error", err)
	}
}

// PublicURL expands a stored relative path to an absolute URL. Empty paths
// stay empty.
func (s *ImageStore) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return s.baseURL + "/" + path
}

// Open returns the bytes and content type of a stored image by key.
func (s *ImageStore) Open(ctx context.Context, key string) ([]byte, string, error) {
	data, err := s.files.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("get image: %w", err)
	}
	return data, http.DetectContentType(data), nil
}
