package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage is the slice of the object store the upload flow needs.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

var ErrUnsupportedFormat = errors.New("unsupported photo format")

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// UploadPhoto stores a meal photo under the session's prefix and returns
// the bucket key the client later submits as photo_path.
func (s *Service) UploadPhoto(
	ctx context.Context,
	sessionID string,
	body io.Reader,
	filename string,
	contentType string,
) (string, error) {

	ext := strings.ToLower(filepath.Ext(filename))
	fallback, ok := allowedExtensions[ext]
	if !ok {
		return "", ErrUnsupportedFormat
	}
	if contentType == "" {
		contentType = fallback
	}

	key := fmt.Sprintf(
		"meals/%s/%s%s",
		sessionID,
		uuid.New().String(),
		ext,
	)

	if _, err := s.storage.Upload(ctx, key, body, contentType); err != nil {
		return "", err
	}

	return key, nil
}
