package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// MediaStore uploads files and returns their public URLs. Satisfied by the
// media client; faked in tests.
type MediaStore interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

// UploadService pushes listing images to the external media store.
type UploadService struct {
	store  MediaStore
	logger *zerolog.Logger
}

// NewUploadService creates an UploadService.
func NewUploadService(store MediaStore, logger *zerolog.Logger) *UploadService {
	return &UploadService{
		store:  store,
		logger: logger,
	}
}

// Upload stores a file and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	url, err := s.store.Upload(ctx, filename, file)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("filename", filename).Str("url", url).Msg("media uploaded")
	return url, nil
}
