package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyforge/core/internal/pkg/blobstore"
)

// TempPrefix holds short-lived preview audio in blob storage. The cron
// cleanup job removes anything under it older than MaxAge.
const (
	TempPrefix = "temp-audio/"
	MaxAge     = time.Hour
)

var errInvalidFilename = errors.New("invalid filename")

type speechRenderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

type blobStorer interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Stat(ctx context.Context, key string) (*blobstore.Object, error)
	List(ctx context.Context, prefix string) ([]blobstore.Object, error)
	Delete(ctx context.Context, pathnames []string) error
}

// Service manages the temporary preview audio files clients generate before
// committing to a full pipeline run.
type Service struct {
	blobs  blobStorer
	speech speechRenderer
	logger *zap.Logger
}

func NewService(blobs blobStorer, speech speechRenderer, logger *zap.Logger) *Service {
	return &Service{blobs: blobs, speech: speech, logger: logger}
}

// GenerateTest renders text to audio and stores it under the temp prefix.
func (s *Service) GenerateTest(ctx context.Context, text string) (*blobstore.Object, error) {
	data, err := s.speech.Render(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("render test audio: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("synthesis returned no audio")
	}

	name := fmt.Sprintf("test-%d-%s.mp3", time.Now().UnixMilli(), uuid.NewString()[:8])
	key := TempPrefix + name

	url, err := s.blobs.Put(ctx, key, data, "audio/mpeg")
	if err != nil {
		return nil, fmt.Errorf("upload test audio: %w", err)
	}

	s.logger.Info("test audio generated",
		zap.String("pathname", key), zap.Int("bytes", len(data)))
	return &blobstore.Object{Pathname: key, URL: url, Size: int64(len(data))}, nil
}

// Confirm reports whether a temp audio file exists and returns its metadata.
func (s *Service) Confirm(ctx context.Context, filename string) (*blobstore.Object, error) {
	if !validFilename(filename) {
		return nil, errInvalidFilename
	}
	return s.blobs.Stat(ctx, TempPrefix+filename)
}

// Resolve returns the object for a temp audio file, or nil when missing.
func (s *Service) Resolve(ctx context.Context, filename string) (*blobstore.Object, error) {
	return s.Confirm(ctx, filename)
}

// Delete removes a temp audio file. A missing file is not an error.
func (s *Service) Delete(ctx context.Context, filename string) error {
	if !validFilename(filename) {
		return errInvalidFilename
	}
	return s.blobs.Delete(ctx, []string{TempPrefix + filename})
}

// CleanupExpired deletes temp audio objects older than MaxAge and returns
// how many were removed.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	objects, err := s.blobs.List(ctx, TempPrefix)
	if err != nil {
		return 0, fmt.Errorf("list temp audio: %w", err)
	}

	cutoff := time.Now().Add(-MaxAge)
	var stale []string
	for _, obj := range objects {
		if obj.LastModified.Before(cutoff) {
			stale = append(stale, obj.Pathname)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.blobs.Delete(ctx, stale); err != nil {
		return 0, fmt.Errorf("delete expired temp audio: %w", err)
	}
	s.logger.Info("cleaned up expired temp audio", zap.Int("count", len(stale)))
	return len(stale), nil
}

func validFilename(name string) bool {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	return !strings.Contains(name, "..")
}
