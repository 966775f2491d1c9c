package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	keyPrefix    = "uploads/"
	maxFileBytes = 15 << 20
	pdfMIME      = "application/pdf"
)

var (
	ErrNotPDF   = errors.New("only pdf files are allowed")
	ErrTooLarge = errors.New("file exceeds the upload size limit")
)

type blobPutter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service stores user-uploaded source documents in blob storage.
type Service struct {
	blobs  blobPutter
	logger *zap.Logger
}

func NewService(blobs blobPutter, logger *zap.Logger) *Service {
	return &Service{blobs: blobs, logger: logger}
}

// Store uploads a PDF and returns its public URL. Names are prefixed with a
// timestamp and a short random id so repeated uploads never collide.
func (s *Service) Store(ctx context.Context, name, mime string, data []byte) (string, error) {
	if mime != pdfMIME {
		return "", ErrNotPDF
	}
	if len(data) > maxFileBytes {
		return "", ErrTooLarge
	}

	key := fmt.Sprintf("%s%d-%s-%s", keyPrefix, time.Now().UnixMilli(), uuid.NewString()[:8], name)
	url, err := s.blobs.Put(ctx, key, data, mime)
	if err != nil {
		s.logger.Warn("upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return url, nil
}
