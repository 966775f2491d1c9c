package upload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePutter struct {
	key string
	err error
}

func (f *fakePutter) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.key = key
	if f.err != nil {
		return "", f.err
	}
	return "https://blob.example.com/" + key, nil
}

func TestStoreRejectsNonPDF(t *testing.T) {
	svc := NewService(&fakePutter{}, zap.NewNop())

	_, err := svc.Store(context.Background(), "notes.txt", "text/plain", []byte("x"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestStoreRejectsOversized(t *testing.T) {
	svc := NewService(&fakePutter{}, zap.NewNop())

	_, err := svc.Store(context.Background(), "big.pdf", pdfMIME, make([]byte, maxFileBytes+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStoreUsesUploadPrefixAndKeepsName(t *testing.T) {
	blobs := &fakePutter{}
	svc := NewService(blobs, zap.NewNop())

	url, err := svc.Store(context.Background(), "paper.pdf", pdfMIME, []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(blobs.key, keyPrefix))
	assert.True(t, strings.HasSuffix(blobs.key, "-paper.pdf"))
	assert.Equal(t, "https://blob.example.com/"+blobs.key, url)
}

func TestStorePropagatesPutError(t *testing.T) {
	svc := NewService(&fakePutter{err: errors.New("s3 down")}, zap.NewNop())

	_, err := svc.Store(context.Background(), "paper.pdf", pdfMIME, []byte("%PDF-1.4"))
	assert.Error(t, err)
}
