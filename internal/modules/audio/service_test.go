package audio

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studyforge/core/internal/pkg/blobstore"
)

type fakeRenderer struct {
	data []byte
	err  error
}

func (f *fakeRenderer) Render(context.Context, string) ([]byte, error) {
	return f.data, f.err
}

type fakeBlobs struct {
	objects []blobstore.Object
	listErr error
	putKey  string
	deleted []string
}

func (f *fakeBlobs) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.putKey = key
	return "https://blob.example.com/" + key, nil
}

func (f *fakeBlobs) Stat(_ context.Context, key string) (*blobstore.Object, error) {
	for _, obj := range f.objects {
		if obj.Pathname == key {
			o := obj
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeBlobs) List(context.Context, string) ([]blobstore.Object, error) {
	return f.objects, f.listErr
}

func (f *fakeBlobs) Delete(_ context.Context, pathnames []string) error {
	f.deleted = append(f.deleted, pathnames...)
	return nil
}

func newTestAudioService(blobs *fakeBlobs, speech *fakeRenderer) *Service {
	return NewService(blobs, speech, zap.NewNop())
}

func TestGenerateTestUploadsUnderTempPrefix(t *testing.T) {
	blobs := &fakeBlobs{}
	svc := newTestAudioService(blobs, &fakeRenderer{data: []byte("mp3 bytes")})

	obj, err := svc.GenerateTest(context.Background(), "hello")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Pathname, TempPrefix+"test-"))
	assert.True(t, strings.HasSuffix(obj.Pathname, ".mp3"))
	assert.Equal(t, blobs.putKey, obj.Pathname)
	assert.Equal(t, int64(9), obj.Size)
}

func TestGenerateTestFailsOnRenderError(t *testing.T) {
	svc := newTestAudioService(&fakeBlobs{}, &fakeRenderer{err: errors.New("no key")})

	_, err := svc.GenerateTest(context.Background(), "hello")
	assert.Error(t, err)
}

func TestConfirmRejectsTraversal(t *testing.T) {
	svc := newTestAudioService(&fakeBlobs{}, &fakeRenderer{})

	for _, name := range []string{"", "../secret", "a/b.mp3", `a\b.mp3`} {
		_, err := svc.Confirm(context.Background(), name)
		assert.ErrorIs(t, err, errInvalidFilename, name)
	}
}

func TestConfirmMissingFile(t *testing.T) {
	svc := newTestAudioService(&fakeBlobs{}, &fakeRenderer{})

	obj, err := svc.Confirm(context.Background(), "test-1-abc.mp3")
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestCleanupExpiredDeletesOnlyOldObjects(t *testing.T) {
	now := time.Now()
	blobs := &fakeBlobs{objects: []blobstore.Object{
		{Pathname: TempPrefix + "old.mp3", LastModified: now.Add(-2 * time.Hour)},
		{Pathname: TempPrefix + "fresh.mp3", LastModified: now.Add(-5 * time.Minute)},
	}}
	svc := newTestAudioService(blobs, &fakeRenderer{})

	n, err := svc.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{TempPrefix + "old.mp3"}, blobs.deleted)
}

func TestCleanupExpiredNothingToDo(t *testing.T) {
	blobs := &fakeBlobs{objects: []blobstore.Object{
		{Pathname: TempPrefix + "fresh.mp3", LastModified: time.Now()},
	}}
	svc := newTestAudioService(blobs, &fakeRenderer{})

	n, err := svc.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, blobs.deleted)
}
