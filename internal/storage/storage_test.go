package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"collab_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	key := "drafts/user-1/photo.jpg"
	require.NoError(t, s.Save(ctx, key, strings.NewReader("jpeg-bytes"), 10, "image/jpeg"))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := s.Open(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(r)
	r.Close()
	assert.Equal(t, "jpeg-bytes", string(data))

	assert.Equal(t, "/uploads/drafts/user-1/photo.jpg", s.URL(key))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../escape.txt", strings.NewReader("x"), 1, "text/plain"))

	ok, err := s.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok, "traversal must be clamped to the base directory")

	assert.Error(t, s.Save(ctx, "", strings.NewReader("x"), 1, "text/plain"))
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(config.StorageConfig{Type: "local", BasePath: t.TempDir(), BaseURL: "/u"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(config.StorageConfig{Type: "cloudflare_r2", Bucket: "media"})
	assert.ErrorContains(t, err, "endpoint")

	_, err = NewStorage(config.StorageConfig{Type: "s3"})
	assert.ErrorContains(t, err, "bucket")

	s, err = NewStorage(config.StorageConfig{Type: "s3", Bucket: "media", Region: "ap-south-1", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://media.s3.ap-south-1.amazonaws.com/a/b.png", s.URL("a/b.png"))

	_, err = NewStorage(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
