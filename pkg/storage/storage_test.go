package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) UploadImage(ctx context.Context, folder, publicID string, data []byte) (string, error) {
	return s.url, s.err
}

func TestStoreUsesUploader(t *testing.T) {
	store := NewImageStore(&stubUploader{url: "https://cdn.example.com/img.png"})
	url := store.Store(context.Background(), "avatars", "u1", []byte{0x89, 'P', 'N', 'G'})
	assert.Equal(t, "https://cdn.example.com/img.png", url)
}

func TestStoreFallsBackToDataURI(t *testing.T) {
	store := NewImageStore(&stubUploader{err: fmt.Errorf("upstream down")})
	url := store.Store(context.Background(), "avatars", "u1", []byte("hello"))
	assert.True(t, strings.HasPrefix(url, "data:"))
	assert.Contains(t, url, ";base64,")
}

func TestStoreWithoutUploaderInlines(t *testing.T) {
	store := NewImageStore(nil)
	url := store.Store(context.Background(), "avatars", "u1", []byte("hello"))
	assert.True(t, strings.HasPrefix(url, "data:"))
}

func TestDataURIDetectsMime(t *testing.T) {
	// PNG magic bytes
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	uri := DataURI(png)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
