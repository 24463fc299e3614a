// internal/app/system/assets/assets.go

// Package assets is the thin glue between upload handlers and the remote
// object store that serves logo and media bytes. Handlers depend on the
// Store interface; tests substitute an in-memory fake.
package assets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store durably persists one object and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (url string, err error)
}

// ObjectKey builds a unique object key under prefix, e.g.
// "uploads/2026/08/1a2b3c4d-photo.jpg". The uuid fragment keeps same-named
// files from colliding.
func ObjectKey(prefix, filename string) string {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("%s/%04d/%02d", prefix, now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	return dateDir + "/" + uniqueName
}

// sanitizeFilename strips path components and characters that are awkward
// in object keys or URLs.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "file"
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_':
		return true
	}
	return false
}

// Disabled returns a Store whose Put always fails. Deployments without OSS
// credentials still serve the rest of the API; only upload endpoints error.
func Disabled() Store { return disabledStore{} }

type disabledStore struct{}

func (disabledStore) Put(context.Context, string, io.Reader, string) (string, error) {
	return "", fmt.Errorf("asset storage is not configured")
}
