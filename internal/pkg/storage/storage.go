package storage

import (
	"context"
	"io"
)

// FileStorage stores employee profile photos. Implementations return a
// storage key on upload; GetURL turns a key into something a browser can
// fetch.
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, path string) (string, error)
	Delete(ctx context.Context, path string) error
	GetURL(path string) string
}
