// Package storage is the narrow object-storage contract the note flows
// consume. Nothing in here proxies to a cloud provider; a local-disk
// implementation is the default and anything else plugs in behind Uploader.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (url string, err error)
}

type LocalUploader struct {
	dir string
}

func NewLocalUploader(dir string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalUploader{dir: dir}, nil
}

// Upload writes the stream under a fresh name and returns a /files/ URL.
// The original filename only contributes its extension.
func (u *LocalUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	f, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/files/" + name, nil
}
