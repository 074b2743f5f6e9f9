// Package storage persists uploaded documents and returns the public URLs
// under which they are served.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BufferedFile is an upload that has been fully read into memory and passed
// the gate checks. Filename is the client-provided name, kept only to derive
// the extension.
type BufferedFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// FileStore writes a buffered upload somewhere durable and returns the URL
// path clients use to fetch it back.
type FileStore interface {
	Save(ctx context.Context, file BufferedFile) (string, error)
}

// DiskStore writes files under a single directory with randomized names, the
// way the production deployment serves /upload as a static mount.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes the file to disk as <uuid><ext> and returns "/upload/<name>".
// The original filename never reaches the filesystem, only its extension.
func (s *DiskStore) Save(ctx context.Context, file BufferedFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(file.Content) == 0 {
		return "", fmt.Errorf("empty file for field %q", file.Field)
	}

	name := uuid.NewString() + safeExt(file.Filename)
	path := filepath.Join(s.dir, name)

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, file.Content, 0o600); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/upload/" + name, nil
}

// safeExt extracts a lowercase extension from the client filename, rejecting
// anything that could smuggle path components.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
