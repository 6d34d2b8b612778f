// internal/storage/file.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each key as a file in a directory. Writes go through
// a temp file and rename so a crash mid-write never leaves a half-written
// value behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a value by key
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, nil
}

// Set stores a value under key
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (f *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	// Keys are short identifiers like "cart"; guard against separators anyway.
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}
