package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the document in a single JSON file under a data
// directory, created on first save.
type FileStore struct {
	path string
}

// NewFileStore builds a store writing to dataDir/userdata.json.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, "userdata.json")}, nil
}

// Load reads the whole document.
func (fs *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fs.path, err)
	}
	return data, nil
}

// Save overwrites the whole document. Written to a temp file first so a
// crash mid-write never leaves a truncated document behind.
func (fs *FileStore) Save(ctx context.Context, data []byte) error {
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", fs.path, err)
	}
	return nil
}
