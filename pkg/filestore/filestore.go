// Package filestore persists opaque file blobs under a root directory and
// hands back relative paths for storage in the database.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes file blobs and resolves stored paths.
type Store interface {
	// Save writes data under the given relative path, creating parent
	// directories as needed, and returns the relative path.
	Save(relPath string, data []byte) (string, error)

	// FullPath resolves a stored relative path to an absolute one.
	FullPath(relPath string) string
}

// DiskStore stores files under a local root directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates a store rooted at dir.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file storage root: %w", err)
	}
	return &DiskStore{root: dir}, nil
}

var _ Store = (*DiskStore)(nil)

func (s *DiskStore) Save(relPath string, data []byte) (string, error) {
	full := filepath.Join(s.root, filepath.Clean(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return relPath, nil
}

func (s *DiskStore) FullPath(relPath string) string {
	return filepath.Join(s.root, filepath.Clean(relPath))
}
