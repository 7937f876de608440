// Package file provides a KeyValue implementation that writes each collection
// to its own document in a directory, mirroring the per-key browser storage
// the dashboard originally persisted to.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/example/campus-booking/internal/persistence"
)

// Store persists each key as <dir>/<key>.json, written atomically via a
// temporary file rename.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open ensures dir exists and returns a store rooted at it.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file: failed to create directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes value for key, replacing any previous document.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: failed to stage %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file: failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file: failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file: failed to replace %s: %w", key, err)
	}
	return nil
}

// Load returns the document last saved for key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.ErrNotFound
		}
		return nil, fmt.Errorf("file: failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) pathFor(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || strings.ContainsAny(trimmed, `/\`) {
		return "", fmt.Errorf("file: invalid key %q", key)
	}
	return filepath.Join(s.dir, trimmed+".json"), nil
}
