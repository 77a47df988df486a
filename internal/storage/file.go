// Package storage provides counter store implementations.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

// counterDocument is the persisted record layout.
type counterDocument struct {
	Count int64 `json:"count"`
}

// FileStore keeps the counter in a small JSON document on disk. It is the
// default backend.
type FileStore struct {
	path string
}

var _ usage.Store = (*FileStore)(nil)

// NewFileStore constructs a FileStore at path. Parent directories are
// created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted count. A missing file maps to
// usage.ErrNotInitialized; anything else is a genuine failure.
func (s *FileStore) Load(ctx context.Context) (int64, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, usage.ErrNotInitialized
		}
		return 0, fmt.Errorf("read counter file %s: %w", s.path, err)
	}

	var doc counterDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("parse counter file %s: %w", s.path, err)
	}
	if doc.Count < 0 {
		return 0, fmt.Errorf("counter file %s holds negative count %d", s.path, doc.Count)
	}
	return doc.Count, nil
}

// Save writes the count back, creating parent directories as needed.
func (s *FileStore) Save(ctx context.Context, count int64) error {
	raw, err := json.Marshal(counterDocument{Count: count})
	if err != nil {
		return fmt.Errorf("encode counter document: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create counter directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write counter file %s: %w", s.path, err)
	}
	return nil
}
