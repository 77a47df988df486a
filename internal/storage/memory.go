package storage

import (
	"context"
	"sync"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

// MemoryStore keeps the counter in process memory, for local development
// and tests. It deliberately offers only Load/Save so the service's own
// read-modify-write path stays exercised.
type MemoryStore struct {
	mu          sync.Mutex
	count       int64
	initialized bool
}

var _ usage.Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements usage.Store.
func (s *MemoryStore) Load(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, usage.ErrNotInitialized
	}
	return s.count, nil
}

// Save implements usage.Store.
func (s *MemoryStore) Save(ctx context.Context, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count = count
	s.initialized = true
	return nil
}
