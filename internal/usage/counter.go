// Package usage tracks how many valid calculations have been performed.
package usage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/observability"
)

// ErrNotInitialized is returned by Store.Load when no counter value has
// ever been persisted.
var ErrNotInitialized = errors.New("usage counter not initialized")

// Store exposes persistence behaviour for the single counter value.
type Store interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, count int64) error
}

// Incrementer is an optional Store capability. Backends with a native
// atomic increment (Redis INCR, a Postgres upsert) implement it so the
// service can skip its own read-modify-write.
type Incrementer interface {
	Increment(ctx context.Context) (int64, error)
}

// Service owns the usage counter. Increments through a plain Store are
// serialized by an in-process mutex, so sequential and concurrent callers
// observe exact counts; an Incrementer store is trusted to be atomic on
// its own.
type Service struct {
	mu    sync.Mutex
	store Store
}

// NewService constructs a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Read returns the current count. A store with no value yet is initialized
// to zero. Any other load failure degrades to zero with a diagnostic: the
// count is informational and must never fail the caller.
func (s *Service) Read(ctx context.Context) int64 {
	count, err := s.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotInitialized):
		count = 0
		if saveErr := s.store.Save(ctx, 0); saveErr != nil {
			observability.RecordStorageFailure()
			log.Printf("usage: initializing counter store: %v", saveErr)
		}
	default:
		observability.RecordStorageFailure()
		log.Printf("usage: reading counter, defaulting to 0: %v", err)
		count = 0
	}
	observability.RecordUsageCount(count)
	return count
}

// IncrementAndRead adds one to the persisted count and returns the new
// value. Load failures other than "not initialized" are treated as a zero
// starting point; save failures are logged and propagated.
func (s *Service) IncrementAndRead(ctx context.Context) (int64, error) {
	if inc, ok := s.store.(Incrementer); ok {
		count, err := inc.Increment(ctx)
		if err != nil {
			observability.RecordStorageFailure()
			log.Printf("usage: incrementing counter: %v", err)
			return 0, fmt.Errorf("increment usage counter: %w", err)
		}
		observability.RecordUsageCount(count)
		return count, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotInitialized) {
			observability.RecordStorageFailure()
			log.Printf("usage: reading counter before increment, assuming 0: %v", err)
		}
		current = 0
	}

	next := current + 1
	if err := s.store.Save(ctx, next); err != nil {
		observability.RecordStorageFailure()
		log.Printf("usage: persisting counter value %d: %v", next, err)
		return 0, fmt.Errorf("persist usage counter: %w", err)
	}
	observability.RecordUsageCount(next)
	return next, nil
}
