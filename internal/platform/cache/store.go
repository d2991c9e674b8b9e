package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/penca-app/penca-api/internal/platform/resilience"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Store is a TTL key/value cache for slow-changing reference data.
// Expiry is lazy: stale entries are evicted on read, or in bulk via
// ClearExpired. There is no background sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key builds the canonical "{type}_{id}" cache key. Distinct (type, id)
// pairs never collide because the type tag carries no underscore.
func Key(kind, id string) string {
	return kind + "_" + id
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e, s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:    value,
		storedAt: s.now(),
	}
	s.mu.Unlock()
}

func (s *Store) Remove(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) RemovePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) ClearAll(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// ClearExpired sweeps every stale entry and reports how many were evicted.
// Callers decide when to sweep; the store never runs its own timer.
func (s *Store) ClearExpired(_ context.Context) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.storedAt) >= s.ttl
}
