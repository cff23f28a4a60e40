// Package cache provides the query cache that the event channel keeps
// fresh. The connection layer only depends on Invalidator; any store
// that can mark a key stale is a valid collaborator.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Invalidator marks all cached data associated with a key as stale so
// that dependent readers refetch on next access.
type Invalidator interface {
	Invalidate(key string)
}

// FetchFunc loads fresh data for a key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// entry is one cached value.
type entry struct {
	value     any
	stale     bool
	fetchedAt time.Time
}

// Store is an in-memory query cache with invalidate-by-key semantics.
// Reads of a missing or stale key trigger a refetch; concurrent reads
// of the same key share a single fetch.
type Store struct {
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*entry

	group singleflight.Group
}

// NewStore creates an empty Store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Get returns the cached value for key, fetching it first if the key is
// missing or has been invalidated.
func (s *Store) Get(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	if ok && !e.stale {
		value := e.value
		s.mu.RUnlock()
		return value, nil
	}
	s.mu.RUnlock()

	value, err, _ := s.group.Do(key, func() (any, error) {
		// Another waiter may have completed the fetch while this call
		// was queued.
		s.mu.RLock()
		e, ok := s.entries[key]
		if ok && !e.stale {
			value := e.value
			s.mu.RUnlock()
			return value, nil
		}
		s.mu.RUnlock()

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries[key] = &entry{
			value:     value,
			fetchedAt: time.Now(),
		}
		s.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate marks the key stale. Readers keep seeing nothing until the
// next Get refetches; a key never cached is a no-op.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		e.stale = true
	}
	s.mu.Unlock()

	s.logger.Debug("cache invalidated", "key", key, "cached", ok)
}

// Peek returns the cached value without fetching. The second return is
// false if the key is absent or stale.
func (s *Store) Peek(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	return e.value, true
}

// Len returns the number of cached entries, stale or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
