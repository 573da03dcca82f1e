// Package cache provides the reference-data cache: a small in-memory
// key/value store with a per-entry TTL. Values are opaque byte blobs
// (serialized rosters or image bytes). There is no eviction beyond TTL
// expiry; the key population is small and bounded by construction (three
// roster keys plus one image key per preloaded person).
//
// The clock is injected so TTL behavior is deterministically testable.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Clock abstracts time.Now for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store is a TTL key/value store safe for concurrent use. The mutex only
// guards map access; it is never held across I/O.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   Clock
}

// New constructs an empty Store using the given clock. A nil clock
// defaults to SystemClock.
func New(clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

// Get returns the value stored under key. An expired entry behaves
// identically to a miss (and is lazily removed).
func (s *Store) Get(key string) ([]byte, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := s.entries[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL, replacing any previous
// entry. Concurrent writers race benignly: last write wins.
func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	exp := s.clock.Now().Add(ttl)
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: exp}
	s.mu.Unlock()
}

// Delete removes key unconditionally. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// DeleteAll removes every entry.
func (s *Store) DeleteAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// CountPrefix returns the number of unexpired entries whose key starts
// with prefix. Used by cache statistics reporting.
func (s *Store) CountPrefix(prefix string) int {
	now := s.clock.Now()
	n := 0
	s.mu.RLock()
	for k, e := range s.entries {
		if strings.HasPrefix(k, prefix) && now.Before(e.expiresAt) {
			n++
		}
	}
	s.mu.RUnlock()
	return n
}
