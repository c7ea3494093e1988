package lockout

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
}

// MemoryStore is the single-process fallback used when REDIS_URL is unset.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	policy  Policy
	now     func() time.Time
}

func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		policy:  policy,
		now:     time.Now,
	}
}

func (s *MemoryStore) LockedUntil(_ context.Context, key string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.lockedUntil.After(s.now()) {
		return time.Time{}, nil
	}
	return e.lockedUntil, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) > s.policy.Window {
		e = &memoryEntry{windowStart: now}
		s.entries[key] = e
	}

	e.failures++
	if e.failures >= s.policy.MaxFailures {
		e.lockedUntil = now.Add(s.policy.LockFor)
		e.failures = 0
		e.windowStart = now
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
