// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cooldown

import (
	"sync"
	"time"
)

// MemoryStore keeps expiries in a map. The zero time marks an entry that never expires.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

// GetOrSet implements Store.
func (s *MemoryStore) GetOrSet(key string, now time.Time, ttl time.Duration) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, ok := s.entries[key]; ok {
		if expiry.IsZero() {
			return Forever, nil
		}
		if expiry.After(now) {
			return expiry.Sub(now), nil
		}
	}

	if ttl < 0 {
		s.entries[key] = time.Time{}
	} else {
		s.entries[key] = now.Add(ttl)
	}
	return 0, nil
}

// Sweep drops entries that expired at or before now and returns how many were removed.
// Expired entries are already ignored by GetOrSet; Sweep only reclaims memory.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, expiry := range s.entries {
		if !expiry.IsZero() && !expiry.After(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
