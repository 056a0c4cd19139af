package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value []byte
	exp   time.Time
}

// Memory is an in-process TTL cache. Expired entries are dropped lazily on
// read and swept whenever the map grows past its high-water mark.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	sweepAt int
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		sweepAt: 128,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: value, exp: time.Now().Add(ttl)}
	if len(m.entries) > m.sweepAt {
		m.sweep()
	}
	return nil
}

// sweep removes expired entries; callers hold the lock.
func (m *Memory) sweep() {
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.exp) {
			delete(m.entries, k)
		}
	}
	if len(m.entries) > m.sweepAt {
		m.sweepAt = len(m.entries) * 2
	}
}
