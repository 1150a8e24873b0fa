package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Stats describes one in-memory tier
type Stats struct {
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
}

// Memory is a bounded LRU keyed by string. Concurrent Adds for the same key are
// idempotent: the last writer wins.
type Memory[V any] struct {
	lru      *lru.Cache[string, V]
	capacity int
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewMemory creates an LRU holding at most size entries
func NewMemory[V any](size int) (*Memory[V], error) {
	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU of size %d: %w", size, err)
	}
	return &Memory[V]{lru: c, capacity: size}, nil
}

// Get returns the cached value and records a hit or miss
func (m *Memory[V]) Get(key string) (V, bool) {
	v, ok := m.lru.Get(key)
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

// Add stores a value, evicting the least recently used entry when full
func (m *Memory[V]) Add(key string, v V) {
	m.lru.Add(key, v)
}

// Remove drops a key
func (m *Memory[V]) Remove(key string) {
	m.lru.Remove(key)
}

// Purge empties the tier
func (m *Memory[V]) Purge() {
	m.lru.Purge()
}

// Len returns the number of cached entries
func (m *Memory[V]) Len() int {
	return m.lru.Len()
}

// Stats returns a snapshot of the counters
func (m *Memory[V]) Stats() Stats {
	return Stats{
		Size:     m.lru.Len(),
		Capacity: m.capacity,
		Hits:     m.hits.Load(),
		Misses:   m.misses.Load(),
	}
}
