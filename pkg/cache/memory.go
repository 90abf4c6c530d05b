package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is a bounded in-process cache with LRU eviction.
// Safe for concurrent use. Intended for tests and single-process serving.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// DefaultMemoryCapacity bounds a MemoryCache when the caller passes a
// non-positive capacity.
const DefaultMemoryCapacity = 128

// NewMemoryCache creates a memory cache holding at most capacity entries.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity < 1 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get retrieves a value, refreshing its recency. Expired entries are
// removed and reported as misses.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.remove(el)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return entry.data, true, nil
}

// Set stores a value, evicting the least recently used entry when full.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return nil
	}

	el := c.order.PushFront(&memoryEntry{key: key, data: data, expiresAt: expiresAt})
	c.entries[key] = el

	for c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
	return nil
}

// Delete removes a value if present.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

// Len returns the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// remove must be called with the mutex held.
func (c *MemoryCache) remove(el *list.Element) {
	if el == nil {
		return
	}
	entry := el.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.order.Remove(el)
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
