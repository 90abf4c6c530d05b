package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-binary use.
// Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]SavedLayout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]SavedLayout)}
}

// Save stores or replaces a layout.
func (s *MemoryStore) Save(ctx context.Context, layout SavedLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[layout.ID] = layout
	return nil
}

// Get retrieves a layout by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (SavedLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layout, ok := s.layouts[id]
	if !ok {
		return SavedLayout{}, ErrNotFound
	}
	return layout, nil
}

// List returns layouts newest first, up to limit.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]SavedLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SavedLayout, 0, len(s.layouts))
	for _, layout := range s.layouts {
		out = append(out, layout)
	}
	slices.SortFunc(out, func(a, b SavedLayout) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a layout by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return ErrNotFound
	}
	delete(s.layouts, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
