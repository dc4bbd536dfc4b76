package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/bigbang/pkg/layout"
)

// MemoryStore keeps layouts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	layout  layout.Layout
	savedAt time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Save implements [Store].
func (s *MemoryStore) Save(_ context.Context, l layout.Layout) error {
	if err := checkID(l.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[l.ID] = memoryEntry{layout: l, savedAt: s.now()}
	return nil
}

// Load implements [Store].
func (s *MemoryStore) Load(_ context.Context, id string) (layout.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return layout.Layout{}, notFound(id)
	}
	return e.layout, nil
}

// List implements [Store].
func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, summarize(e.layout, e.savedAt))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
