package report

import (
	"context"
	"sync"
)

// Store persists received reports.
type Store interface {
	Save(ctx context.Context, r Received) error
	Recent(ctx context.Context, limit int) ([]Received, error)
	Count(ctx context.Context) (int64, error)
}

// MemoryStore keeps the most recent reports in memory. It is safe for
// concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	keep  int
	items []Received
	total int64
}

// NewMemoryStore creates a store holding at most keep reports; older ones
// are evicted. keep <= 0 means 512.
func NewMemoryStore(keep int) *MemoryStore {
	if keep <= 0 {
		keep = 512
	}
	return &MemoryStore{keep: keep}
}

// Save stores a report.
func (s *MemoryStore) Save(_ context.Context, r Received) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	if len(s.items) > s.keep {
		s.items = s.items[len(s.items)-s.keep:]
	}
	s.total++
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Received, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.items) {
		limit = len(s.items)
	}
	out := make([]Received, 0, limit)
	for i := len(s.items) - 1; i >= len(s.items)-limit; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

// Count returns the number of reports saved over the store's lifetime,
// including evicted ones.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, nil
}
