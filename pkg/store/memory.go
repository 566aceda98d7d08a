package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps renders in process memory.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates a memory store that sweeps expired renders
// every cleanup interval.
func NewMemoryStore(cleanup time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(DefaultTTL, cleanup)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Render, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	r := v.(*Render)
	if r.IsExpired() {
		s.c.Delete(id)
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *MemoryStore) Put(_ context.Context, r *Render) error {
	ttl := time.Until(r.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	s.c.Set(r.ID, r, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.c.Delete(id)
	return nil
}

// Len returns the number of stored renders.
func (s *MemoryStore) Len() int { return s.c.ItemCount() }

func (s *MemoryStore) Close() error {
	s.c.Flush()
	return nil
}

var _ Store = (*MemoryStore)(nil)
