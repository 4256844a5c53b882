package alias

import (
	"context"
	"slices"
	"sync"
)

// Store is the backend of a collection.
type Store[E any] interface {
	// List returns all entities in insertion order.
	List(ctx context.Context) ([]E, error)
	// Add appends an entity.
	Add(ctx context.Context, entity E) error
	// Remove removes the first entity equal to entity
	// and returns false if there was none.
	Remove(ctx context.Context, entity E) (bool, error)
	Count(ctx context.Context) (int, error)
}

// storeFetcher implements manager.Fetcher and manager.Counter.
type storeFetcher[E any] struct {
	Store[E]
}

func (f storeFetcher[E]) Fetch(ctx context.Context) ([]E, error) {
	return f.List(ctx)
}

var _ Store[BlacklistEntry] = new(MemoryStore[BlacklistEntry])

// MemoryStore is a Store keeping entities in memory.
type MemoryStore[E comparable] struct {
	mu       sync.Mutex
	entities []E
}

// NewMemoryStore returns a MemoryStore with the passed entities.
func NewMemoryStore[E comparable](entities ...E) *MemoryStore[E] {
	return &MemoryStore[E]{entities: slices.Clone(entities)}
}

func (s *MemoryStore[E]) List(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]E{}, s.entities...), nil
}

func (s *MemoryStore[E]) Add(ctx context.Context, entity E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.entities = append(s.entities, entity)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[E]) Remove(ctx context.Context, entity E) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.entities, entity)
	if i < 0 {
		return false, nil
	}
	s.entities = slices.Delete(s.entities, i, i+1)
	return true, nil
}

func (s *MemoryStore[E]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities), nil
}
