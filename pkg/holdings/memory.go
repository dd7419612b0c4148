package holdings

import (
	"context"
	"sort"
	"sync"

	"github.com/wealthmap/wealthmap/pkg/errors"
)

// MemoryStore is an in-memory Store for tests and single-process CLI use.
type MemoryStore struct {
	mu       sync.RWMutex
	holdings map[string]Holding
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{holdings: make(map[string]Holding)}
}

// Create persists a new holding.
func (s *MemoryStore) Create(ctx context.Context, h Holding) error {
	if err := h.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.holdings[h.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "holding already exists: %s", h.ID)
	}
	s.holdings[h.ID] = h
	return nil
}

// Get retrieves a holding by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holdings[id]
	if !ok {
		return Holding{}, errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	return h, nil
}

// Update applies a partial update and returns the updated holding.
func (s *MemoryStore) Update(ctx context.Context, id string, u Update) (Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holdings[id]
	if !ok {
		return Holding{}, errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	updated, err := u.Apply(h)
	if err != nil {
		return Holding{}, err
	}
	s.holdings[id] = updated
	return updated, nil
}

// Delete removes a holding by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.holdings[id]; !ok {
		return errors.New(errors.ErrCodeHoldingNotFound, "holding not found: %s", id)
	}
	delete(s.holdings, id)
	return nil
}

// List returns all holdings ordered by symbol, then ID.
func (s *MemoryStore) List(ctx context.Context) ([]Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Holding, 0, len(s.holdings))
	for _, h := range s.holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for an in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
