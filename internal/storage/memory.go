package storage

import (
	"context"
	"sync"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
)

// MemoryStore is the in-process store used by tests and single-node dev
// setups. Snapshots are cloned on the way in and out so callers never share
// maps with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*engine.GameState
}

func NewMemory() *MemoryStore {
	return &MemoryStore{states: make(map[string]*engine.GameState)}
}

func (s *MemoryStore) Load(ctx context.Context, roomID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, roomID string, state *engine.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[roomID] = state.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, roomID)
	return nil
}
