package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
)

// ErrNotFound is returned when a room has no stored state.
var ErrNotFound = errors.New("room state not found")

// Store persists game state snapshots per room. Implementations must return
// every field verbatim on the next Load; the engine never recomputes
// anything from partial storage.
type Store interface {
	Load(ctx context.Context, roomID string) (*engine.GameState, error)
	Save(ctx context.Context, roomID string, state *engine.GameState) error
	Delete(ctx context.Context, roomID string) error
}

// validateLoaded guards the storage boundary: a snapshot with an unknown
// phase means corrupted or hand-edited data and is rejected outright.
func validateLoaded(roomID string, state *engine.GameState) error {
	if !state.Phase.Valid() {
		return fmt.Errorf("room %s: stored state has invalid phase %q", roomID, state.Phase)
	}
	return nil
}
