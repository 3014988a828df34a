package rooms

import "context"

// Repo abstracts the lobby bookkeeping: the quick-match queue and the room
// registry used for listings.
type Repo interface {
	// Enqueue adds a player to the quick-match pool.
	Enqueue(ctx context.Context, player QueuedPlayer, ttlSeconds int) error
	// PopN atomically removes and returns up to n queued players.
	PopN(ctx context.Context, n int) ([]QueuedPlayer, error)
	// Count returns the pool size.
	Count(ctx context.Context) (int64, error)
	// Remove drops a player from the pool (queue cancellation).
	Remove(ctx context.Context, playerID string) error

	// SaveRoom upserts a lobby listing entry.
	SaveRoom(ctx context.Context, info RoomInfo) error
	// RemoveRoom drops a listing entry.
	RemoveRoom(ctx context.Context, roomID string) error
	// ListRooms returns all open rooms.
	ListRooms(ctx context.Context) ([]RoomInfo, error)
}
