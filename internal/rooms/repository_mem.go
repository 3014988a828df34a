package rooms

import (
	"context"
	"sync"
)

type memRepo struct {
	mu    sync.Mutex
	queue []QueuedPlayer
	rooms map[string]RoomInfo
}

func NewMemoryRepo() Repo {
	return &memRepo{rooms: make(map[string]RoomInfo)}
}

func (m *memRepo) Enqueue(ctx context.Context, player QueuedPlayer, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.queue {
		if q.ID == player.ID {
			return nil // already queued
		}
	}
	// TTL ignored, the memory repo only backs tests and dev runs.
	m.queue = append(m.queue, player)
	return nil
}

func (m *memRepo) PopN(ctx context.Context, n int) ([]QueuedPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.queue) {
		n = len(m.queue)
	}
	out := append([]QueuedPlayer(nil), m.queue[:n]...)
	m.queue = append([]QueuedPlayer(nil), m.queue[n:]...)
	return out, nil
}

func (m *memRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.queue)), nil
}

func (m *memRepo) Remove(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.queue[:0]
	for _, q := range m.queue {
		if q.ID != playerID {
			out = append(out, q)
		}
	}
	m.queue = out
	return nil
}

func (m *memRepo) SaveRoom(ctx context.Context, info RoomInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[info.ID] = info
	return nil
}

func (m *memRepo) RemoveRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
	return nil
}

func (m *memRepo) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for _, info := range m.rooms {
		out = append(out, info)
	}
	return out, nil
}
