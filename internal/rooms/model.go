package rooms

import "time"

// RoomInfo is the lobby-facing listing entry; game state lives in storage.
type RoomInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Players   []string  `json:"players"`
}

// QueuedPlayer waits in the quick-match pool.
type QueuedPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinQueueRequest is the quick-match entry form. The player id comes from
// the session, never the body.
type JoinQueueRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinQueueResponse struct {
	Queued  bool     `json:"queued"`
	RoomID  string   `json:"roomId,omitempty"`
	Players []string `json:"players,omitempty"`
}
