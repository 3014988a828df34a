package realtime

// Event is what observers receive when a room changes. It carries enough to
// decide whether a refresh is worthwhile, never authoritative game data.
type Event struct {
	RoomID string `json:"roomId"`
	Kind   string `json:"kind"`            // e.g. "state_changed", "chat"
	Data   any    `json:"data,omitempty"`
}

// Event kinds emitted by the room service.
const (
	EventStateChanged = "state_changed"
	EventChat         = "chat"
	EventRoomClosed   = "room_closed"
)

type OutgoingMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type IncomingMessage struct {
	From  string `json:"from"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}
