package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/majeanson/newjo-sub000/internal/utils"
)

// Notifier pushes best-effort change notifications for a room. Delivery is
// never guaranteed and never required for correctness; observers re-fetch
// the authoritative state themselves.
type Notifier interface {
	Publish(ctx context.Context, roomID string, event Event)
}

// Broker is the in-process fan-out backing the SSE endpoint. Slow
// subscribers lose events instead of blocking the publisher.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers an observer for one room. The returned cancel must be
// called when the observer goes away.
func (b *Broker) Subscribe(roomID string) (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.subs[roomID] == nil {
		b.subs[roomID] = make(map[chan Event]struct{})
	}
	b.subs[roomID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[roomID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
				if len(set) == 0 {
					delete(b.subs, roomID)
				}
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Broker) Publish(ctx context.Context, roomID string, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[roomID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// RedisNotifier publishes room events on a Redis channel so other nodes can
// fan them out to their own observers.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func eventChannel(roomID string) string {
	return "game:events:" + roomID
}

func (n *RedisNotifier) Publish(ctx context.Context, roomID string, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, eventChannel(roomID), raw).Err(); err != nil {
		utils.Log.Warn("redis publish failed", "room", roomID, "err", err)
	}
}

// RunBridge forwards Redis room events into the local broker until ctx ends.
// Run it on every node when the Redis notifier is in play.
func RunBridge(ctx context.Context, rdb *redis.Client, broker *Broker) {
	sub := rdb.PSubscribe(ctx, eventChannel("*"))
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			broker.Publish(ctx, event.RoomID, event)
		}
	}
}

// MultiNotifier publishes to several notifiers at once.
type MultiNotifier []Notifier

func (m MultiNotifier) Publish(ctx context.Context, roomID string, event Event) {
	for _, n := range m {
		n.Publish(ctx, roomID, event)
	}
}
