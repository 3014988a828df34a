package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	ch1, cancel1 := b.Subscribe("room-1")
	ch2, cancel2 := b.Subscribe("room-1")
	other, cancelOther := b.Subscribe("room-2")
	defer cancel2()
	defer cancelOther()

	b.Publish(context.Background(), "room-1", Event{RoomID: "room-1", Kind: EventStateChanged})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, EventStateChanged, ev.Kind)
		default:
			t.Fatal("subscriber missed the event")
		}
	}
	select {
	case <-other:
		t.Fatal("room-2 subscriber received a room-1 event")
	default:
	}

	// A cancelled subscriber stops receiving and its channel closes.
	cancel1()
	b.Publish(context.Background(), "room-1", Event{RoomID: "room-1", Kind: EventChat})
	if _, ok := <-ch1; ok {
		t.Fatal("cancelled subscriber channel should be closed")
	}
}

func TestBrokerDropsOnFullBuffer(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe("room-1")
	defer cancel()

	for i := 0; i < 100; i++ {
		b.Publish(context.Background(), "room-1", Event{RoomID: "room-1", Kind: EventStateChanged})
	}
	// Channel buffer is bounded; publishing never blocked to get here.
	assert.LessOrEqual(t, len(ch), 16)
}

func TestRedisNotifierPublishes(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sub := rdb.Subscribe(context.Background(), eventChannel("room-9"))
	defer sub.Close()
	_, err = sub.Receive(context.Background()) // wait for the subscription
	require.NoError(t, err)

	n := NewRedisNotifier(rdb)
	n.Publish(context.Background(), "room-9", Event{RoomID: "room-9", Kind: EventStateChanged})

	select {
	case msg := <-sub.Channel():
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, "room-9", ev.RoomID)
		assert.Equal(t, EventStateChanged, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the published event")
	}
}

func TestRunBridgeForwardsToBroker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	broker := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go RunBridge(ctx, rdb, broker)
	time.Sleep(50 * time.Millisecond) // let the psubscribe settle

	ch, unsubscribe := broker.Subscribe("room-5")
	defer unsubscribe()

	NewRedisNotifier(rdb).Publish(ctx, "room-5", Event{RoomID: "room-5", Kind: EventRoomClosed})

	select {
	case ev := <-ch:
		assert.Equal(t, EventRoomClosed, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("bridge did not forward the event")
	}
}

func TestMultiNotifier(t *testing.T) {
	b1, b2 := NewBroker(), NewBroker()
	ch1, c1 := b1.Subscribe("r")
	ch2, c2 := b2.Subscribe("r")
	defer c1()
	defer c2()

	MultiNotifier{b1, b2}.Publish(context.Background(), "r", Event{RoomID: "r", Kind: EventChat})
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}
