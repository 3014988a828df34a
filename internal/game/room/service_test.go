package room

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
	"github.com/majeanson/newjo-sub000/internal/realtime"
	"github.com/majeanson/newjo-sub000/internal/storage"
)

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (n *recordingNotifier) Publish(ctx context.Context, roomID string, event realtime.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

// recordingHub satisfies realtime.HubInterface without sockets.
type recordingHub struct {
	mu   sync.Mutex
	msgs []realtime.OutgoingMessage
}

func (h *recordingHub) BroadcastToPlayers(ids []string, msg realtime.OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
}

func (h *recordingHub) SendToPlayer(id string, msg realtime.OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
}

func (h *recordingHub) Close() {}

func newTestService() (*Service, *recordingNotifier, *recordingHub) {
	notifier := &recordingNotifier{}
	hub := &recordingHub{}
	svc := NewService(storage.NewMemory(), notifier, hub, engine.Options{WinScore: 41})
	return svc, notifier, hub
}

func TestRoomLifecycle(t *testing.T) {
	svc, notifier, _ := newTestService()
	ctx := context.Background()

	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)

	for _, id := range []string{"p0", "p1", "p2", "p3"} {
		_, err = svc.Join(ctx, roomID, id, "name-"+id)
		require.NoError(t, err)
	}
	for _, id := range []string{"p0", "p1", "p2", "p3"} {
		_, err = svc.SetReady(ctx, roomID, id, true)
		require.NoError(t, err)
	}

	state, err := svc.State(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseTeamSelection, state.Phase)
	assert.Greater(t, notifier.count(), 0, "every update should publish a notification")

	for _, pick := range []struct {
		id   string
		team engine.Team
	}{{"p0", engine.TeamA}, {"p1", engine.TeamB}, {"p2", engine.TeamA}, {"p3", engine.TeamB}} {
		_, err = svc.SelectTeam(ctx, roomID, pick.id, pick.team)
		require.NoError(t, err)
	}
	state, err = svc.State(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseBets, state.Phase)
	assert.Len(t, state.TurnOrder, 4)
}

func TestActionErrorsLeaveStateUntouched(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)
	_, err = svc.Join(ctx, roomID, "p0", "zero")
	require.NoError(t, err)

	before, err := svc.State(ctx, roomID)
	require.NoError(t, err)

	// Betting in WAITING is a phase violation and must not touch storage.
	_, err = svc.PlaceBet(ctx, roomID, "p0", engine.BetSeven, false)
	assert.ErrorIs(t, err, engine.ErrPhase)

	after, err := svc.State(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestConcurrentJoinsSerialize(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)

	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = svc.Join(ctx, roomID, id, id)
		}(id)
	}
	wg.Wait()

	state, err := svc.State(ctx, roomID)
	require.NoError(t, err)
	// Exactly 4 of the 7 racing joins may land; never a lost update, never 5.
	assert.Len(t, state.Players, 4)
	assert.Len(t, state.JoinOrder, 4)
}

func TestPlayCardScoresRoundAtomically(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	roomID := playUntilCards(t, svc)

	state, err := svc.State(ctx, roomID)
	require.NoError(t, err)

	// Play out all 8 tricks with whatever is legal.
	for state.Phase == engine.PhaseCards {
		actor := state.CurrentTurn
		var played bool
		for _, c := range state.PlayerHands[actor] {
			if engine.CanPlayCard(state, actor, c) {
				state, err = svc.PlayCard(ctx, roomID, actor, c)
				require.NoError(t, err)
				played = true
				break
			}
		}
		require.True(t, played, "player %s had no legal card", actor)
	}

	// The service folds ScoreRound into the final PlayCard, so the room is
	// never stored in TRICK_SCORING.
	assert.Contains(t, []engine.Phase{engine.PhaseRoundEnd, engine.PhaseGameEnd}, state.Phase)

	if state.Phase == engine.PhaseRoundEnd {
		state, err = svc.StartNextRound(ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, engine.PhaseBets, state.Phase)
		assert.Equal(t, 2, state.Round)
	}
}

func TestCloseRoom(t *testing.T) {
	svc, notifier, _ := newTestService()
	ctx := context.Background()
	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.CloseRoom(ctx, roomID))
	_, err = svc.State(ctx, roomID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	notifier.mu.Lock()
	last := notifier.events[len(notifier.events)-1]
	notifier.mu.Unlock()
	assert.Equal(t, realtime.EventRoomClosed, last.Kind)
}

func TestChatRelay(t *testing.T) {
	svc, notifier, hub := newTestService()
	ctx := context.Background()
	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)
	_, err = svc.Join(ctx, roomID, "p0", "zero")
	require.NoError(t, err)

	before := notifier.count()
	svc.HandleIncoming(realtime.IncomingMessage{
		From:  "p0",
		Event: "chat",
		Data:  map[string]any{"roomId": roomID, "text": "hello"},
	})
	assert.Equal(t, before+1, notifier.count())
	hub.mu.Lock()
	assert.NotEmpty(t, hub.msgs)
	hub.mu.Unlock()

	// Strangers are dropped silently.
	svc.HandleIncoming(realtime.IncomingMessage{
		From:  "intruder",
		Event: "chat",
		Data:  map[string]any{"roomId": roomID, "text": "let me in"},
	})
	assert.Equal(t, before+1, notifier.count())
}

// playUntilCards creates a room and drives it to the CARDS phase.
func playUntilCards(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()
	roomID, err := svc.CreateRoom(ctx)
	require.NoError(t, err)

	players := []string{"p0", "p1", "p2", "p3"}
	for _, id := range players {
		_, err = svc.Join(ctx, roomID, id, id)
		require.NoError(t, err)
	}
	for _, id := range players {
		_, err = svc.SetReady(ctx, roomID, id, true)
		require.NoError(t, err)
	}
	for _, pick := range []struct {
		id   string
		team engine.Team
	}{{"p0", engine.TeamA}, {"p1", engine.TeamB}, {"p2", engine.TeamA}, {"p3", engine.TeamB}} {
		_, err = svc.SelectTeam(ctx, roomID, pick.id, pick.team)
		require.NoError(t, err)
	}

	state, err := svc.State(ctx, roomID)
	require.NoError(t, err)
	first := true
	for state.Phase == engine.PhaseBets {
		actor := state.CurrentTurn
		if first {
			state, err = svc.PlaceBet(ctx, roomID, actor, engine.BetSeven, false)
			first = false
		} else {
			state, err = svc.PlaceBet(ctx, roomID, actor, engine.BetSkip, false)
		}
		require.NoError(t, err)
	}
	require.Equal(t, engine.PhaseCards, state.Phase)
	return roomID
}
