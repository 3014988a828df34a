package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
	"github.com/majeanson/newjo-sub000/internal/realtime"
	"github.com/majeanson/newjo-sub000/internal/storage"
	"github.com/majeanson/newjo-sub000/internal/utils"
)

// Service orchestrates game actions per room. Every action runs under that
// room's lock so read -> validate -> mutate -> persist is atomic; concurrent
// actions on the same room serialize, different rooms proceed in parallel.
type Service struct {
	store    storage.Store
	notifier realtime.Notifier
	hub      realtime.HubInterface
	opts     engine.Options

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store storage.Store, notifier realtime.Notifier, hub realtime.HubInterface, opts engine.Options) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		hub:      hub,
		opts:     opts,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *Service) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locks[roomID]; !ok {
		s.locks[roomID] = &sync.Mutex{}
	}
	return s.locks[roomID]
}

// CreateRoom makes an empty WAITING game and returns its id.
func (s *Service) CreateRoom(ctx context.Context) (string, error) {
	roomID := uuid.NewString()
	state := engine.NewGame(s.opts)
	if err := s.store.Save(ctx, roomID, state); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	return roomID, nil
}

// State returns the authoritative snapshot for a room.
func (s *Service) State(ctx context.Context, roomID string) (*engine.GameState, error) {
	return s.store.Load(ctx, roomID)
}

// update is the serialization point: every game action goes through here.
func (s *Service) update(ctx context.Context, roomID string, fn func(*engine.GameState) (*engine.GameState, error)) (*engine.GameState, error) {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.Load(ctx, roomID)
	if err != nil {
		return nil, err
	}
	next, err := fn(state)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, roomID, next); err != nil {
		return nil, fmt.Errorf("save room %s: %w", roomID, err)
	}
	s.notify(ctx, roomID, next)
	return next, nil
}

// notify is fire and forget: observers who miss it re-fetch on their own.
func (s *Service) notify(ctx context.Context, roomID string, state *engine.GameState) {
	event := realtime.Event{
		RoomID: roomID,
		Kind:   realtime.EventStateChanged,
		Data:   map[string]any{"phase": state.Phase, "round": state.Round},
	}
	if s.notifier != nil {
		s.notifier.Publish(ctx, roomID, event)
	}
	if s.hub != nil {
		ids := make([]string, 0, len(state.Players))
		for id := range state.Players {
			ids = append(ids, id)
		}
		s.hub.BroadcastToPlayers(ids, realtime.OutgoingMessage{Event: event.Kind, Data: event})
	}
}

func (s *Service) Join(ctx context.Context, roomID, playerID, name string) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.JoinGame(st, playerID, name)
	})
}

func (s *Service) Leave(ctx context.Context, roomID, playerID string) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.LeaveGame(st, playerID)
	})
}

func (s *Service) SetReady(ctx context.Context, roomID, playerID string, ready bool) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.SetReady(st, playerID, ready)
	})
}

func (s *Service) SelectTeam(ctx context.Context, roomID, playerID string, team engine.Team) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.SelectTeam(st, playerID, team)
	})
}

func (s *Service) PlaceBet(ctx context.Context, roomID, playerID string, rank engine.BetRank, trump bool) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.PlaceBet(st, playerID, rank, trump)
	})
}

// PlayCard plays one card; when the round's last trick falls the round is
// scored in the same atomic update, so observers never see TRICK_SCORING at
// rest.
func (s *Service) PlayCard(ctx context.Context, roomID, playerID string, card engine.Card) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		next, err := engine.PlayCard(st, playerID, card)
		if err != nil {
			return nil, err
		}
		if next.Phase == engine.PhaseTrickScoring {
			return engine.ScoreRound(next)
		}
		return next, nil
	})
}

func (s *Service) StartNextRound(ctx context.Context, roomID string) (*engine.GameState, error) {
	return s.update(ctx, roomID, func(st *engine.GameState) (*engine.GameState, error) {
		return engine.StartNextRound(st)
	})
}

// CloseRoom drops the stored state and tells observers the room is gone.
func (s *Service) CloseRoom(ctx context.Context, roomID string) error {
	lock := s.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(ctx, roomID); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Publish(ctx, roomID, realtime.Event{RoomID: roomID, Kind: realtime.EventRoomClosed})
	}
	s.mu.Lock()
	delete(s.locks, roomID)
	s.mu.Unlock()
	return nil
}

// HandleIncoming relays websocket messages from players. Game actions come
// in over the HTTP API; the socket only carries chatter.
func (s *Service) HandleIncoming(msg realtime.IncomingMessage) {
	switch msg.Event {
	case "chat":
		data, ok := msg.Data.(map[string]any)
		if !ok {
			return
		}
		roomID, _ := data["roomId"].(string)
		text, _ := data["text"].(string)
		if roomID == "" || text == "" {
			return
		}
		state, err := s.store.Load(context.Background(), roomID)
		if err != nil {
			return
		}
		if _, ok := state.Players[msg.From]; !ok {
			return // only seated players may talk to the room
		}
		event := realtime.Event{
			RoomID: roomID,
			Kind:   realtime.EventChat,
			Data:   map[string]any{"from": msg.From, "text": text},
		}
		if s.notifier != nil {
			s.notifier.Publish(context.Background(), roomID, event)
		}
		if s.hub != nil {
			ids := make([]string, 0, len(state.Players))
			for id := range state.Players {
				ids = append(ids, id)
			}
			s.hub.BroadcastToPlayers(ids, realtime.OutgoingMessage{Event: event.Kind, Data: event})
		}
	default:
		utils.Log.Debug("ignoring websocket event", "event", msg.Event, "from", msg.From)
	}
}
