package rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
	"github.com/majeanson/newjo-sub000/internal/realtime"
	"github.com/majeanson/newjo-sub000/internal/utils"
)

// GameCreator is the slice of the room service the lobby needs: make a game
// and seat players in it.
type GameCreator interface {
	CreateRoom(ctx context.Context) (string, error)
	Join(ctx context.Context, roomID, playerID, name string) (*engine.GameState, error)
}

// Service runs the quick-match queue: players enqueue, and as soon as 4 are
// waiting a room is created with all of them seated.
type Service struct {
	repo      Repo
	games     GameCreator
	hub       realtime.HubInterface
	playerTTL int // seconds a queue entry survives unattended
}

func NewService(repo Repo, games GameCreator, hub realtime.HubInterface, playerTTL int) *Service {
	return &Service{repo: repo, games: games, hub: hub, playerTTL: playerTTL}
}

// JoinQueue enqueues a player and tries to form a table. Returns the room
// when one formed, or queued=true while waiting.
func (s *Service) JoinQueue(ctx context.Context, playerID, name string) (*RoomInfo, bool, error) {
	if playerID == "" || name == "" {
		return nil, false, errors.New("player id and name are required")
	}
	if err := s.repo.Enqueue(ctx, QueuedPlayer{ID: playerID, Name: name}, s.playerTTL); err != nil {
		return nil, false, err
	}
	cnt, err := s.repo.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if cnt < engine.NumPlayers {
		return nil, true, nil
	}

	players, err := s.repo.PopN(ctx, engine.NumPlayers)
	if err != nil {
		return nil, false, err
	}
	if len(players) < engine.NumPlayers {
		// Lost the race against another pop; stay queued.
		for _, p := range players {
			_ = s.repo.Enqueue(ctx, p, s.playerTTL)
		}
		return nil, true, nil
	}

	roomID, err := s.games.CreateRoom(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("create room: %w", err)
	}
	info := RoomInfo{ID: roomID, Name: "quick match", CreatedAt: time.Now()}
	for _, p := range players {
		if _, err := s.games.Join(ctx, roomID, p.ID, p.Name); err != nil {
			utils.Log.Error("seat queued player", "room", roomID, "player", p.ID, "err", err)
			continue
		}
		info.Players = append(info.Players, p.ID)
	}
	if err := s.repo.SaveRoom(ctx, info); err != nil {
		utils.Log.Warn("save lobby listing", "room", roomID, "err", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToPlayers(info.Players, realtime.OutgoingMessage{
			Event: "matched",
			Data:  map[string]any{"roomId": roomID, "players": info.Players},
		})
	}
	return &info, false, nil
}

// LeaveQueue cancels a pending quick-match entry.
func (s *Service) LeaveQueue(ctx context.Context, playerID string) error {
	return s.repo.Remove(ctx, playerID)
}

// Register lists a manually created room in the lobby.
func (s *Service) Register(ctx context.Context, info RoomInfo) error {
	return s.repo.SaveRoom(ctx, info)
}

// Unregister removes a room from the lobby listing.
func (s *Service) Unregister(ctx context.Context, roomID string) error {
	return s.repo.RemoveRoom(ctx, roomID)
}

// List returns all open rooms.
func (s *Service) List(ctx context.Context) ([]RoomInfo, error) {
	return s.repo.ListRooms(ctx)
}
