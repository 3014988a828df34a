package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
)

// RedisStore keeps one JSON snapshot per room under game:state:{roomID}.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration // 0 means no expiry
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func stateKey(roomID string) string {
	return fmt.Sprintf("game:state:%s", roomID)
}

func (s *RedisStore) Load(ctx context.Context, roomID string) (*engine.GameState, error) {
	raw, err := s.rdb.Get(ctx, stateKey(roomID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}
	var state engine.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", roomID, err)
	}
	if err := validateLoaded(roomID, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, roomID string, state *engine.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode room %s: %w", roomID, err)
	}
	if err := s.rdb.Set(ctx, stateKey(roomID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save room %s: %w", roomID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, roomID string) error {
	if err := s.rdb.Del(ctx, stateKey(roomID)).Err(); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}
