package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/majeanson/newjo-sub000/internal/game/engine"
)

const createStatesTable = `
CREATE TABLE IF NOT EXISTS game_states (
	room_id    TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps one JSONB snapshot per room.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(createStatesTable); err != nil {
		return nil, fmt.Errorf("create game_states: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context, roomID string) (*engine.GameState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM game_states WHERE room_id = $1`, roomID).Scan(&raw)
	if err == sql.ErrNoRows {
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

func (s *PostgresStore) Save(ctx context.Context, roomID string, state *engine.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode room %s: %w", roomID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_states (room_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (room_id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		roomID, raw)
	if err != nil {
		return fmt.Errorf("save room %s: %w", roomID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, roomID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM game_states WHERE room_id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
