package engine

import (
	"errors"
	"fmt"
)

// The three error kinds of the engine. Every rejected action wraps exactly
// one of them so callers can map violations to HTTP status codes with
// errors.Is and never have to parse messages.
var (
	ErrPhase = errors.New("phase violation")
	ErrTurn  = errors.New("turn violation")
	ErrRule  = errors.New("rule violation")
)

func phaseErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrPhase)...)
}

func turnErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrTurn)...)
}

func ruleErrorf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrRule)...)
}

// requirePhase rejects an action attempted outside its legal phase.
func (s *GameState) requirePhase(p Phase) error {
	if s.Phase != p {
		return phaseErrorf("expected phase %s, game is in %s", p, s.Phase)
	}
	return nil
}

// requireTurn rejects an action by a player whose turn it is not.
func (s *GameState) requireTurn(playerID string) error {
	if s.CurrentTurn != playerID {
		return turnErrorf("it is %s's turn, not %s's", s.CurrentTurn, playerID)
	}
	return nil
}

// requirePlayer rejects actions by ids not present in the game.
func (s *GameState) requirePlayer(playerID string) error {
	if _, ok := s.Players[playerID]; !ok {
		return ruleErrorf("player %s is not in this game", playerID)
	}
	return nil
}
