package engine

// JoinGame adds a player to a WAITING game. The table holds at most 4.
func JoinGame(s *GameState, playerID, name string) (*GameState, error) {
	if err := s.requirePhase(PhaseWaiting); err != nil {
		return nil, err
	}
	if playerID == "" {
		return nil, ruleErrorf("empty player id")
	}
	if _, ok := s.Players[playerID]; ok {
		return nil, ruleErrorf("player %s already joined", playerID)
	}
	if len(s.Players) >= NumPlayers {
		return nil, ruleErrorf("game is full")
	}

	next := s.Clone()
	next.Players[playerID] = Player{ID: playerID, Name: name, Seat: -1}
	next.JoinOrder = append(next.JoinOrder, playerID)
	return next, nil
}

// LeaveGame removes a player. Only possible before teams form; mid-game the
// seat stays occupied and the orchestration layer decides what to do with
// the room.
func LeaveGame(s *GameState, playerID string) (*GameState, error) {
	if s.Phase != PhaseWaiting && s.Phase != PhaseTeamSelection {
		return nil, phaseErrorf("cannot leave once the game started (phase %s)", s.Phase)
	}
	if err := s.requirePlayer(playerID); err != nil {
		return nil, err
	}

	next := s.Clone()
	delete(next.Players, playerID)
	order := next.JoinOrder[:0]
	for _, id := range next.JoinOrder {
		if id != playerID {
			order = append(order, id)
		}
	}
	next.JoinOrder = order
	// A departure from team selection reopens the lobby.
	if next.Phase == PhaseTeamSelection {
		next.Phase = PhaseWaiting
		for id, p := range next.Players {
			p.Ready = false
			next.Players[id] = p
		}
	}
	return next, nil
}

// SetReady toggles a player's ready flag. Once 4 players are all ready the
// game moves to team selection.
func SetReady(s *GameState, playerID string, ready bool) (*GameState, error) {
	if err := s.requirePhase(PhaseWaiting); err != nil {
		return nil, err
	}
	if err := s.requirePlayer(playerID); err != nil {
		return nil, err
	}

	next := s.Clone()
	p := next.Players[playerID]
	p.Ready = ready
	next.Players[playerID] = p

	if len(next.Players) == NumPlayers && allReady(next) {
		next.Phase = PhaseTeamSelection
	}
	return next, nil
}

func allReady(s *GameState) bool {
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}
