package engine

import "math/rand"

// SelectTeam puts a player on a team during TEAM_SELECTION. A player may
// switch sides as long as the target team has a free spot. Once both teams
// hold exactly 2 players, seats are assigned, the turn order is derived and
// betting opens.
func SelectTeam(s *GameState, playerID string, team Team) (*GameState, error) {
	if err := s.requirePhase(PhaseTeamSelection); err != nil {
		return nil, err
	}
	if err := s.requirePlayer(playerID); err != nil {
		return nil, err
	}
	if team != TeamA && team != TeamB {
		return nil, ruleErrorf("unknown team %q", team)
	}

	members := s.teamMembers(team)
	full := len(members) >= TeamSize
	for _, id := range members {
		if id == playerID {
			full = false // re-picking your own team is a no-op, not an error
		}
	}
	if full {
		return nil, ruleErrorf("team %s already has %d players", team, TeamSize)
	}

	next := s.Clone()
	p := next.Players[playerID]
	p.Team = team
	next.Players[playerID] = p

	if len(next.teamMembers(TeamA)) == TeamSize && len(next.teamMembers(TeamB)) == TeamSize {
		assignSeats(next)
		next.Phase = PhaseBets
	}
	return next, nil
}

// assignSeats interleaves the two teams around the table so teammates sit
// across from each other: A1 seat 0, B1 seat 1, A2 seat 2, B2 seat 3.
// Within a team, lobby arrival order decides who is "first".
func assignSeats(s *GameState) {
	teamA := s.teamMembers(TeamA)
	teamB := s.teamMembers(TeamB)

	seated := []string{teamA[0], teamB[0], teamA[1], teamB[1]}
	for seat, id := range seated {
		p := s.Players[id]
		p.Seat = seat
		s.Players[id] = p
	}
	s.TurnOrder = seated

	// Reference behavior picks the first dealer at random; everything after
	// that rotates deterministically.
	s.Dealer = s.TurnOrder[rand.Intn(len(s.TurnOrder))]
	s.Starter = s.nextInOrder(s.Dealer)
	s.CurrentTurn = s.Starter
}
