package engine

// RoundScores is the outcome of one round before it is folded into the
// cumulative game scores.
type RoundScores struct {
	TeamA          int  `json:"teamA"`
	TeamB          int  `json:"teamB"`
	BettingTeam    Team `json:"bettingTeam"`
	BettingTeamWon bool `json:"bettingTeamWon"`
}

// CalculateRoundScores values the finished round. The betting team needs at
// least its contract target in trick points; making it scores the overtricks
// times the multiplier (1 for trump contracts, 2 for no-trump), missing it
// scores minus the full trick total times the same multiplier. The defending
// team always keeps its raw trick total.
func CalculateRoundScores(s *GameState) (RoundScores, error) {
	if s.HighestBet == nil {
		return RoundScores{}, ruleErrorf("no contract to score")
	}
	bettingTeam := s.teamOf(s.HighestBet.PlayerID)
	if bettingTeam == TeamNone {
		return RoundScores{}, ruleErrorf("contract holder %s has no team", s.HighestBet.PlayerID)
	}

	totals := map[Team]int{}
	for id, pts := range s.WonTricks {
		totals[s.teamOf(id)] += pts
	}

	target := s.HighestBet.Rank.Target()
	multiplier := 2
	if s.HighestBet.Trump {
		multiplier = 1
	}

	bettingTotal := totals[bettingTeam]
	won := bettingTotal >= target
	var bettingScore int
	if won {
		bettingScore = (bettingTotal - target) * multiplier
	} else {
		bettingScore = -bettingTotal * multiplier
	}

	defending := TeamB
	if bettingTeam == TeamB {
		defending = TeamA
	}

	out := RoundScores{BettingTeam: bettingTeam, BettingTeamWon: won}
	if bettingTeam == TeamA {
		out.TeamA = bettingScore
		out.TeamB = totals[defending]
	} else {
		out.TeamB = bettingScore
		out.TeamA = totals[defending]
	}
	return out, nil
}

// ScoreRound folds the round result into every player's cumulative score and
// moves to ROUND_END, or straight to GAME_END once a team reaches the
// winning score.
func ScoreRound(s *GameState) (*GameState, error) {
	if err := s.requirePhase(PhaseTrickScoring); err != nil {
		return nil, err
	}
	scores, err := CalculateRoundScores(s)
	if err != nil {
		return nil, err
	}

	next := s.Clone()
	for id, p := range next.Players {
		switch p.Team {
		case TeamA:
			next.Scores[id] += scores.TeamA
		case TeamB:
			next.Scores[id] += scores.TeamB
		}
	}

	next.Phase = PhaseRoundEnd
	for _, total := range next.Scores {
		if total >= next.Options.WinScore {
			next.Phase = PhaseGameEnd
			break
		}
	}
	return next, nil
}

// StartNextRound resets the per-round maps, rotates the dealer, deals a
// fresh deck and reopens betting. The player after the new dealer bets
// first.
func StartNextRound(s *GameState) (*GameState, error) {
	if err := s.requirePhase(PhaseRoundEnd); err != nil {
		return nil, err
	}

	next := s.Clone()
	next.Round++
	next.Bets = make(map[string]Bet)
	next.PlayedCards = make(map[string]Card)
	next.PlayerHands = make(map[string][]Card)
	next.WonTricks = make(map[string]int)
	next.HighestBet = nil
	next.Trump = ""
	next.TrickNumber = 0
	next.PlayCount = 0

	next.Dealer = next.nextInOrder(next.Dealer)
	next.Starter = next.nextInOrder(next.Dealer)
	next.CurrentTurn = next.Starter
	next.Phase = PhaseBets
	return next, nil
}
