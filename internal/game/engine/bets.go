package engine

// PlaceBet records a bid for the acting player. When all 4 players have bet,
// the highest bid wins the contract, its owner becomes the starter, hands
// are dealt and the round moves to trick play.
func PlaceBet(s *GameState, playerID string, rank BetRank, trump bool) (*GameState, error) {
	if err := s.requirePhase(PhaseBets); err != nil {
		return nil, err
	}
	if err := s.requirePlayer(playerID); err != nil {
		return nil, err
	}
	if err := s.requireTurn(playerID); err != nil {
		return nil, err
	}
	if _, ok := s.Bets[playerID]; ok {
		return nil, ruleErrorf("player %s already bet this round", playerID)
	}
	if !rank.Valid() {
		return nil, ruleErrorf("unknown bet rank %d", rank)
	}

	bet := Bet{PlayerID: playerID, Rank: rank, Trump: trump}
	if err := s.checkBetLegal(bet); err != nil {
		return nil, err
	}

	next := s.Clone()
	next.Bets[playerID] = bet

	if len(next.Bets) == NumPlayers {
		winner := highestBet(next)
		next.HighestBet = &winner
		next.Starter = winner.PlayerID
		next.CurrentTurn = winner.PlayerID
		dealInto(next, shuffledDeck())
		next.Phase = PhaseCards
	} else {
		next.CurrentTurn = next.nextInOrder(playerID)
	}
	return next, nil
}

// checkBetLegal applies the bid ladder. A new bid must strictly outrank the
// current highest, with one tie-break: at equal rank, no-trump outranks
// trump. SKIP is always allowed except for the last player when everyone
// else skipped (someone has to own a contract).
func (s *GameState) checkBetLegal(bet Bet) error {
	if bet.Rank == BetSkip {
		if len(s.Bets) == NumPlayers-1 && allSkipped(s) {
			return ruleErrorf("last player cannot skip when all others skipped")
		}
		return nil
	}

	high := currentHighest(s)
	if high == nil {
		// SEVEN is the table minimum; Valid() already capped the top.
		if bet.Rank < BetSeven {
			return ruleErrorf("minimum bet is %s", BetSeven)
		}
		return nil
	}
	if bet.beats(*high) {
		return nil
	}
	return ruleErrorf("bet %s (trump=%t) does not beat current highest %s (trump=%t)",
		bet.Rank, bet.Trump, high.Rank, high.Trump)
}

// beats reports whether b outranks o under the bid ordering.
func (b Bet) beats(o Bet) bool {
	if b.Rank == BetSkip {
		return false
	}
	if o.Rank == BetSkip {
		return true
	}
	if b.Rank != o.Rank {
		return b.Rank > o.Rank
	}
	// Equal rank: a no-trump bid overtakes a trump one, never the reverse.
	return o.Trump && !b.Trump
}

func allSkipped(s *GameState) bool {
	for _, b := range s.Bets {
		if b.Rank != BetSkip {
			return false
		}
	}
	return true
}

// currentHighest returns the leading non-skip bet, nil if nobody committed
// yet. Later bids were only accepted if they beat earlier ones, so a linear
// scan with beats() is order-independent.
func currentHighest(s *GameState) *Bet {
	var high *Bet
	for _, id := range s.TurnOrder {
		b, ok := s.Bets[id]
		if !ok || b.Rank == BetSkip {
			continue
		}
		if high == nil || b.beats(*high) {
			bc := b
			high = &bc
		}
	}
	return high
}

// highestBet is currentHighest once betting closed; the forced-bid rule
// guarantees at least one non-skip bid exists.
func highestBet(s *GameState) Bet {
	return *currentHighest(s)
}
