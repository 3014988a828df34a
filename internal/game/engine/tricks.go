package engine

// Bonhomme cards: the red 0 is worth a bonus to whoever wins the trick
// holding it, the brown 0 a penalty.
const (
	RedBonhommeBonus    = 5
	BrownBonhommePenalty = 3
	TrickBasePoints     = 1
)

// IsTrickComplete is true once every seated player has a card on the table.
func IsTrickComplete(s *GameState) bool {
	return len(s.TurnOrder) > 0 && len(s.PlayedCards) == len(s.TurnOrder)
}

// TrickWinner returns the id of the player whose card takes the trick.
// Starting from the led card: trump beats non-trump, higher trump beats
// lower trump, and among non-trump only cards of the led color compete.
// The result does not depend on map iteration order.
func TrickWinner(cards map[string]Card, trump Color) string {
	ordered := orderedByPlay(cards)
	if len(ordered) == 0 {
		return ""
	}
	led := ordered[0].Color
	best := ordered[0]
	for _, c := range ordered[1:] {
		if beatsCard(c, best, led, trump) {
			best = c
		}
	}
	return best.PlayerID
}

func beatsCard(c, best Card, led, trump Color) bool {
	if trump != "" {
		if c.Color == trump && best.Color != trump {
			return true
		}
		if c.Color != trump && best.Color == trump {
			return false
		}
		if c.Color == trump && best.Color == trump {
			return c.Value > best.Value
		}
	}
	// Neither is trump: only led-color cards can take the trick.
	if c.Color != led {
		return false
	}
	if best.Color != led {
		return true
	}
	return c.Value > best.Value
}

// TrickPoints values a completed trick: 1 base point, +5 when the red
// bonhomme is inside, -3 for the brown one. Both land on the winner.
func TrickPoints(cards map[string]Card) int {
	points := TrickBasePoints
	for _, c := range cards {
		if c.Value != 0 {
			continue
		}
		switch c.Color {
		case ColorRed:
			points += RedBonhommeBonus
		case ColorBrown:
			points -= BrownBonhommePenalty
		}
	}
	return points
}

// resolveTrick credits the winner, clears the table and hands them the next
// lead. The last trick of the round flips the phase to scoring.
func resolveTrick(s *GameState) {
	winner := TrickWinner(s.PlayedCards, s.Trump)
	s.WonTricks[winner] += TrickPoints(s.PlayedCards)
	s.PlayedCards = make(map[string]Card)
	s.TrickNumber++
	s.Starter = winner
	s.CurrentTurn = winner

	if allHandsEmpty(s) {
		s.Phase = PhaseTrickScoring
	}
}

func allHandsEmpty(s *GameState) bool {
	for _, id := range s.TurnOrder {
		if len(s.PlayerHands[id]) > 0 {
			return false
		}
	}
	return true
}

func orderedByPlay(cards map[string]Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, c)
	}
	// Tiny fixed-size slice, insertion sort by play order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].PlayOrder < out[j-1].PlayOrder; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
