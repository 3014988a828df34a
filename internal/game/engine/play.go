package engine

// CanPlayCard reports whether playing card would be accepted right now.
func CanPlayCard(s *GameState, playerID string, card Card) bool {
	return s.checkPlayLegal(playerID, card) == nil
}

// PlayCard plays a card from the acting player's hand into the current
// trick. A completed trick is resolved immediately: the winner collects the
// trick points and leads the next one. When the last trick of the round
// falls, the round moves to scoring.
func PlayCard(s *GameState, playerID string, card Card) (*GameState, error) {
	if err := s.checkPlayLegal(playerID, card); err != nil {
		return nil, err
	}

	next := s.Clone()

	// The trump color is whatever the contract holder leads first, but only
	// for trump contracts. No-trump rounds never get a trump color.
	if next.TrickNumber == 0 && len(next.PlayedCards) == 0 &&
		next.HighestBet != nil && next.HighestBet.Trump && next.Trump == "" {
		next.Trump = card.Color
	}

	removeFromHand(next, playerID, card)

	played := Card{Color: card.Color, Value: card.Value}
	played.PlayerID = playerID
	played.PlayOrder = next.PlayCount
	played.TrickNumber = next.TrickNumber
	next.PlayedCards[playerID] = played
	next.PlayCount++
	next.CurrentTurn = next.nextInOrder(playerID)

	if IsTrickComplete(next) {
		resolveTrick(next)
	}
	return next, nil
}

// checkPlayLegal enforces phase, turn, card ownership and follow-suit.
// Trump may always be played, even while holding the led color; holding no
// card of the led color frees the player entirely.
func (s *GameState) checkPlayLegal(playerID string, card Card) error {
	if err := s.requirePhase(PhaseCards); err != nil {
		return err
	}
	if err := s.requirePlayer(playerID); err != nil {
		return err
	}
	if err := s.requireTurn(playerID); err != nil {
		return err
	}
	hand := s.PlayerHands[playerID]
	if !handContains(hand, card) {
		return ruleErrorf("card %s is not in %s's hand", card, playerID)
	}

	if len(s.PlayedCards) == 0 {
		return nil // leading establishes the color to follow
	}
	led := s.ledColor()
	if s.Trump != "" && card.Color == s.Trump {
		return nil
	}
	if card.Color == led {
		return nil
	}
	if !handHasColor(hand, led) {
		return nil
	}
	return ruleErrorf("must follow the led color %s (or play trump)", led)
}

// ledColor is the color of the first card of the current trick.
func (s *GameState) ledColor() Color {
	var led Card
	first := true
	for _, c := range s.PlayedCards {
		if first || c.PlayOrder < led.PlayOrder {
			led = c
			first = false
		}
	}
	return led.Color
}

func handContains(hand []Card, card Card) bool {
	for _, c := range hand {
		if c.Same(card) {
			return true
		}
	}
	return false
}

func handHasColor(hand []Card, color Color) bool {
	for _, c := range hand {
		if c.Color == color {
			return true
		}
	}
	return false
}

func removeFromHand(s *GameState, playerID string, card Card) {
	hand := s.PlayerHands[playerID]
	for i, c := range hand {
		if c.Same(card) {
			s.PlayerHands[playerID] = append(hand[:i:i], hand[i+1:]...)
			return
		}
	}
}
