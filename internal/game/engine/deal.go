package engine

import "math/rand"

// NewDeck builds the full 32-card deck: 4 colors x values 0-7.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		for v := MinCardValue; v <= MaxCardValue; v++ {
			deck = append(deck, Card{Color: color, Value: v})
		}
	}
	return deck
}

func shuffledDeck() []Card {
	deck := NewDeck()
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// DealCards shuffles a fresh deck and deals 8 cards to each of the 4 seated
// players in turn order. Hands are disjoint and cover the deck exactly.
func DealCards(s *GameState) (*GameState, error) {
	if len(s.TurnOrder) != NumPlayers {
		return nil, ruleErrorf("cannot deal before seats are assigned")
	}
	next := s.Clone()
	dealInto(next, shuffledDeck())
	return next, nil
}

// dealInto distributes an already shuffled deck. Split out so tests can feed
// a fixed deck and assert exact hands.
func dealInto(s *GameState, deck []Card) {
	idx := 0
	for _, id := range s.TurnOrder {
		s.PlayerHands[id] = append([]Card(nil), deck[idx:idx+HandSize]...)
		idx += HandSize
	}
}
