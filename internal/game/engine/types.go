package engine

import "fmt"

// Phase drives which actions are legal. It is the single canonical
// representation; the storage layer persists it verbatim.
type Phase string

const (
	PhaseWaiting       Phase = "WAITING"
	PhaseTeamSelection Phase = "TEAM_SELECTION"
	PhaseBets          Phase = "BETS"
	PhaseCards         Phase = "CARDS"
	PhaseTrickScoring  Phase = "TRICK_SCORING"
	PhaseRoundEnd      Phase = "ROUND_END"
	PhaseGameEnd       Phase = "GAME_END"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseWaiting, PhaseTeamSelection, PhaseBets, PhaseCards,
		PhaseTrickScoring, PhaseRoundEnd, PhaseGameEnd:
		return true
	}
	return false
}

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
	// TeamNone marks a player who has not picked a side yet.
	TeamNone Team = ""
)

// Color is a card suit. The deck has 4 colors x 8 values (0-7).
type Color string

const (
	ColorRed   Color = "RED"
	ColorBlue  Color = "BLUE"
	ColorGreen Color = "GREEN"
	ColorBrown Color = "BROWN"
)

// Colors in deck-building order.
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorBrown}

const (
	NumPlayers   = 4
	HandSize     = 8
	DeckSize     = NumPlayers * HandSize
	TeamSize     = 2
	MinCardValue = 0
	MaxCardValue = 7
)

// Card identity is (Color, Value). PlayerID, PlayOrder and TrickNumber are
// transient annotations filled in when the card hits the table.
type Card struct {
	Color       Color  `json:"color"`
	Value       int    `json:"value"`
	PlayerID    string `json:"playerId,omitempty"`
	PlayOrder   int    `json:"playOrder,omitempty"`
	TrickNumber int    `json:"trickNumber,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s-%d", c.Color, c.Value)
}

// Same compares card identity only, ignoring table annotations.
func (c Card) Same(o Card) bool {
	return c.Color == o.Color && c.Value == o.Value
}

// BetRank is the ordered ladder of possible bids. SKIP is the lowest,
// SEVEN is the table minimum for a real bid.
type BetRank int

const (
	BetSkip BetRank = iota
	BetSeven
	BetEight
	BetNine
	BetTen
	BetEleven
	BetTwelve
)

func (r BetRank) Valid() bool {
	return r >= BetSkip && r <= BetTwelve
}

// Target is the number of tricks the bid commits to.
func (r BetRank) Target() int {
	if r == BetSkip {
		return 0
	}
	return int(r) + 6
}

func (r BetRank) String() string {
	switch r {
	case BetSkip:
		return "SKIP"
	case BetSeven:
		return "SEVEN"
	case BetEight:
		return "EIGHT"
	case BetNine:
		return "NINE"
	case BetTen:
		return "TEN"
	case BetEleven:
		return "ELEVEN"
	case BetTwelve:
		return "TWELVE"
	default:
		return "?"
	}
}

// Bet is a player's commitment to win at least Rank.Target() tricks,
// optionally declaring trump. The trump color itself is only fixed when the
// bid winner leads the first card of the round.
type Bet struct {
	PlayerID string  `json:"playerId"`
	Rank     BetRank `json:"rank"`
	Trump    bool    `json:"trump"`
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Team  Team   `json:"team,omitempty"`
	Seat  int    `json:"seat"` // -1 until seats are assigned
	Ready bool   `json:"ready"`
}

// Options tunes a game without touching the rules.
type Options struct {
	WinScore int `json:"winScore"`
}

const DefaultWinScore = 41

// GameState is the single aggregate the engine operates on. Operations never
// mutate a state in place; they deep-copy, transform and return the copy.
type GameState struct {
	Phase       Phase             `json:"phase"`
	Round       int               `json:"round"`
	CurrentTurn string            `json:"currentTurn,omitempty"`
	Dealer      string            `json:"dealer,omitempty"`
	Starter     string            `json:"starter,omitempty"`
	Trump       Color             `json:"trump,omitempty"`
	HighestBet  *Bet              `json:"highestBet,omitempty"`
	Players     map[string]Player `json:"players"`
	Bets        map[string]Bet    `json:"bets"`
	PlayedCards map[string]Card   `json:"playedCards"`
	PlayerHands map[string][]Card `json:"playerHands"`
	WonTricks   map[string]int    `json:"wonTricks"`
	Scores      map[string]int    `json:"scores"`
	TurnOrder   []string          `json:"turnOrder"`
	// JoinOrder keeps the lobby arrival order; seat assignment uses it to
	// break ties deterministically inside a team.
	JoinOrder []string `json:"joinOrder"`
	// TrickNumber counts completed tricks within the round, PlayCount counts
	// cards played within the current trick.
	TrickNumber int     `json:"trickNumber"`
	PlayCount   int     `json:"playCount"`
	Options     Options `json:"options"`
}

// NewGame returns an empty lobby in the WAITING phase.
func NewGame(opts Options) *GameState {
	if opts.WinScore <= 0 {
		opts.WinScore = DefaultWinScore
	}
	return &GameState{
		Phase:       PhaseWaiting,
		Round:       1,
		Players:     make(map[string]Player),
		Bets:        make(map[string]Bet),
		PlayedCards: make(map[string]Card),
		PlayerHands: make(map[string][]Card),
		WonTricks:   make(map[string]int),
		Scores:      make(map[string]int),
		Options:     opts,
	}
}

// Clone deep-copies the state. Every operation starts here so callers keep
// their snapshot untouched on error.
func (s *GameState) Clone() *GameState {
	next := *s
	next.Players = make(map[string]Player, len(s.Players))
	for id, p := range s.Players {
		next.Players[id] = p
	}
	next.Bets = make(map[string]Bet, len(s.Bets))
	for id, b := range s.Bets {
		next.Bets[id] = b
	}
	next.PlayedCards = make(map[string]Card, len(s.PlayedCards))
	for id, c := range s.PlayedCards {
		next.PlayedCards[id] = c
	}
	next.PlayerHands = make(map[string][]Card, len(s.PlayerHands))
	for id, hand := range s.PlayerHands {
		next.PlayerHands[id] = append([]Card(nil), hand...)
	}
	next.WonTricks = make(map[string]int, len(s.WonTricks))
	for id, n := range s.WonTricks {
		next.WonTricks[id] = n
	}
	next.Scores = make(map[string]int, len(s.Scores))
	for id, n := range s.Scores {
		next.Scores[id] = n
	}
	next.TurnOrder = append([]string(nil), s.TurnOrder...)
	next.JoinOrder = append([]string(nil), s.JoinOrder...)
	if s.HighestBet != nil {
		b := *s.HighestBet
		next.HighestBet = &b
	}
	return &next
}

// nextInOrder returns the player after id in TurnOrder, wrapping around.
func (s *GameState) nextInOrder(id string) string {
	for i, p := range s.TurnOrder {
		if p == id {
			return s.TurnOrder[(i+1)%len(s.TurnOrder)]
		}
	}
	if len(s.TurnOrder) > 0 {
		return s.TurnOrder[0]
	}
	return ""
}

// teamOf returns the team of a player, TeamNone if unknown.
func (s *GameState) teamOf(id string) Team {
	if p, ok := s.Players[id]; ok {
		return p.Team
	}
	return TeamNone
}

func (s *GameState) teamMembers(t Team) []string {
	out := make([]string, 0, TeamSize)
	for _, id := range s.JoinOrder {
		if p, ok := s.Players[id]; ok && p.Team == t {
			out = append(out, id)
		}
	}
	return out
}
