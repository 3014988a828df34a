package engine

import "testing"

func TestSelectTeamBalance(t *testing.T) {
	s := lobbyGame(t)
	var err error

	s, err = SelectTeam(s, "p0", TeamA)
	if err != nil {
		t.Fatalf("p0 -> A: %v", err)
	}
	s, err = SelectTeam(s, "p1", TeamA)
	if err != nil {
		t.Fatalf("p1 -> A: %v", err)
	}
	// Team A is full now.
	if _, err = SelectTeam(s, "p2", TeamA); err == nil {
		t.Fatal("expected third player on team A to be rejected")
	}
	// Re-picking your own team is allowed and changes nothing.
	if _, err = SelectTeam(s, "p0", TeamA); err != nil {
		t.Fatalf("re-pick own team: %v", err)
	}
	// Switching to the open team is allowed.
	s, err = SelectTeam(s, "p1", TeamB)
	if err != nil {
		t.Fatalf("p1 switch to B: %v", err)
	}
	if got := s.teamOf("p1"); got != TeamB {
		t.Fatalf("p1 should be on team B, got %q", got)
	}
}

func TestSeatsAndTurnOrderOnceTeamsFull(t *testing.T) {
	s := teamedGame(t)

	if len(s.TurnOrder) != NumPlayers {
		t.Fatalf("expected %d seats, got %d", NumPlayers, len(s.TurnOrder))
	}
	seen := map[string]bool{}
	for _, id := range s.TurnOrder {
		if seen[id] {
			t.Fatalf("duplicate player %s in turn order", id)
		}
		seen[id] = true
	}
	// Teams alternate around the table.
	for i, id := range s.TurnOrder {
		want := TeamA
		if i%2 == 1 {
			want = TeamB
		}
		if got := s.teamOf(id); got != want {
			t.Fatalf("seat %d: expected team %s, got %s", i, want, got)
		}
		if s.Players[id].Seat != i {
			t.Fatalf("seat %d: player %s has seat %d", i, id, s.Players[id].Seat)
		}
	}
	// Dealer selection is random; only assert structure.
	if _, ok := s.Players[s.Dealer]; !ok {
		t.Fatalf("dealer %q is not a player", s.Dealer)
	}
	if s.Starter != s.nextInOrder(s.Dealer) {
		t.Fatalf("starter should sit after the dealer")
	}
	if s.CurrentTurn != s.Starter {
		t.Fatalf("betting should open with the starter")
	}
}

func TestSelectTeamPhaseGuard(t *testing.T) {
	s := NewGame(Options{})
	s, err := JoinGame(s, "p0", "zero")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err = SelectTeam(s, "p0", TeamA); err == nil {
		t.Fatal("expected team selection to be rejected in WAITING")
	}
	if _, err = SelectTeam(lobbyGame(t), "ghost", TeamA); err == nil {
		t.Fatal("expected unknown player to be rejected")
	}
	if _, err = SelectTeam(lobbyGame(t), "p0", Team("C")); err == nil {
		t.Fatal("expected unknown team to be rejected")
	}
}
