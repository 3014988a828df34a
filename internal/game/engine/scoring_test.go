package engine

import "testing"

// scoringState builds a TRICK_SCORING state with the given contract and
// per-player trick points. Teams are A={p0,p2}, B={p1,p3}.
func scoringState(highest Bet, wonTricks map[string]int) *GameState {
	s := playedState(map[string][]Card{}, "", &highest, "")
	s.Phase = PhaseTrickScoring
	for id, pts := range wonTricks {
		s.WonTricks[id] = pts
	}
	s.Dealer = "p0"
	s.Starter = "p1"
	s.TrickNumber = HandSize
	return s
}

func TestRoundScoresContractMade(t *testing.T) {
	// Example from the rules: target 8 under a trump contract, the betting
	// team takes 10 -> (10-8)*1 = 2, defenders keep their raw 3.
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetEight, Trump: true},
		map[string]int{"p0": 6, "p2": 4, "p1": 2, "p3": 1},
	)
	scores, err := CalculateRoundScores(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !scores.BettingTeamWon || scores.BettingTeam != TeamA {
		t.Fatalf("unexpected outcome %+v", scores)
	}
	if scores.TeamA != 2 || scores.TeamB != 3 {
		t.Fatalf("expected A=2 B=3, got A=%d B=%d", scores.TeamA, scores.TeamB)
	}
}

func TestRoundScoresNoTrumpMultiplier(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p1", Rank: BetSeven, Trump: false},
		map[string]int{"p1": 5, "p3": 4, "p0": 2, "p2": 1},
	)
	scores, err := CalculateRoundScores(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	// (9-7)*2 = 4 for team B, raw 3 for team A.
	if scores.TeamB != 4 || scores.TeamA != 3 {
		t.Fatalf("expected B=4 A=3, got B=%d A=%d", scores.TeamB, scores.TeamA)
	}
}

func TestRoundScoresContractFailed(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetTen, Trump: false},
		map[string]int{"p0": 3, "p2": 2, "p1": 4, "p3": 3},
	)
	scores, err := CalculateRoundScores(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if scores.BettingTeamWon {
		t.Fatal("a 5-point round cannot make a TEN contract")
	}
	// -(5)*2 = -10 for the betting side, defenders keep their raw 7.
	if scores.TeamA != -10 || scores.TeamB != 7 {
		t.Fatalf("expected A=-10 B=7, got A=%d B=%d", scores.TeamA, scores.TeamB)
	}
}

// Making the contract with zero overtricks scores zero for the betting side
// while the defenders still keep their raw tricks.
func TestRoundScoresZeroOvertricks(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetEight, Trump: true},
		map[string]int{"p0": 5, "p2": 3, "p1": 2, "p3": 1},
	)
	scores, err := CalculateRoundScores(s)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !scores.BettingTeamWon {
		t.Fatal("exactly hitting the target makes the contract")
	}
	if scores.TeamA != 0 {
		t.Fatalf("zero overtricks should score 0, got %d", scores.TeamA)
	}
	if scores.TeamB != 3 {
		t.Fatalf("defenders keep their raw total, got %d", scores.TeamB)
	}
}

func TestScoreRoundAppliesTeamScores(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetEight, Trump: true},
		map[string]int{"p0": 6, "p2": 4, "p1": 2, "p3": 1},
	)
	next, err := ScoreRound(s)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}
	if next.Phase != PhaseRoundEnd {
		t.Fatalf("expected ROUND_END, got %s", next.Phase)
	}
	for _, id := range []string{"p0", "p2"} {
		if next.Scores[id] != 2 {
			t.Fatalf("team A player %s should have 2, got %d", id, next.Scores[id])
		}
	}
	for _, id := range []string{"p1", "p3"} {
		if next.Scores[id] != 3 {
			t.Fatalf("team B player %s should have 3, got %d", id, next.Scores[id])
		}
	}
}

func TestScoreRoundEndsGameAtWinScore(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetSeven, Trump: true},
		map[string]int{"p0": 6, "p2": 4, "p1": 1, "p3": 1},
	)
	s.Options.WinScore = 3
	next, err := ScoreRound(s)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}
	if next.Phase != PhaseGameEnd {
		t.Fatalf("expected GAME_END, got %s", next.Phase)
	}
}

func TestStartNextRoundRotatesAndResets(t *testing.T) {
	s := scoringState(
		Bet{PlayerID: "p0", Rank: BetEight, Trump: true},
		map[string]int{"p0": 6, "p2": 4, "p1": 2, "p3": 1},
	)
	s.Trump = ColorRed
	scored, err := ScoreRound(s)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}
	next, err := StartNextRound(scored)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}

	if next.Round != s.Round+1 {
		t.Fatalf("round should increment, got %d", next.Round)
	}
	if next.Dealer != s.nextInOrder("p0") {
		t.Fatalf("dealer should rotate, got %s", next.Dealer)
	}
	if next.Starter != next.nextInOrder(next.Dealer) || next.CurrentTurn != next.Starter {
		t.Fatal("the player after the new dealer opens betting")
	}
	if next.Phase != PhaseBets {
		t.Fatalf("expected BETS, got %s", next.Phase)
	}
	if len(next.Bets) != 0 || len(next.PlayedCards) != 0 || len(next.WonTricks) != 0 {
		t.Fatal("per-round maps must reset")
	}
	if next.HighestBet != nil || next.Trump != "" {
		t.Fatal("contract and trump must reset")
	}
	if next.TrickNumber != 0 || next.PlayCount != 0 {
		t.Fatal("trick counters must reset")
	}
	// Cumulative scores survive the boundary.
	if next.Scores["p0"] != scored.Scores["p0"] {
		t.Fatal("cumulative scores must survive the round boundary")
	}
}
