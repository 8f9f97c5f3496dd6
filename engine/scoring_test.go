package engine

import "testing"

// TestScoreRoundSuccess: bidding team makes its bid and is credited the bid
// value; defenders keep captured points.
func TestScoreRoundSuccess(t *testing.T) {
	// Seats 0/2 are team 0, seats 1/3 team 1. Seat 1 bid 16.
	points := []int{4, 10, 6, 8} // team 0: 10, team 1: 18
	teamPoints, teamScores, success := ScoreRound(points, 1, 16, DefaultScoringRules())
	if !success {
		t.Fatal("bid of 16 with 18 captured should succeed")
	}
	if teamPoints[0] != 10 || teamPoints[1] != 18 {
		t.Errorf("teamPoints = %v, want [10 18]", teamPoints)
	}
	if teamScores[1] != 16 {
		t.Errorf("bidding team score = %d, want bid value 16", teamScores[1])
	}
	if teamScores[0] != 10 {
		t.Errorf("defending team score = %d, want captured 10", teamScores[0])
	}
}

func TestScoreRoundFailure(t *testing.T) {
	points := []int{10, 5, 8, 5} // team 0: 18, team 1: 10
	_, teamScores, success := ScoreRound(points, 1, 16, DefaultScoringRules())
	if success {
		t.Fatal("bid of 16 with 10 captured should fail")
	}
	if teamScores[1] != 0 {
		t.Errorf("failed bidding team score = %d, want 0", teamScores[1])
	}
	if teamScores[0] != 18 {
		t.Errorf("defending team score = %d, want 18", teamScores[0])
	}
}

func TestScoreRoundFailurePenalty(t *testing.T) {
	rules := DefaultScoringRules()
	rules.FailurePenalty = 4
	points := []int{14, 7, 14, 7} // bidding team 1 captures 14, bid 20
	_, teamScores, success := ScoreRound(points, 1, 20, rules)
	if success {
		t.Fatal("bid should fail")
	}
	if teamScores[1] != -4 {
		t.Errorf("penalized score = %d, want -4", teamScores[1])
	}
}

func TestScoreRoundCreditCaptured(t *testing.T) {
	rules := DefaultScoringRules()
	rules.CreditCapturedPoints = true
	points := []int{4, 10, 6, 8}
	_, teamScores, _ := ScoreRound(points, 1, 16, rules)
	if teamScores[1] != 18 {
		t.Errorf("captured-credit score = %d, want 18", teamScores[1])
	}
}

func TestScoreRoundThreeTeams(t *testing.T) {
	rules := DefaultScoringRules()
	rules.TeamCount = 3
	// Six seats: teams (0,3), (1,4), (2,5).
	points := []int{10, 8, 2, 10, 12, 14}
	teamPoints, teamScores, success := ScoreRound(points, 4, 19, rules)
	if teamPoints[0] != 20 || teamPoints[1] != 20 || teamPoints[2] != 16 {
		t.Fatalf("teamPoints = %v, want [20 20 16]", teamPoints)
	}
	if !success || teamScores[1] != 19 {
		t.Errorf("bidding team (1) success=%v score=%d, want 19", success, teamScores[1])
	}
	if teamScores[0] != 20 || teamScores[2] != 16 {
		t.Errorf("defender scores = %v, want 20 and 16", teamScores)
	}
}

// TestScoreRoundIdempotent: re-scoring identical inputs yields identical
// outputs.
func TestScoreRoundIdempotent(t *testing.T) {
	points := []int{7, 7, 7, 7}
	p1, s1, ok1 := ScoreRound(points, 2, 14, DefaultScoringRules())
	p2, s2, ok2 := ScoreRound(points, 2, 14, DefaultScoringRules())
	if ok1 != ok2 {
		t.Fatal("success flag differs across identical runs")
	}
	for i := range p1 {
		if p1[i] != p2[i] || s1[i] != s2[i] {
			t.Fatalf("run 1 (%v/%v) differs from run 2 (%v/%v)", p1, s1, p2, s2)
		}
	}
}
