package engine

// RoundSummary is the immutable record of a finished round, handed to the
// history/persistence boundary after SCORING.
type RoundSummary struct {
	RoundNumber  int             `json:"roundNumber"`
	Dealer       int             `json:"dealer"`
	BidWinner    int             `json:"bidWinner"`
	BidValue     int             `json:"bidValue"`
	Trump        string          `json:"trump"`
	PointsBySeat []int           `json:"pointsBySeat"`
	TeamPoints   []int           `json:"teamPoints"`
	TeamScores   []int           `json:"teamScores"`
	BidSuccess   bool            `json:"bidSuccess"`
	Tricks       []CapturedTrick `json:"tricks"`
}

// ScoringRules pins the configurable scoring decisions.
type ScoringRules struct {
	TeamCount int
	// CreditCapturedPoints switches the success credit from the bid value
	// (the documented default) to the literal captured points.
	CreditCapturedPoints bool
	// FailurePenalty is subtracted from the bidding team's score on a
	// failed bid; zero by default.
	FailurePenalty int
}

// DefaultScoringRules returns the pinned defaults: two teams, bid-value
// credit on success, no failure penalty.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{TeamCount: 2}
}

// ScoreRound evaluates a completed round. pointsBySeat holds every seat's
// captured points (last-trick bonus already applied at resolution).
//
// The bidding team scores the bid value on success (or its captured points
// under CreditCapturedPoints); on failure it scores zero minus any
// configured penalty. Every other team always scores its captured points.
// The function is pure: equal inputs produce equal summaries.
func ScoreRound(pointsBySeat []int, bidWinner, bidValue int, rules ScoringRules) (teamPoints, teamScores []int, success bool) {
	teamCount := rules.TeamCount
	if teamCount <= 0 {
		teamCount = 2
	}
	teamPoints = make([]int, teamCount)
	for seat, pts := range pointsBySeat {
		teamPoints[TeamOf(seat, teamCount)] += pts
	}

	biddingTeam := TeamOf(bidWinner, teamCount)
	success = teamPoints[biddingTeam] >= bidValue

	teamScores = make([]int, teamCount)
	for team, pts := range teamPoints {
		if team != biddingTeam {
			teamScores[team] = pts
			continue
		}
		switch {
		case success && rules.CreditCapturedPoints:
			teamScores[team] = pts
		case success:
			teamScores[team] = bidValue
		default:
			teamScores[team] = -rules.FailurePenalty
		}
	}
	return teamPoints, teamScores, success
}
