package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/game"
)

func cv(id, suit, rank string) game.CardView {
	return game.CardView{ID: id, Suit: suit, Rank: rank}
}

func TestDeciderTrumpLongestSuit(t *testing.T) {
	d := NewDecider(1)
	hand := []game.CardView{
		cv("7♠#1", "♠", "7"),
		cv("J♥#1", "♥", "J"),
		cv("9♥#1", "♥", "9"),
		cv("A♥#1", "♥", "A"),
		cv("K♦#1", "♦", "K"),
	}
	assert.Equal(t, engine.SuitHearts, d.Trump(hand))
}

func TestDeciderFollowsLeadLow(t *testing.T) {
	d := NewDecider(1)
	view := game.Snapshot{
		LeadSuit: "♥",
		Hand: []game.CardView{
			cv("J♥#1", "♥", "J"),
			cv("7♥#1", "♥", "7"),
			cv("J♠#1", "♠", "J"),
		},
	}
	assert.Equal(t, "7♥#1", d.Card(view))
}

func TestDeciderTrumpsWhenVoidAndEntitled(t *testing.T) {
	d := NewDecider(1)
	view := game.Snapshot{
		LeadSuit: "♥",
		Trump:    "♣",
		Hand: []game.CardView{
			cv("J♠#1", "♠", "J"),
			cv("9♣#1", "♣", "9"),
			cv("7♣#1", "♣", "7"),
		},
	}
	assert.Equal(t, "7♣#1", d.Card(view))

	// Without the trump entitlement the bot sloughs its weakest card.
	view.Trump = ""
	assert.Equal(t, "7♣#1", d.Card(view))
}

func TestDeciderLeadsHigh(t *testing.T) {
	d := NewDecider(1)
	view := game.Snapshot{
		Hand: []game.CardView{
			cv("7♠#1", "♠", "7"),
			cv("J♠#1", "♠", "J"),
			cv("10♦#1", "♦", "10"),
		},
	}
	assert.Equal(t, "J♠#1", d.Card(view))
}

func TestDeciderBidCeiling(t *testing.T) {
	d := NewDecider(1)
	view := game.Snapshot{HighestBid: 28}
	assert.Equal(t, engine.PassBid, d.Bid(view, 14, 28))
}

func TestDeciderKittyReturnsCount(t *testing.T) {
	d := NewDecider(1)
	hand := []game.CardView{
		cv("J♠#1", "♠", "J"),
		cv("9♠#1", "♠", "9"),
	}
	kitty := []game.CardView{
		cv("7♦#1", "♦", "7"),
		cv("8♦#1", "♦", "8"),
	}
	returns := d.KittyReturns(hand, kitty)
	require.Len(t, returns, 2)
	// Weakest of the pool go back.
	assert.Contains(t, returns, "7♦#1")
	assert.Contains(t, returns, "8♦#1")
}

// TestRunnerPlaysFullRound starts an all-bot table and checks the runner
// drives it from bidding through scoring on its own.
func TestRunnerPlaysFullRound(t *testing.T) {
	s, err := game.New(game.DefaultConfig())
	require.NoError(t, err)
	_, err = s.Start()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRunner(s, 0, nil)
	go r.Run(ctx)
	r.Kick()

	deadline := time.After(10 * time.Second)
	for s.Phase() != game.PhaseScoring {
		select {
		case <-deadline:
			t.Fatalf("round did not finish, phase %s", s.Phase())
		case <-time.After(10 * time.Millisecond):
			// All-pass auctions redeal; kick again in case the runner
			// went idle between rounds of bidding.
			r.Kick()
		}
	}

	summary, ok := s.LastRound()
	require.True(t, ok)
	total := 0
	for _, p := range summary.PointsBySeat {
		total += p
	}
	assert.Equal(t, 28, total)
	assert.NotEmpty(t, summary.Trump)
}
