package bot

import (
	"math/rand"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/game"
)

// Decider picks actions for a single bot seat from its redacted view of the
// game. It is deliberately simple: bots exist to fill empty seats, not to
// win tournaments.
type Decider struct {
	rng *rand.Rand
}

func NewDecider(seed int64) *Decider {
	return &Decider{rng: rand.New(rand.NewSource(seed))}
}

// handStrength estimates how high a hand can safely bid: captured points
// held plus a bonus for the longest suit.
func handStrength(hand []game.CardView) int {
	points := 0
	bySuit := map[string]int{}
	longest := 0
	for _, c := range hand {
		if r, ok := engine.ParseRank(c.Rank); ok {
			points += engine.Card{Rank: r}.Points()
		}
		bySuit[c.Suit]++
		if bySuit[c.Suit] > longest {
			longest = bySuit[c.Suit]
		}
	}
	return points + 2*longest
}

// Bid returns the value to submit, or engine.PassBid. A bot raises by one
// over the current highest while its hand supports it, with a one-in-three
// chance of passing anyway so auctions don't drag.
func (d *Decider) Bid(view game.Snapshot, minBid, maxBid int) int {
	target := view.HighestBid + 1
	if view.HighestBid < minBid {
		target = minBid
	}
	if target > maxBid {
		return engine.PassBid
	}
	est := minBid + handStrength(view.Hand)/3
	if target > est {
		return engine.PassBid
	}
	if d.rng.Intn(3) == 0 {
		return engine.PassBid
	}
	return target
}

// Trump picks the bot's longest suit.
func (d *Decider) Trump(hand []game.CardView) engine.Suit {
	counts := map[engine.Suit]int{}
	best := engine.SuitSpades
	for _, c := range hand {
		s, ok := engine.ParseSuit(c.Suit)
		if !ok {
			continue
		}
		counts[s]++
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// KittyReturns keeps the kitty's strongest cards and hands back the same
// number of the combined pool's weakest.
func (d *Decider) KittyReturns(hand, kitty []game.CardView) []string {
	pool := append(append([]game.CardView(nil), hand...), kitty...)
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && strengthOf(pool[j]) < strengthOf(pool[j-1]); j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}
	out := make([]string, 0, len(kitty))
	for _, c := range pool[:len(kitty)] {
		out = append(out, c.ID)
	}
	return out
}

// Card picks which card the bot plays: the weakest card that follows the
// lead, the weakest trump when void and the suit is known to it, the
// strongest card when leading, otherwise its weakest card.
func (d *Decider) Card(view game.Snapshot) string {
	if len(view.Hand) == 0 {
		return ""
	}
	if view.LeadSuit == "" {
		return pick(view.Hand, nil, false)
	}
	if holdsSuit(view.Hand, view.LeadSuit) {
		follow := view.LeadSuit
		return pick(view.Hand, &follow, true)
	}
	// Trump is set in the view only when this seat is entitled to know it.
	if view.Trump != "" && holdsSuit(view.Hand, view.Trump) {
		trump := view.Trump
		return pick(view.Hand, &trump, true)
	}
	return pick(view.Hand, nil, true)
}

func holdsSuit(hand []game.CardView, suit string) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func strengthOf(c game.CardView) int {
	r, ok := engine.ParseRank(c.Rank)
	if !ok {
		return 0
	}
	return int(r.Strength())
}

// pick returns the lowest (or highest) card, restricted to one suit when
// given.
func pick(hand []game.CardView, suit *string, lowest bool) string {
	bestID := ""
	bestStrength := -1
	for _, c := range hand {
		if suit != nil && c.Suit != *suit {
			continue
		}
		s := strengthOf(c)
		if bestID == "" || (lowest && s < bestStrength) || (!lowest && s > bestStrength) {
			bestID = c.ID
			bestStrength = s
		}
	}
	if bestID == "" {
		bestID = hand[0].ID
	}
	return bestID
}
