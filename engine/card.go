// Package engine implements the Thurup (28/56) card game rules.
//
// The package is pure: no I/O, no logging, no clocks. Callers provide the
// shuffle seed and hold whatever lock guards the surrounding session. All
// rule violations are reported as *Error values carrying a Kind from the
// fixed set in errors.go.
package engine

import "fmt"

// Suit identifies one of the four french suits.
type Suit uint8

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
	numSuits
)

var suitSymbols = [numSuits]string{"♠", "♥", "♦", "♣"}

// String returns the suit symbol used on the wire (♠, ♥, ♦, ♣).
func (s Suit) String() string {
	if s >= numSuits {
		return "?"
	}
	return suitSymbols[s]
}

// ParseSuit maps a wire symbol back to a Suit.
func ParseSuit(sym string) (Suit, bool) {
	for i, v := range suitSymbols {
		if v == sym {
			return Suit(i), true
		}
	}
	return 0, false
}

// Rank identifies a card rank. Only 7 through Ace exist in 28/56 decks.
type Rank uint8

const (
	RankSeven Rank = iota
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	numRanks
)

var rankSymbols = [numRanks]string{"7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if r >= numRanks {
		return "?"
	}
	return rankSymbols[r]
}

// ParseRank maps a wire symbol back to a Rank.
func ParseRank(sym string) (Rank, bool) {
	for i, v := range rankSymbols {
		if v == sym {
			return Rank(i), true
		}
	}
	return 0, false
}

// trickOrder is the fixed 28/56 strength table, low to high:
// 7 < 8 < Q < K < 10 < A < 9 < J. The same table applies to trump and
// non-trump cards; trump matters only for which cards compete.
var trickOrder = [numRanks]uint8{
	RankSeven: 0,
	RankEight: 1,
	RankQueen: 2,
	RankKing:  3,
	RankTen:   4,
	RankAce:   5,
	RankNine:  6,
	RankJack:  7,
}

// Strength returns the rank's position in the 28/56 strength table.
func (r Rank) Strength() uint8 {
	if r >= numRanks {
		return 0
	}
	return trickOrder[r]
}

// cardPoints is the fixed per-rank point table. One 32-card deck totals 28.
var cardPoints = [numRanks]int{
	RankJack: 3,
	RankNine: 2,
	RankAce:  1,
	RankTen:  1,
}

// Card is an immutable playing card. Copy disambiguates the two physical
// decks merged in 56 mode (0 for the first deck, 1 for the second); in 28
// mode it is always 0. Value identity: two Cards are equal iff all three
// fields are equal, so Card works as a map key.
type Card struct {
	Suit Suit
	Rank Rank
	Copy uint8
}

// ID returns the stable wire identifier, e.g. "J♠#1".
func (c Card) ID() string {
	return fmt.Sprintf("%s%s#%d", c.Rank, c.Suit, c.Copy+1)
}

// Points returns the card's capture value.
func (c Card) Points() int {
	if c.Rank >= numRanks {
		return 0
	}
	return cardPoints[c.Rank]
}

func (c Card) String() string { return c.ID() }
