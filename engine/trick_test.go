package engine

import "testing"

func TestTrickPlayValidation(t *testing.T) {
	tr := NewTricks(4)
	h0 := hand(card(RankJack, SuitHearts), card(RankSeven, SuitClubs))

	// Out of turn: trick and hands unchanged.
	if _, err := tr.Play(2, 0, card(RankJack, SuitHearts), h0); KindOf(err) != KindOutOfTurn {
		t.Fatalf("out-of-turn err = %v, want OutOfTurn", err)
	}
	if len(tr.Current()) != 0 {
		t.Fatal("trick mutated by rejected play")
	}

	// Card not held.
	if _, err := tr.Play(0, 0, card(RankAce, SuitSpades), h0); KindOf(err) != KindCardNotInHand {
		t.Fatalf("missing card err = %v, want CardNotInHand", err)
	}

	// Lead.
	idx, err := tr.Play(0, 0, card(RankJack, SuitHearts), h0)
	if err != nil || idx != 0 {
		t.Fatalf("lead play idx=%d err=%v", idx, err)
	}

	// Must follow suit when holding the lead suit.
	h1 := hand(card(RankNine, SuitHearts), card(RankAce, SuitClubs))
	if _, err := tr.Play(1, 1, card(RankAce, SuitClubs), h1); KindOf(err) != KindMustFollowSuit {
		t.Fatalf("nonfollow err = %v, want MustFollowSuit", err)
	}

	// Void in the lead suit: any card is legal while trump is concealed.
	h1void := hand(card(RankAce, SuitClubs), card(RankTen, SuitDiamonds))
	if _, err := tr.Play(1, 1, card(RankAce, SuitClubs), h1void); err != nil {
		t.Fatalf("void slough rejected: %v", err)
	}
}

// TestTrickResolveLeadSuit: no trump in play, highest lead-suit card by the
// fixed table (9 beats A beats K).
func TestTrickResolveLeadSuit(t *testing.T) {
	tr := NewTricks(4)
	plays := []struct {
		seat int
		c    Card
	}{
		{0, card(RankKing, SuitHearts)},
		{1, card(RankNine, SuitHearts)},
		{2, card(RankAce, SuitHearts)},
		{3, card(RankSeven, SuitClubs)}, // slough
	}
	for i, p := range plays {
		h := hand(p.c)
		if _, err := tr.Play(p.seat, p.seat, p.c, h); err != nil {
			t.Fatalf("play %d: %v", i, err)
		}
	}
	got, err := tr.Resolve(nil, false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Winner != 1 {
		t.Errorf("winner = %d, want seat 1 (9♥)", got.Winner)
	}
	// K=0, 9=2, A=1, 7=0 → 3 points.
	if got.Points != 3 {
		t.Errorf("points = %d, want 3", got.Points)
	}
	if len(tr.Current()) != 0 {
		t.Error("current trick not cleared after resolution")
	}
	if tr.CapturedCardCount() != 4 {
		t.Errorf("captured cards = %d, want 4", tr.CapturedCardCount())
	}
}

// TestTrickResolveTrump: with trump public, the lone trump beats the lead
// suit honors.
func TestTrickResolveTrump(t *testing.T) {
	tr := NewTricks(4)
	plays := []Card{
		card(RankJack, SuitHearts),
		card(RankNine, SuitHearts),
		card(RankSeven, SuitSpades), // trump
		card(RankAce, SuitHearts),
	}
	for seat, c := range plays {
		if _, err := tr.Play(seat, seat, c, hand(c)); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
	}
	trump := SuitSpades
	got, err := tr.Resolve(&trump, false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Winner != 2 {
		t.Errorf("winner = %d, want seat 2 (7♠ trump)", got.Winner)
	}
}

// TestTrickResolveConcealedTrump: while concealed, trump cards carry no
// special power and the lead suit decides.
func TestTrickResolveConcealedTrump(t *testing.T) {
	tr := NewTricks(4)
	plays := []Card{
		card(RankTen, SuitHearts),
		card(RankSeven, SuitSpades), // secretly trump, but concealed
		card(RankSeven, SuitHearts),
		card(RankEight, SuitHearts),
	}
	for seat, c := range plays {
		if _, err := tr.Play(seat, seat, c, hand(c)); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
	}
	got, err := tr.Resolve(nil, false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Winner != 0 {
		t.Errorf("winner = %d, want seat 0 (10♥)", got.Winner)
	}
}

// TestTrickDuplicateTie: in 56 mode identical cards tie; the earlier play
// wins.
func TestTrickDuplicateTie(t *testing.T) {
	tr := NewTricks(4)
	plays := []Card{
		{Suit: SuitHearts, Rank: RankJack, Copy: 0},
		{Suit: SuitHearts, Rank: RankJack, Copy: 1},
		{Suit: SuitHearts, Rank: RankSeven, Copy: 0},
		{Suit: SuitHearts, Rank: RankEight, Copy: 0},
	}
	for seat, c := range plays {
		if _, err := tr.Play(seat, seat, c, hand(c)); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
	}
	got, err := tr.Resolve(nil, false, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Winner != 0 {
		t.Errorf("winner = %d, want seat 0 (first J♥)", got.Winner)
	}
}

func TestTrickLastTrickBonus(t *testing.T) {
	tr := NewTricks(4)
	for seat, c := range []Card{
		card(RankSeven, SuitHearts),
		card(RankEight, SuitHearts),
		card(RankQueen, SuitHearts),
		card(RankKing, SuitHearts),
	} {
		if _, err := tr.Play(seat, seat, c, hand(c)); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
	}
	got, err := tr.Resolve(nil, true, 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Points != 1 {
		t.Errorf("points = %d, want 1 (all zero-point cards + bonus)", got.Points)
	}
	if got.Winner != 3 {
		t.Errorf("winner = %d, want seat 3 (K♥)", got.Winner)
	}
}

func TestTrickResolveIncomplete(t *testing.T) {
	tr := NewTricks(4)
	c := card(RankSeven, SuitHearts)
	if _, err := tr.Play(0, 0, c, hand(c)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := tr.Resolve(nil, false, 0); KindOf(err) != KindWrongPhase {
		t.Fatalf("incomplete resolve err = %v, want WrongPhase", err)
	}
}
