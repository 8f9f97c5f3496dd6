package engine

import "testing"

func hand(cards ...Card) []Card { return cards }

func card(r Rank, s Suit) Card { return Card{Suit: s, Rank: r} }

func TestTrumpChooseOnlyOwner(t *testing.T) {
	tr := NewTrump(RevealOnRequest, 1)
	if err := tr.Choose(0, SuitSpades); KindOf(err) != KindNotBidWinner {
		t.Fatalf("non-owner choose err = %v, want NotBidWinner", err)
	}
	if err := tr.Choose(1, SuitSpades); err != nil {
		t.Fatalf("owner choose: %v", err)
	}
	if err := tr.Choose(1, SuitHearts); KindOf(err) != KindWrongPhase {
		t.Fatalf("second choose err = %v, want WrongPhase", err)
	}
}

// TestTrumpVisibility: after seat 1 chooses ♠, the
// suit is visible to seat 1 only until revealed.
func TestTrumpVisibility(t *testing.T) {
	tr := NewTrump(RevealOnRequest, 1)
	if _, ok := tr.Visible(1); ok {
		t.Fatal("suit visible before choice")
	}
	if err := tr.Choose(1, SuitSpades); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if s, ok := tr.Visible(1); !ok || s != SuitSpades {
		t.Errorf("owner view = %v %v, want ♠ visible", s, ok)
	}
	for _, viewer := range []int{0, 2, 3, -1} {
		if _, ok := tr.Visible(viewer); ok {
			t.Errorf("viewer %d sees concealed trump", viewer)
		}
	}
	tr.reveal(1)
	for _, viewer := range []int{0, 1, 2, 3, -1} {
		if s, ok := tr.Visible(viewer); !ok || s != SuitSpades {
			t.Errorf("viewer %d post-reveal view = %v %v", viewer, s, ok)
		}
	}
}

func TestTrumpRequestRevealEligibility(t *testing.T) {
	tr := NewTrump(RevealOnRequest, 1)

	h := hand(card(RankSeven, SuitClubs), card(RankNine, SuitDiamonds))
	if err := tr.RequestReveal(0, 0, SuitHearts, true, h); KindOf(err) != KindNotYetChosen {
		t.Fatalf("pre-choice reveal err = %v, want NotYetChosen", err)
	}
	if err := tr.Choose(1, SuitSpades); err != nil {
		t.Fatalf("choose: %v", err)
	}

	// Off-turn request.
	if err := tr.RequestReveal(0, 2, SuitHearts, true, h); KindOf(err) != KindOutOfTurn {
		t.Fatalf("off-turn err = %v, want OutOfTurn", err)
	}
	// Leading seats cannot reveal.
	if err := tr.RequestReveal(0, 0, 0, false, h); KindOf(err) != KindRevealNotEligible {
		t.Fatalf("leading err = %v, want RevealNotEligible", err)
	}
	// Holding the lead suit blocks the request.
	canFollow := hand(card(RankSeven, SuitHearts))
	if err := tr.RequestReveal(0, 0, SuitHearts, true, canFollow); KindOf(err) != KindRevealNotEligible {
		t.Fatalf("can-follow err = %v, want RevealNotEligible", err)
	}
	// Eligible: on turn, mid-trick, void in the lead suit.
	if err := tr.RequestReveal(0, 0, SuitHearts, true, h); err != nil {
		t.Fatalf("eligible reveal: %v", err)
	}
	if !tr.Revealed() || tr.Revealer() != 0 {
		t.Errorf("revealed=%v revealer=%d, want true by seat 0", tr.Revealed(), tr.Revealer())
	}
	if err := tr.RequestReveal(2, 2, SuitHearts, true, h); KindOf(err) != KindAlreadyRevealed {
		t.Fatalf("double reveal err = %v, want AlreadyRevealed", err)
	}
}

func TestTrumpOwnerVoluntaryReveal(t *testing.T) {
	tr := NewTrump(RevealOnRequest, 2)
	if err := tr.Choose(2, SuitDiamonds); err != nil {
		t.Fatalf("choose: %v", err)
	}
	// The owner may reveal off turn, even when leading.
	if err := tr.RequestReveal(2, 0, 0, false, nil); err != nil {
		t.Fatalf("voluntary reveal: %v", err)
	}
	if !tr.Revealed() {
		t.Fatal("not revealed after owner request")
	}
}

// TestTrumpForcedOwnerReveal covers the automatic trigger: the bid winner
// playing trump while void in the lead suit exposes it in every mode.
func TestTrumpForcedOwnerReveal(t *testing.T) {
	for _, mode := range []RevealMode{RevealOnRequest, RevealOnFirstTrumpPlay, RevealOnBidderNonFollow} {
		tr := NewTrump(mode, 1)
		if err := tr.Choose(1, SuitSpades); err != nil {
			t.Fatalf("mode %s choose: %v", mode, err)
		}
		h := hand(card(RankJack, SuitSpades), card(RankSeven, SuitClubs))
		if !tr.ObservePlay(1, card(RankJack, SuitSpades), SuitHearts, true, h) {
			t.Errorf("mode %s: forced owner trump play did not reveal", mode)
		}
	}
}

func TestTrumpObservePlayModes(t *testing.T) {
	voidInHearts := hand(card(RankSeven, SuitClubs), card(RankNine, SuitSpades))

	// on_request: a non-owner slough never reveals.
	tr := NewTrump(RevealOnRequest, 1)
	_ = tr.Choose(1, SuitSpades)
	if tr.ObservePlay(0, card(RankSeven, SuitClubs), SuitHearts, true, voidInHearts) {
		t.Error("on_request revealed on non-owner slough")
	}

	// on_first_nonfollow: any void seat playing off-suit reveals.
	tr = NewTrump(RevealOnFirstNonFollow, 1)
	_ = tr.Choose(1, SuitSpades)
	if !tr.ObservePlay(0, card(RankSeven, SuitClubs), SuitHearts, true, voidInHearts) {
		t.Error("on_first_nonfollow did not reveal on void slough")
	}

	// on_first_trump_play: any trump card reveals.
	tr = NewTrump(RevealOnFirstTrumpPlay, 1)
	_ = tr.Choose(1, SuitSpades)
	if !tr.ObservePlay(3, card(RankNine, SuitSpades), SuitHearts, true, voidInHearts) {
		t.Error("on_first_trump_play did not reveal on trump card")
	}

	// open_immediately: revealed at choice time.
	tr = NewTrump(RevealImmediately, 1)
	_ = tr.Choose(1, SuitSpades)
	if !tr.Revealed() {
		t.Error("open_immediately not revealed after choice")
	}
}
