package engine

import "testing"

// TestBiddingScenario: 4 seats, seat 1 bids 16,
// seats 2, 3, 0 pass in order; bidding terminates with winner seat 1.
func TestBiddingScenario(t *testing.T) {
	// Dealer 2, so first bidder is seat 1 and order is 1, 0, 3, 2.
	b := NewBidding(4, NextSeat(2, 4), MinBidDefault, 28)
	if b.Turn() != 1 {
		t.Fatalf("first bidder = %d, want 1", b.Turn())
	}

	out, err := b.Submit(1, 16)
	if err != nil || out.Finished {
		t.Fatalf("seat 1 bids 16: out=%+v err=%v", out, err)
	}
	for _, seat := range []int{0, 3} {
		out, err = b.Submit(seat, PassBid)
		if err != nil || out.Finished {
			t.Fatalf("seat %d pass: out=%+v err=%v", seat, out, err)
		}
	}
	out, err = b.Submit(2, PassBid)
	if err != nil {
		t.Fatalf("final pass: %v", err)
	}
	if !out.Finished || out.AllPassed || out.Winner != 1 || out.Value != 16 {
		t.Fatalf("outcome = %+v, want winner seat 1 at 16", out)
	}
}

func TestBiddingOutOfTurn(t *testing.T) {
	b := NewBidding(4, 3, MinBidDefault, 28)
	if _, err := b.Submit(0, 16); KindOf(err) != KindOutOfTurn {
		t.Fatalf("err = %v, want OutOfTurn", err)
	}
	if b.Turn() != 3 {
		t.Errorf("turn moved to %d after rejected bid", b.Turn())
	}
}

// TestBiddingStrictIncrease verifies non-pass values must strictly climb
// and respect floor and ceiling.
func TestBiddingStrictIncrease(t *testing.T) {
	b := NewBidding(4, 0, MinBidDefault, 28)
	if _, err := b.Submit(0, 13); KindOf(err) != KindInvalidBidValue {
		t.Fatalf("below floor: err = %v, want InvalidBidValue", err)
	}
	if _, err := b.Submit(0, 29); KindOf(err) != KindInvalidBidValue {
		t.Fatalf("above ceiling: err = %v, want InvalidBidValue", err)
	}
	if _, err := b.Submit(0, 15); err != nil {
		t.Fatalf("opening 15: %v", err)
	}
	if _, err := b.Submit(3, 15); KindOf(err) != KindInvalidBidValue {
		t.Fatalf("equal bid: err = %v, want InvalidBidValue", err)
	}
	if _, err := b.Submit(3, 14); KindOf(err) != KindInvalidBidValue {
		t.Fatalf("lower bid: err = %v, want InvalidBidValue", err)
	}
	if _, err := b.Submit(3, 16); err != nil {
		t.Fatalf("raise to 16: %v", err)
	}
	hi, holder := b.Highest()
	if hi != 16 || holder != 3 {
		t.Errorf("highest = %d by %d, want 16 by 3", hi, holder)
	}
}

// TestBiddingAllPass verifies the no-bid terminal outcome.
func TestBiddingAllPass(t *testing.T) {
	b := NewBidding(4, 0, MinBidDefault, 28)
	seat := 0
	var out BidOutcome
	var err error
	for i := 0; i < 4; i++ {
		out, err = b.Submit(seat, PassBid)
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		seat = NextSeat(seat, 4)
	}
	if !out.Finished || !out.AllPassed {
		t.Fatalf("outcome = %+v, want all-passed terminal", out)
	}
}

// TestBiddingTerminatesWithinN verifies one submission per seat suffices
// for any mix of raises and passes.
func TestBiddingTerminatesWithinN(t *testing.T) {
	for seats := 4; seats <= 6; seats += 2 {
		b := NewBidding(seats, 0, MinBidDefault, 56)
		seat, bid := 0, MinBidDefault
		submissions := 0
		for !b.Finished() {
			var err error
			if seat%2 == 0 {
				_, err = b.Submit(seat, bid)
				bid++
			} else {
				_, err = b.Submit(seat, PassBid)
			}
			if err != nil {
				t.Fatalf("seats=%d submission %d: %v", seats, submissions, err)
			}
			submissions++
			if submissions > seats {
				t.Fatalf("seats=%d: bidding did not terminate within %d submissions", seats, seats)
			}
			seat = NextSeat(seat, seats)
		}
	}
}

func TestBiddingFinishedRejectsMore(t *testing.T) {
	b := NewBidding(4, 0, MinBidDefault, 28)
	for seat, i := 0, 0; i < 4; i++ {
		if _, err := b.Submit(seat, PassBid); err != nil {
			t.Fatalf("pass: %v", err)
		}
		seat = NextSeat(seat, 4)
	}
	if _, err := b.Submit(0, 20); KindOf(err) != KindWrongPhase {
		t.Fatalf("post-terminal bid err = %v, want WrongPhase", err)
	}
}

func TestNextSeatRing(t *testing.T) {
	if NextSeat(0, 4) != 3 || NextSeat(3, 4) != 2 || NextSeat(1, 4) != 0 {
		t.Errorf("NextSeat ring broken: %d %d %d", NextSeat(0, 4), NextSeat(3, 4), NextSeat(1, 4))
	}
	if NextSeat(0, 6) != 5 {
		t.Errorf("NextSeat(0,6) = %d, want 5", NextSeat(0, 6))
	}
}
