package engine

// PassBid is the sentinel submitted in place of a numeric bid.
const PassBid = -1

// MinBidDefault is the opening floor used when the session does not
// configure one.
const MinBidDefault = 14

// BidOutcome reports the auction result after a submission.
type BidOutcome struct {
	Finished  bool
	AllPassed bool
	Winner    int // valid only when Finished && !AllPassed
	Value     int // valid only when Finished && !AllPassed
}

// Bidding runs the turn-ordered auction for one round. Each seat acts
// exactly once, in counter-clockwise order starting at the dealer's right:
// it either passes or bids strictly above the current highest (and at least
// the opening floor). Strict increase makes ties impossible and bounds the
// auction at one submission per seat.
type Bidding struct {
	seats    int
	minBid   int
	maxBid   int
	turn     int
	acted    []bool
	bids     []int // PassBid, or the numeric bid; meaningful only where acted
	highest  int
	holder   int
	received int
	finished bool
}

// NewBidding starts an auction for the given table. firstBidder is the seat
// to the dealer's right.
func NewBidding(seats, firstBidder, minBid, maxBid int) *Bidding {
	return &Bidding{
		seats:   seats,
		minBid:  minBid,
		maxBid:  maxBid,
		turn:    firstBidder,
		acted:   make([]bool, seats),
		bids:    make([]int, seats),
		highest: -1,
		holder:  -1,
	}
}

// Turn returns the seat expected to act next. Meaningless once finished.
func (b *Bidding) Turn() int { return b.turn }

// Finished reports whether the auction has terminated.
func (b *Bidding) Finished() bool { return b.finished }

// Highest returns the current highest bid and its holder; (-1, -1) before
// any numeric bid.
func (b *Bidding) Highest() (value, holder int) { return b.highest, b.holder }

// Bids returns a copy of the per-seat record: PassBid for a pass, the bid
// value for a raise. Seats that have not acted map to 0 with Acted false.
func (b *Bidding) Bids() []int { return append([]int(nil), b.bids...) }

// Acted reports whether the seat has already submitted.
func (b *Bidding) Acted(seat int) bool {
	return seat >= 0 && seat < b.seats && b.acted[seat]
}

// Submit records a pass or a raise for seat. The turn pointer advances to
// the next seat that has not acted. Returns the terminal outcome once every
// seat has acted.
func (b *Bidding) Submit(seat, value int) (BidOutcome, error) {
	if b.finished {
		return BidOutcome{}, newError(KindWrongPhase, "bidding already complete")
	}
	if seat != b.turn {
		return BidOutcome{}, newError(KindOutOfTurn, "seat %d bid out of turn (turn is seat %d)", seat, b.turn)
	}

	if value == PassBid {
		b.bids[seat] = PassBid
	} else {
		if value < b.minBid {
			return BidOutcome{}, newError(KindInvalidBidValue, "bid %d below opening floor %d", value, b.minBid)
		}
		if value > b.maxBid {
			return BidOutcome{}, newError(KindInvalidBidValue, "bid %d exceeds maximum %d", value, b.maxBid)
		}
		if b.highest >= 0 && value <= b.highest {
			return BidOutcome{}, newError(KindInvalidBidValue, "bid %d does not beat current highest %d", value, b.highest)
		}
		b.bids[seat] = value
		b.highest = value
		b.holder = seat
	}
	b.acted[seat] = true
	b.received++

	// Advance to the next seat still owing a submission.
	for next := NextSeat(b.turn, b.seats); next != b.turn; next = NextSeat(next, b.seats) {
		if !b.acted[next] {
			b.turn = next
			break
		}
	}

	if b.received == b.seats {
		b.finished = true
		if b.holder < 0 {
			return BidOutcome{Finished: true, AllPassed: true}, nil
		}
		return BidOutcome{Finished: true, Winner: b.holder, Value: b.highest}, nil
	}
	return BidOutcome{}, nil
}

// NextSeat returns the seat to s's right on an n-seat ring. Play proceeds
// counter-clockwise, so the right-hand neighbour acts next.
func NextSeat(s, n int) int {
	return (s + n - 1) % n
}

// TeamOf returns the fixed team index for a seat. Four-seat tables split by
// parity; six-seat tables split into teamCount groups the same way.
func TeamOf(seat, teamCount int) int {
	if teamCount <= 0 {
		teamCount = 2
	}
	return seat % teamCount
}
