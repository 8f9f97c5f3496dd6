package engine

// RevealMode selects when a concealed trump becomes public beyond the
// always-available explicit triggers (an eligible seat requesting it, the
// bid winner volunteering it, the bid winner being forced onto trump).
type RevealMode string

const (
	// RevealOnRequest relies on the explicit triggers only. Default.
	RevealOnRequest RevealMode = "on_request"
	// RevealOnFirstNonFollow also reveals the first time any seat plays
	// off-suit because it cannot follow the lead.
	RevealOnFirstNonFollow RevealMode = "on_first_nonfollow"
	// RevealOnFirstTrumpPlay also reveals the first time a trump-suit card
	// hits the table.
	RevealOnFirstTrumpPlay RevealMode = "on_first_trump_play"
	// RevealOnBidderNonFollow also reveals when the bid winner plays
	// off-suit because it cannot follow the lead, whatever it plays.
	RevealOnBidderNonFollow RevealMode = "on_bidder_nonfollow"
	// RevealImmediately makes the choice public as soon as it is made.
	RevealImmediately RevealMode = "open_immediately"
)

// Valid reports whether m is a known reveal mode.
func (m RevealMode) Valid() bool {
	switch m {
	case RevealOnRequest, RevealOnFirstNonFollow, RevealOnFirstTrumpPlay,
		RevealOnBidderNonFollow, RevealImmediately:
		return true
	}
	return false
}

// Trump is the two-state concealment machine for one round:
// CONCEALED → REVEALED, terminal for the round. Until revealed, the suit is
// known only to the owning seat; snapshot code must consult Visible.
type Trump struct {
	mode     RevealMode
	suit     Suit
	chosen   bool
	revealed bool
	owner    int // bid winner; -1 until Choose
	revealer int // seat whose action caused the reveal; -1 until revealed
}

// NewTrump creates the concealment machine for a round. The owner is fixed
// at bid completion.
func NewTrump(mode RevealMode, owner int) *Trump {
	return &Trump{mode: mode, owner: owner, revealer: -1}
}

// Owner returns the bid-winning seat entitled to choose and see the suit.
func (t *Trump) Owner() int { return t.owner }

// Chosen reports whether the owner has picked a suit yet.
func (t *Trump) Chosen() bool { return t.chosen }

// Revealed reports whether the suit is public.
func (t *Trump) Revealed() bool { return t.revealed }

// Revealer returns the seat that triggered the reveal, or -1.
func (t *Trump) Revealer() int { return t.revealer }

// Suit returns the chosen suit regardless of concealment. Callers shaping
// per-seat output must use Visible instead.
func (t *Trump) Suit() (Suit, bool) { return t.suit, t.chosen }

// Visible returns the suit only if the viewer is entitled to it: the owner
// always, everyone else after reveal. viewer < 0 means an unprivileged
// observer.
func (t *Trump) Visible(viewer int) (Suit, bool) {
	if !t.chosen {
		return 0, false
	}
	if t.revealed || viewer == t.owner {
		return t.suit, true
	}
	return 0, false
}

// Choose records the owner's private suit selection. Only the owner may
// choose, and only once per round.
func (t *Trump) Choose(seat int, suit Suit) error {
	if seat != t.owner {
		return newError(KindNotBidWinner, "seat %d is not the bid winner (seat %d)", seat, t.owner)
	}
	if t.chosen {
		return newError(KindWrongPhase, "trump already chosen")
	}
	if suit >= numSuits {
		return newError(KindBadRequest, "unknown suit")
	}
	t.suit = suit
	t.chosen = true
	if t.mode == RevealImmediately {
		t.revealed = true
		t.revealer = seat
	}
	return nil
}

// RequestReveal handles an explicit reveal request during PLAY.
//
// The owner may always reveal voluntarily. Any other seat is eligible only
// on its own turn, mid-trick, while holding no card of the lead suit.
// leadSuit carries the current trick's lead (ok=false when the seat would
// be leading).
func (t *Trump) RequestReveal(seat int, turn int, leadSuit Suit, leadKnown bool, hand []Card) error {
	if !t.chosen {
		return newError(KindNotYetChosen, "trump has not been chosen yet")
	}
	if t.revealed {
		return newError(KindAlreadyRevealed, "trump is already revealed")
	}
	if seat == t.owner {
		t.reveal(seat)
		return nil
	}
	if seat != turn {
		return newError(KindOutOfTurn, "seat %d cannot request reveal off turn", seat)
	}
	if !leadKnown {
		return newError(KindRevealNotEligible, "cannot reveal when leading a trick")
	}
	if handHasSuit(hand, leadSuit) {
		return newError(KindRevealNotEligible, "seat %d can follow the lead suit", seat)
	}
	t.reveal(seat)
	return nil
}

// ObservePlay applies the automatic reveal triggers for a card about to be
// played. hand is the player's hand before the card is removed; leadKnown is
// false when the card leads the trick. Returns true if this play revealed
// the trump.
func (t *Trump) ObservePlay(seat int, card Card, leadSuit Suit, leadKnown bool, hand []Card) bool {
	if !t.chosen || t.revealed {
		return false
	}
	cannotFollow := leadKnown && !handHasSuit(hand, leadSuit)

	// The bid winner forced onto trump always exposes it.
	if seat == t.owner && cannotFollow && card.Suit == t.suit {
		t.reveal(seat)
		return true
	}

	switch t.mode {
	case RevealOnFirstNonFollow:
		if cannotFollow && card.Suit != leadSuit {
			t.reveal(seat)
			return true
		}
	case RevealOnFirstTrumpPlay:
		if card.Suit == t.suit {
			t.reveal(seat)
			return true
		}
	case RevealOnBidderNonFollow:
		if seat == t.owner && cannotFollow && card.Suit != leadSuit {
			t.reveal(seat)
			return true
		}
	}
	return false
}

func (t *Trump) reveal(seat int) {
	t.revealed = true
	t.revealer = seat
}

func handHasSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}
