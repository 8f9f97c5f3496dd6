package engine

// TrickPlay is one (seat, card) entry in play order.
type TrickPlay struct {
	Seat int
	Card Card
}

// CapturedTrick is a resolved trick with its winner and capture value.
type CapturedTrick struct {
	Winner int
	Points int
	Plays  []TrickPlay
}

// Tricks manages the in-progress trick and the round's captures. Hand
// ownership stays with the session; Play receives the acting seat's hand
// for validation and reports the index of the card to remove.
type Tricks struct {
	seats    int
	current  []TrickPlay
	captured []CapturedTrick
}

// NewTricks creates trick state for a table of the given size.
func NewTricks(seats int) *Tricks {
	return &Tricks{seats: seats, current: make([]TrickPlay, 0, seats)}
}

// Current returns the in-progress trick in play order.
func (t *Tricks) Current() []TrickPlay { return append([]TrickPlay(nil), t.current...) }

// Captured returns the resolved tricks so far this round.
func (t *Tricks) Captured() []CapturedTrick { return t.captured }

// CapturedCardCount returns the number of cards locked into resolved tricks.
func (t *Tricks) CapturedCardCount() int {
	n := 0
	for _, ct := range t.captured {
		n += len(ct.Plays)
	}
	return n
}

// LeadSuit returns the suit of the trick's first card; ok is false when no
// trick is in progress.
func (t *Tricks) LeadSuit() (Suit, bool) {
	if len(t.current) == 0 {
		return 0, false
	}
	return t.current[0].Card.Suit, true
}

// Full reports whether every active seat has played into the current trick.
func (t *Tricks) Full() bool { return len(t.current) >= t.seats }

// Play validates and applies one card play. turn is the session's current
// turn pointer; hand is the acting seat's hand before the play. On success
// the card is appended to the trick and the hand index to remove is
// returned. While trump is concealed a seat lacking the lead suit may play
// anything, so follow-suit is the only suit constraint enforced here.
func (t *Tricks) Play(seat, turn int, card Card, hand []Card) (int, error) {
	if seat != turn {
		return 0, newError(KindOutOfTurn, "seat %d played out of turn (turn is seat %d)", seat, turn)
	}
	if t.Full() {
		return 0, newError(KindWrongPhase, "trick already full")
	}
	idx := -1
	for i, c := range hand {
		if c == card {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, newError(KindCardNotInHand, "seat %d does not hold %s", seat, card)
	}
	if lead, ok := t.LeadSuit(); ok && card.Suit != lead && handHasSuit(hand, lead) {
		return 0, newError(KindMustFollowSuit, "seat %d must follow %s", seat, lead)
	}
	t.current = append(t.current, TrickPlay{Seat: seat, Card: card})
	return idx, nil
}

// Resolve settles a full trick: the winner is the holder of the strongest
// trump if any trump was played and trump is public, otherwise the holder
// of the strongest lead-suit card. Strength comes from the fixed 28/56
// table; equal duplicates in 56 mode go to the earlier play. lastTrickBonus
// is added to the capture when this is the round's final trick.
func (t *Tricks) Resolve(trump *Suit, lastTrick bool, lastTrickBonus int) (CapturedTrick, error) {
	if !t.Full() {
		return CapturedTrick{}, newError(KindWrongPhase, "trick is not complete (%d of %d cards)", len(t.current), t.seats)
	}

	lead := t.current[0].Card.Suit
	var candidates []TrickPlay
	if trump != nil {
		for _, p := range t.current {
			if p.Card.Suit == *trump {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		for _, p := range t.current {
			if p.Card.Suit == lead {
				candidates = append(candidates, p)
			}
		}
	}

	best := candidates[0]
	for _, p := range candidates[1:] {
		if p.Card.Rank.Strength() > best.Card.Rank.Strength() {
			best = p
		}
	}

	points := 0
	for _, p := range t.current {
		points += p.Card.Points()
	}
	if lastTrick {
		points += lastTrickBonus
	}

	captured := CapturedTrick{
		Winner: best.Seat,
		Points: points,
		Plays:  append([]TrickPlay(nil), t.current...),
	}
	t.captured = append(t.captured, captured)
	t.current = t.current[:0]
	return captured, nil
}
