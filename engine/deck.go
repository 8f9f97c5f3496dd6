package engine

// Mode selects the 28 (single deck, 32 cards) or 56 (double deck, 64 cards)
// variant profile.
type Mode string

const (
	Mode28 Mode = "28"
	Mode56 Mode = "56"
)

// DeckSize returns the full deck size for the mode.
func (m Mode) DeckSize() int {
	if m == Mode56 {
		return 64
	}
	return 32
}

// MaxBid returns the total capturable points, which caps bids.
func (m Mode) MaxBid() int {
	if m == Mode56 {
		return 56
	}
	return 28
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == Mode28 || m == Mode56 }

// BuildDeck composes the full ordered deck for a mode. 56 mode interleaves
// two physical decks distinguished by Card.Copy. Composition is
// deterministic; only unknown modes fail.
func BuildDeck(mode Mode) ([]Card, error) {
	if !mode.Valid() {
		return nil, newError(KindInvalidMode, "unknown mode %q", mode)
	}
	copies := uint8(1)
	if mode == Mode56 {
		copies = 2
	}
	deck := make([]Card, 0, mode.DeckSize())
	for cp := uint8(0); cp < copies; cp++ {
		for s := Suit(0); s < numSuits; s++ {
			for r := Rank(0); r < numRanks; r++ {
				deck = append(deck, Card{Suit: s, Rank: r, Copy: cp})
			}
		}
	}
	return deck, nil
}

// xorshift64 keeps the engine free of external randomness; callers feed an
// unpredictable seed (the service draws it from crypto/rand).
type xorshift64 uint64

func (x *xorshift64) next() uint64 {
	v := uint64(*x)
	if v == 0 {
		v = 0x9e3779b97f4a7c15
	}
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*x = xorshift64(v)
	return v
}

// ShuffleAndDeal shuffles deck with the given seed and deals equal hands
// round-robin, returning the hands and the undealt kitty. Hand size is
// len(deck)/seats; the remainder forms the kitty (empty for 32 cards at 4
// seats, 4 cards for 64 at 6 seats).
func ShuffleAndDeal(deck []Card, seats int, seed uint64) ([][]Card, []Card, error) {
	if seats <= 0 || len(deck) < seats {
		return nil, nil, newError(KindInvalidMode, "cannot deal %d cards to %d seats", len(deck), seats)
	}
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := xorshift64(seed)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	handSize := len(shuffled) / seats
	hands := make([][]Card, seats)
	for s := range hands {
		hands[s] = make([]Card, 0, handSize)
	}
	for i := 0; i < handSize*seats; i++ {
		hands[i%seats] = append(hands[i%seats], shuffled[i])
	}
	kitty := append([]Card(nil), shuffled[handSize*seats:]...)
	return hands, kitty, nil
}
