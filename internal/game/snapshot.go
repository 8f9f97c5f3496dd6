package game

import (
	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/models"
)

// CardView is a card as exposed on the wire.
type CardView struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// PlayView is one entry of the current trick.
type PlayView struct {
	Seat int      `json:"seat"`
	Card CardView `json:"card"`
}

// TrickView is a resolved trick.
type TrickView struct {
	Winner int        `json:"winner"`
	Points int        `json:"points"`
	Plays  []PlayView `json:"plays"`
}

// Snapshot is the full public state plus exactly what the requesting seat
// is entitled to see: its own hand, and the trump suit or kitty only when
// it is the bid winner (or after reveal). Viewer -1 is an unprivileged
// observer.
type Snapshot struct {
	GameID  string          `json:"gameId"`
	Code    string          `json:"code,omitempty"`
	Mode    engine.Mode     `json:"mode"`
	Seats   int             `json:"seats"`
	Phase   Phase           `json:"phase"`
	Viewer  int             `json:"viewer"`
	Dealer  int             `json:"dealer"`
	Leader  int             `json:"leader"`
	Turn    int             `json:"turn"`
	Players []models.Player `json:"players"`

	Bids       []int  `json:"bids"`       // engine.PassBid for a pass; 0 where not yet acted
	BidsActed  []bool `json:"bidsActed"`
	HighestBid int    `json:"highestBid"` // -1 before any numeric bid
	BidHolder  int    `json:"bidHolder"`  // -1 before any numeric bid
	BidWinner  int    `json:"bidWinner"`  // -1 until bidding completes
	BidValue   int    `json:"bidValue"`

	TrumpChosen   bool   `json:"trumpChosen"`
	TrumpRevealed bool   `json:"trumpRevealed"`
	Trump         string `json:"trump,omitempty"` // set only when entitled

	Hand      []CardView `json:"hand,omitempty"`
	HandSizes []int      `json:"handSizes"`
	KittySize int        `json:"kittySize"`
	Kitty     []CardView `json:"kitty,omitempty"` // bid winner only

	CurrentTrick []PlayView `json:"currentTrick,omitempty"`
	LeadSuit     string     `json:"leadSuit,omitempty"`
	LastTrick    *TrickView `json:"lastTrick,omitempty"`

	PointsBySeat []int                 `json:"pointsBySeat"`
	Rounds       []engine.RoundSummary `json:"rounds,omitempty"`
}

func viewOf(c engine.Card) CardView {
	return CardView{ID: c.ID(), Suit: c.Suit.String(), Rank: c.Rank.String()}
}

func viewsOf(cards []engine.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = viewOf(c)
	}
	return out
}

func playViews(plays []engine.TrickPlay) []PlayView {
	out := make([]PlayView, len(plays))
	for i, p := range plays {
		out[i] = PlayView{Seat: p.Seat, Card: viewOf(p.Card)}
	}
	return out
}

// Snapshot builds the redacted state for one viewer. It takes the game's
// section briefly; callers broadcast after their mutating action has
// committed and released the section.
func (s *Session) Snapshot(viewer int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		GameID:       s.ID.String(),
		Code:         s.Code,
		Mode:         s.cfg.Mode,
		Seats:        s.cfg.Seats,
		Phase:        s.phase,
		Viewer:       viewer,
		Dealer:       s.dealer,
		Leader:       s.leader,
		Turn:         s.turn,
		HighestBid:   -1,
		BidHolder:    -1,
		BidWinner:    s.bidWinner,
		BidValue:     s.bidValue,
		KittySize:    len(s.kitty),
		PointsBySeat: append([]int(nil), s.pointsBySeat...),
		Rounds:       append([]engine.RoundSummary(nil), s.rounds...),
	}

	snap.Players = make([]models.Player, 0, s.cfg.Seats)
	for _, p := range s.seats {
		if p != nil {
			snap.Players = append(snap.Players, *p)
		}
	}

	snap.HandSizes = make([]int, s.cfg.Seats)
	for seat, h := range s.hands {
		snap.HandSizes[seat] = len(h)
	}
	if viewer >= 0 && viewer < len(s.hands) {
		snap.Hand = viewsOf(s.hands[viewer])
	}

	if s.bidding != nil {
		snap.Bids = s.bidding.Bids()
		snap.BidsActed = make([]bool, s.cfg.Seats)
		for seat := range snap.BidsActed {
			snap.BidsActed[seat] = s.bidding.Acted(seat)
		}
		snap.HighestBid, snap.BidHolder = s.bidding.Highest()
	}

	if s.trump != nil {
		snap.TrumpChosen = s.trump.Chosen()
		snap.TrumpRevealed = s.trump.Revealed()
		if suit, ok := s.trump.Visible(viewer); ok {
			snap.Trump = suit.String()
		}
	}

	// The kitty is the bid winner's privilege.
	if viewer >= 0 && viewer == s.bidWinner {
		snap.Kitty = viewsOf(s.kitty)
	}

	if s.tricks != nil {
		snap.CurrentTrick = playViews(s.tricks.Current())
		if lead, ok := s.tricks.LeadSuit(); ok {
			snap.LeadSuit = lead.String()
		}
		if captured := s.tricks.Captured(); len(captured) > 0 {
			last := captured[len(captured)-1]
			snap.LastTrick = &TrickView{Winner: last.Winner, Points: last.Points, Plays: playViews(last.Plays)}
		}
	}
	return snap
}
