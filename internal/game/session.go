// Package game implements the per-game session orchestrator: the phase
// state machine composing the bidding, hidden-trump, trick and scoring
// engines, and the locking discipline that makes one session safe to drive
// from many actors at once.
package game

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/models"
)

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseLobby       Phase = "lobby"
	PhaseBidding     Phase = "bidding"
	PhaseChooseTrump Phase = "choose_trump"
	PhasePlay        Phase = "play"
	PhaseScoring     Phase = "scoring"
	PhaseTerminated  Phase = "terminated"
)

// Config fixes a session's variant profile at creation time.
type Config struct {
	Mode           engine.Mode
	Seats          int
	TeamCount      int
	MinBid         int
	RevealMode     engine.RevealMode
	LastTrickBonus int
	Scoring        engine.ScoringRules
}

// DefaultConfig returns the standard four-seat 28 table.
func DefaultConfig() Config {
	return Config{
		Mode:       engine.Mode28,
		Seats:      4,
		TeamCount:  2,
		MinBid:     engine.MinBidDefault,
		RevealMode: engine.RevealOnRequest,
		Scoring:    engine.DefaultScoringRules(),
	}
}

// Validate normalizes and checks a config.
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.Seats != 4 && c.Seats != 6 {
		return fmt.Errorf("seats must be 4 or 6, got %d", c.Seats)
	}
	if c.TeamCount == 0 {
		c.TeamCount = 2
	}
	if c.TeamCount != 2 && !(c.TeamCount == 3 && c.Seats == 6) {
		return fmt.Errorf("team count %d not valid for %d seats", c.TeamCount, c.Seats)
	}
	if c.MinBid <= 0 {
		c.MinBid = engine.MinBidDefault
	}
	if c.RevealMode == "" {
		c.RevealMode = engine.RevealOnRequest
	}
	if !c.RevealMode.Valid() {
		return fmt.Errorf("invalid reveal mode %q", c.RevealMode)
	}
	c.Scoring.TeamCount = c.TeamCount
	return nil
}

// Result is the committed outcome of one accepted action: the reason tag
// handed to the persistence boundary and an optional public event.
type Result struct {
	Reason string
	Event  string
	Detail map[string]any
}

// Session is the aggregate root for one game. All mutating actions are
// serialized through mu: exactly one logical action applies at a time, and
// managers may assume exclusive access to session fields while running.
type Session struct {
	ID   uuid.UUID
	Code string

	cfg Config

	mu sync.Mutex

	phase  Phase
	seats  []*models.Player
	dealer int
	leader int
	turn   int

	hands   [][]engine.Card
	kitty   []engine.Card
	bidding *engine.Bidding
	trump   *engine.Trump
	tricks  *engine.Tricks

	bidWinner    int
	bidValue     int
	pointsBySeat []int
	rounds       []engine.RoundSummary

	// Identity bindings live behind their own lock so reconnect/identify
	// never contends with the game's exclusive section.
	idMu        sync.RWMutex
	seatByToken map[uuid.UUID]int

	passcodeHash []byte

	seedFn func() uint64

	log *logrus.Entry
}

// New creates a session in LOBBY.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Session{
		ID:          id,
		cfg:         cfg,
		phase:       PhaseLobby,
		seats:       make([]*models.Player, cfg.Seats),
		bidWinner:   -1,
		seatByToken: make(map[uuid.UUID]int),
		seedFn:      cryptoSeed,
		log:         logrus.WithField("game_id", id),
	}, nil
}

func cryptoSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// rand.Read never fails on supported platforms; fall back to a
		// fixed odd constant rather than a predictable clock.
		return 0x9e3779b97f4a7c15
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Config returns the session's fixed profile.
func (s *Session) Config() Config { return s.cfg }

// SetPasscode stores a bcrypt hash of an optional private-table passcode.
// Must be called before the lobby is shared.
func (s *Session) SetPasscode(code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passcode: %w", err)
	}
	s.mu.Lock()
	s.passcodeHash = hash
	s.mu.Unlock()
	return nil
}

// CheckPasscode verifies a join attempt against the stored passcode. A
// session without a passcode accepts any value.
func (s *Session) CheckPasscode(code string) error {
	s.mu.Lock()
	hash := s.passcodeHash
	s.mu.Unlock()
	if len(hash) == 0 {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return &engine.Error{Kind: engine.KindSeatUnavailable, Reason: "passcode mismatch"}
	}
	return nil
}

// Join binds a new player to the first free seat and issues their identity
// token. Only possible in LOBBY.
func (s *Session) Join(name string, isBot bool) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseLobby {
		return nil, &engine.Error{Kind: engine.KindWrongPhase, Reason: "game already started"}
	}
	for seat, p := range s.seats {
		if p != nil {
			continue
		}
		player := &models.Player{
			Seat:      seat,
			Name:      name,
			IsBot:     isBot,
			Token:     uuid.New(),
			Connected: !isBot,
		}
		s.seats[seat] = player
		s.idMu.Lock()
		s.seatByToken[player.Token] = seat
		s.idMu.Unlock()
		s.log.WithFields(logrus.Fields{"seat": seat, "name": name, "bot": isBot}).Info("player joined")
		return player, nil
	}
	return nil, &engine.Error{Kind: engine.KindSeatUnavailable, Reason: "no free seats"}
}

// ResolveToken maps an identity token back to its seat. This is the whole
// of reconnect handling: it reads the side index and never takes the
// game's exclusive section.
func (s *Session) ResolveToken(token uuid.UUID) (int, bool) {
	s.idMu.RLock()
	defer s.idMu.RUnlock()
	seat, ok := s.seatByToken[token]
	return seat, ok
}

// SetConnected flips a seat's transport liveness flag.
func (s *Session) SetConnected(seat int, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seat >= 0 && seat < len(s.seats) && s.seats[seat] != nil {
		s.seats[seat].Connected = connected
	}
}

// IsBot reports whether a seat is automated.
func (s *Session) IsBot(seat int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seat >= 0 && seat < len(s.seats) && s.seats[seat] != nil && s.seats[seat].IsBot
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start fills any empty seats with automated players, deals the first
// round and enters BIDDING.
func (s *Session) Start() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseLobby {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "game already started"}
	}
	for seat, p := range s.seats {
		if p != nil {
			continue
		}
		bot := &models.Player{
			Seat:  seat,
			Name:  fmt.Sprintf("Bot %d", seat),
			IsBot: true,
			Token: uuid.New(),
		}
		s.seats[seat] = bot
		s.idMu.Lock()
		s.seatByToken[bot.Token] = seat
		s.idMu.Unlock()
	}
	if err := s.dealLocked(); err != nil {
		return Result{}, err
	}
	s.log.WithField("dealer", s.dealer).Info("round started")
	return Result{Reason: "game_started", Event: "round_started"}, nil
}

// dealLocked rebuilds and shuffles the deck, deals hands and kitty, and
// resets the round managers. Assumes lock is held by caller.
func (s *Session) dealLocked() error {
	deck, err := engine.BuildDeck(s.cfg.Mode)
	if err != nil {
		return err
	}
	hands, kitty, err := engine.ShuffleAndDeal(deck, s.cfg.Seats, s.seedFn())
	if err != nil {
		return err
	}
	s.hands = hands
	s.kitty = kitty
	s.leader = engine.NextSeat(s.dealer, s.cfg.Seats)
	s.turn = s.leader
	s.bidding = engine.NewBidding(s.cfg.Seats, s.leader, s.cfg.MinBid, s.cfg.Mode.MaxBid())
	s.trump = nil
	s.tricks = engine.NewTricks(s.cfg.Seats)
	s.bidWinner = -1
	s.bidValue = 0
	s.pointsBySeat = make([]int, s.cfg.Seats)
	s.phase = PhaseBidding
	return nil
}

// PlaceBid submits a pass or a raise for seat. On an all-pass terminal the
// round is redealt with the same dealer; on a winner the session enters
// CHOOSE_TRUMP.
func (s *Session) PlaceBid(seat, value int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseBidding {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "not in bidding phase"}
	}
	out, err := s.bidding.Submit(seat, value)
	if err != nil {
		return Result{}, err
	}
	s.turn = s.bidding.Turn()
	if !out.Finished {
		return Result{Reason: "bid_placed"}, nil
	}
	if out.AllPassed {
		if err := s.dealLocked(); err != nil {
			return Result{}, err
		}
		s.log.Info("all passed, redealt")
		return Result{Reason: "all_passed_redeal", Event: "redeal"}, nil
	}
	s.bidWinner = out.Winner
	s.bidValue = out.Value
	s.trump = engine.NewTrump(s.cfg.RevealMode, out.Winner)
	s.phase = PhaseChooseTrump
	s.turn = out.Winner
	s.log.WithFields(logrus.Fields{"winner": out.Winner, "value": out.Value}).Info("bidding complete")
	return Result{
		Reason: "bidding_complete",
		Event:  "bidding_complete",
		Detail: map[string]any{"winner": out.Winner, "value": out.Value},
	}, nil
}

// ExchangeKitty lets the bid winner take the kitty into hand and return the
// same number of cards, before choosing trump. Hand and kitty sizes are
// unchanged afterwards, preserving the deal conservation invariant.
func (s *Session) ExchangeKitty(seat int, returns []string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseChooseTrump {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "kitty exchange only before trump choice"}
	}
	if seat != s.bidWinner {
		return Result{}, &engine.Error{Kind: engine.KindNotBidWinner, Reason: "only the bid winner may use the kitty"}
	}
	if s.trump != nil && s.trump.Chosen() {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "trump already chosen"}
	}
	if len(s.kitty) == 0 {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "no kitty in this deal"}
	}
	if len(returns) != len(s.kitty) {
		return Result{}, &engine.Error{Kind: engine.KindCardNotInHand,
			Reason: fmt.Sprintf("must return exactly %d cards", len(s.kitty))}
	}

	merged := append(append([]engine.Card(nil), s.hands[seat]...), s.kitty...)
	var returned []engine.Card
	for _, id := range returns {
		idx := -1
		for i, c := range merged {
			if c.ID() == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Result{}, &engine.Error{Kind: engine.KindCardNotInHand, Reason: fmt.Sprintf("card %s not held", id)}
		}
		returned = append(returned, merged[idx])
		merged = append(merged[:idx], merged[idx+1:]...)
	}
	s.hands[seat] = merged
	s.kitty = returned
	s.log.WithField("seat", seat).Info("kitty exchanged")
	return Result{Reason: "kitty_exchanged"}, nil
}

// ChooseTrump records the bid winner's private suit and enters PLAY with
// the lead fixed at the dealer's right-hand seat.
func (s *Session) ChooseTrump(seat int, suit engine.Suit) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseChooseTrump {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "not awaiting trump choice"}
	}
	if err := s.trump.Choose(seat, suit); err != nil {
		return Result{}, err
	}
	s.phase = PhasePlay
	s.turn = s.leader
	s.log.WithField("seat", seat).Info("trump chosen")
	return Result{Reason: "trump_chosen", Event: "play_started"}, nil
}

// RequestReveal handles explicit reveal requests during PLAY: voluntary for
// the bid winner, eligibility-checked for everyone else.
func (s *Session) RequestReveal(seat int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlay {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "not in play phase"}
	}
	if seat < 0 || seat >= s.cfg.Seats {
		return Result{}, &engine.Error{Kind: engine.KindSeatUnavailable, Reason: "unknown seat"}
	}
	lead, leadKnown := s.tricks.LeadSuit()
	if err := s.trump.RequestReveal(seat, s.turn, lead, leadKnown, s.hands[seat]); err != nil {
		return Result{}, err
	}
	suit, _ := s.trump.Suit()
	s.log.WithFields(logrus.Fields{"seat": seat, "trump": suit.String()}).Info("trump revealed")
	return Result{
		Reason: "trump_revealed",
		Event:  "trump_revealed",
		Detail: map[string]any{"trump": suit.String(), "by": seat},
	}, nil
}

// PlayCard validates and applies one card play, resolving the trick when
// full and finalizing the round when hands empty out.
func (s *Session) PlayCard(seat int, cardID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlay {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "not in play phase"}
	}
	if seat < 0 || seat >= s.cfg.Seats {
		return Result{}, &engine.Error{Kind: engine.KindSeatUnavailable, Reason: "unknown seat"}
	}

	card, ok := findCard(s.hands[seat], cardID)
	if !ok {
		return Result{}, &engine.Error{Kind: engine.KindCardNotInHand, Reason: fmt.Sprintf("card %s not in hand", cardID)}
	}

	lead, leadKnown := s.tricks.LeadSuit()
	idx, err := s.tricks.Play(seat, s.turn, card, s.hands[seat])
	if err != nil {
		return Result{}, err
	}

	// Automatic reveal triggers consult the hand as it was before the play.
	revealed := s.trump.ObservePlay(seat, card, lead, leadKnown, s.hands[seat])

	s.hands[seat] = append(s.hands[seat][:idx], s.hands[seat][idx+1:]...)
	s.turn = engine.NextSeat(s.turn, s.cfg.Seats)

	res := Result{Reason: "card_played", Detail: map[string]any{"seat": seat, "card": cardID}}
	if revealed {
		suit, _ := s.trump.Suit()
		res.Event = "trump_revealed"
		res.Detail["trump"] = suit.String()
	}

	if !s.tricks.Full() {
		return res, nil
	}

	lastTrick := s.handsEmptyLocked()
	captured, err := s.tricks.Resolve(s.publicTrumpLocked(), lastTrick, s.cfg.LastTrickBonus)
	if err != nil {
		return Result{}, err
	}
	s.pointsBySeat[captured.Winner] += captured.Points
	s.leader = captured.Winner
	s.turn = captured.Winner
	res.Reason = "trick_complete"
	res.Event = "trick_complete"
	res.Detail["winner"] = captured.Winner
	res.Detail["points"] = captured.Points

	if lastTrick {
		summary := s.finalizeRoundLocked()
		res.Reason = "round_complete"
		res.Event = "round_complete"
		res.Detail["teamScores"] = summary.TeamScores
		res.Detail["bidSuccess"] = summary.BidSuccess
	}
	return res, nil
}

// publicTrumpLocked returns the trump suit for trick resolution, nil while
// concealed. Assumes lock is held by caller.
func (s *Session) publicTrumpLocked() *engine.Suit {
	if s.trump == nil || !s.trump.Revealed() {
		return nil
	}
	suit, ok := s.trump.Suit()
	if !ok {
		return nil
	}
	return &suit
}

// handsEmptyLocked reports whether every dealt card is now in the trick
// area, i.e. the trick being resolved is the round's last.
func (s *Session) handsEmptyLocked() bool {
	for _, h := range s.hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

// finalizeRoundLocked runs the scoring engine, archives the immutable
// summary and enters SCORING. Assumes lock is held by caller.
func (s *Session) finalizeRoundLocked() engine.RoundSummary {
	teamPoints, teamScores, success := engine.ScoreRound(s.pointsBySeat, s.bidWinner, s.bidValue, s.cfg.Scoring)
	trumpSuit := ""
	if suit, ok := s.trump.Suit(); ok {
		trumpSuit = suit.String()
	}
	summary := engine.RoundSummary{
		RoundNumber:  len(s.rounds) + 1,
		Dealer:       s.dealer,
		BidWinner:    s.bidWinner,
		BidValue:     s.bidValue,
		Trump:        trumpSuit,
		PointsBySeat: append([]int(nil), s.pointsBySeat...),
		TeamPoints:   teamPoints,
		TeamScores:   teamScores,
		BidSuccess:   success,
		Tricks:       s.tricks.Captured(),
	}
	s.rounds = append(s.rounds, summary)
	s.phase = PhaseScoring
	s.log.WithFields(logrus.Fields{
		"round":      summary.RoundNumber,
		"bidWinner":  summary.BidWinner,
		"bidValue":   summary.BidValue,
		"teamScores": teamScores,
		"success":    success,
	}).Info("round scored")
	return summary
}

// StartNextRound rotates the dealer one seat counter-clockwise and redeals,
// re-entering BIDDING with the first bidder at the new dealer's right.
func (s *Session) StartNextRound() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseScoring {
		return Result{}, &engine.Error{Kind: engine.KindWrongPhase, Reason: "round not finished"}
	}
	s.dealer = engine.NextSeat(s.dealer, s.cfg.Seats)
	if err := s.dealLocked(); err != nil {
		return Result{}, err
	}
	s.log.WithField("dealer", s.dealer).Info("next round started")
	return Result{Reason: "next_round", Event: "round_started", Detail: map[string]any{"dealer": s.dealer}}, nil
}

// Terminate tears the session down. Further actions fail WrongPhase.
func (s *Session) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseTerminated
	s.log.Info("session terminated")
}

// Rounds returns the archived round summaries.
func (s *Session) Rounds() []engine.RoundSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.RoundSummary(nil), s.rounds...)
}

// LastRound returns the most recent summary, if any.
func (s *Session) LastRound() (engine.RoundSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rounds) == 0 {
		return engine.RoundSummary{}, false
	}
	return s.rounds[len(s.rounds)-1], true
}

func findCard(hand []engine.Card, id string) (engine.Card, bool) {
	for _, c := range hand {
		if c.ID() == id {
			return c, true
		}
	}
	return engine.Card{}, false
}
