package bot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/internal/game"
)

// Runner drives every bot seat of one session. The server kicks it after
// each committed action; it then keeps acting for as long as it is a bot's
// move, with a short pause between plays so humans can follow along.
type Runner struct {
	session  *game.Session
	dec      *Decider
	delay    time.Duration
	kick     chan struct{}
	onAction func(game.Result)
	log      *logrus.Entry
}

// NewRunner binds a runner to a session. onAction is invoked after every
// committed bot action so the caller can broadcast fresh snapshots; it may
// be nil.
func NewRunner(s *game.Session, delay time.Duration, onAction func(game.Result)) *Runner {
	return &Runner{
		session:  s,
		dec:      NewDecider(time.Now().UnixNano()),
		delay:    delay,
		kick:     make(chan struct{}, 1),
		onAction: onAction,
		log:      logrus.WithField("game_id", s.ID),
	}
}

// Kick signals the runner that the game state changed. Safe to call from
// any goroutine; a pending kick is collapsed into one.
func (r *Runner) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run loops until the context is cancelled, taking every bot move that is
// available after each kick.
func (r *Runner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.kick:
		}
		for r.step() {
			if !sleep(ctx, r.delay) {
				return
			}
		}
	}
}

// sleep waits out d, returning false when the context fires first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// step takes one bot action if one is due, reporting whether it acted.
func (r *Runner) step() bool {
	snap := r.session.Snapshot(-1)
	switch snap.Phase {
	case game.PhaseBidding:
		return r.bid(snap.Turn)
	case game.PhaseChooseTrump:
		return r.chooseTrump(snap.BidWinner)
	case game.PhasePlay:
		return r.play(snap.Turn)
	}
	return false
}

func (r *Runner) bid(seat int) bool {
	if !r.session.IsBot(seat) {
		return false
	}
	cfg := r.session.Config()
	view := r.session.Snapshot(seat)
	value := r.dec.Bid(view, cfg.MinBid, cfg.Mode.MaxBid())
	res, err := r.session.PlaceBid(seat, value)
	if err != nil {
		r.log.WithError(err).WithField("seat", seat).Warn("bot bid rejected")
		return false
	}
	r.committed(res)
	return true
}

func (r *Runner) chooseTrump(seat int) bool {
	if seat < 0 || !r.session.IsBot(seat) {
		return false
	}
	view := r.session.Snapshot(seat)
	if len(view.Kitty) > 0 {
		returns := r.dec.KittyReturns(view.Hand, view.Kitty)
		res, err := r.session.ExchangeKitty(seat, returns)
		if err != nil {
			r.log.WithError(err).WithField("seat", seat).Warn("bot kitty exchange rejected")
		} else {
			r.committed(res)
			view = r.session.Snapshot(seat)
		}
	}
	res, err := r.session.ChooseTrump(seat, r.dec.Trump(view.Hand))
	if err != nil {
		r.log.WithError(err).WithField("seat", seat).Warn("bot trump choice rejected")
		return false
	}
	r.committed(res)
	return true
}

func (r *Runner) play(seat int) bool {
	if !r.session.IsBot(seat) {
		return false
	}
	view := r.session.Snapshot(seat)
	cardID := r.dec.Card(view)
	if cardID == "" {
		return false
	}
	res, err := r.session.PlayCard(seat, cardID)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{"seat": seat, "card": cardID}).Warn("bot play rejected")
		return false
	}
	r.committed(res)
	return true
}

func (r *Runner) committed(res game.Result) {
	if r.onAction != nil {
		r.onAction(res)
	}
}
