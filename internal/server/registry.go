package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/bot"
	"github.com/jerynmathew/thurup-sub001/internal/cache"
	"github.com/jerynmathew/thurup-sub001/internal/database"
	"github.com/jerynmathew/thurup-sub001/internal/game"
	"github.com/jerynmathew/thurup-sub001/internal/models"
)

// GameServer is the registry of live sessions plus the HTTP/websocket
// surface over them. Lookup state sits behind its own lock; each session
// serializes its own actions.
type GameServer struct {
	jwtSecret []byte
	botDelay  time.Duration

	mu     sync.RWMutex
	games  map[uuid.UUID]*GameEntry
	byCode map[string]uuid.UUID

	baseCtx context.Context
	log     *logrus.Entry
}

// GameEntry couples one session with its connections and bot runner.
type GameEntry struct {
	Session *game.Session
	Runner  *bot.Runner

	hub         *hub
	cancel      context.CancelFunc
	actionIndex atomic.Int64
}

// NewGameServer creates an empty registry. ctx bounds the lifetime of all
// bot runners.
func NewGameServer(ctx context.Context, jwtSecret string, botDelay time.Duration) *GameServer {
	return &GameServer{
		jwtSecret: []byte(jwtSecret),
		botDelay:  botDelay,
		games:     make(map[uuid.UUID]*GameEntry),
		byCode:    make(map[string]uuid.UUID),
		baseCtx:   ctx,
		log:       logrus.WithField("component", "server"),
	}
}

// Create registers a new session under a fresh short code and starts its
// bot runner.
func (s *GameServer) Create(cfg game.Config, passcode string) (*GameEntry, error) {
	sess, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	if passcode != "" {
		if err := sess.SetPasscode(passcode); err != nil {
			return nil, err
		}
	}

	entry := &GameEntry{Session: sess, hub: newHub()}
	entry.Runner = bot.NewRunner(sess, s.botDelay, entry.afterAction)
	ctx, cancel := context.WithCancel(s.baseCtx)
	entry.cancel = cancel
	go entry.Runner.Run(ctx)

	s.mu.Lock()
	for attempts := 0; ; attempts++ {
		code := newShortCode()
		if attempts >= 100 {
			code = fallbackShortCode()
		}
		if _, taken := s.byCode[code]; !taken {
			sess.Code = code
			s.byCode[code] = sess.ID
			break
		}
	}
	s.games[sess.ID] = entry
	s.mu.Unlock()

	go database.SaveGame(sess.ID, sess.Code, cfg.Mode, cfg.Seats)
	s.log.WithFields(logrus.Fields{"game_id": sess.ID, "code": sess.Code}).Info("game created")
	return entry, nil
}

// Get looks a session up by id.
func (s *GameServer) Get(id uuid.UUID) (*GameEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.games[id]
	if !ok {
		return nil, &engine.Error{Kind: engine.KindGameNotFound, Reason: "no such game"}
	}
	return entry, nil
}

// GetByCode looks a session up by its join code. The code is normalized
// first so hand-typed variants still resolve.
func (s *GameServer) GetByCode(code string) (*GameEntry, error) {
	s.mu.RLock()
	id, ok := s.byCode[normalizeShortCode(code)]
	s.mu.RUnlock()
	if !ok {
		return nil, &engine.Error{Kind: engine.KindGameNotFound, Reason: "no such game code"}
	}
	return s.Get(id)
}

// Remove terminates a session, stops its runner and drops it from lookup.
func (s *GameServer) Remove(id uuid.UUID) {
	s.mu.Lock()
	entry, ok := s.games[id]
	if ok {
		delete(s.games, id)
		delete(s.byCode, entry.Session.Code)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	entry.cancel()
	entry.Session.Terminate()
	s.log.WithField("game_id", id).Info("game removed")
}

// afterAction runs once per committed action: queue the action record,
// persist finished rounds, push fresh snapshots and wake the bots. Called
// outside the game's exclusive section.
func (e *GameEntry) afterAction(res game.Result) {
	e.publishAction(res)
	if res.Reason == "round_complete" {
		if summary, ok := e.Session.LastRound(); ok {
			go database.SaveRoundSummary(e.Session.ID, summary)
		}
	}
	e.broadcast()
	e.Runner.Kick()
}

// publishAction queues the action record for the history consumer.
func (e *GameEntry) publishAction(res game.Result) {
	seat := -1
	if v, ok := res.Detail["seat"].(int); ok {
		seat = v
	}
	rec := cache.GameActionRecord{
		GameID:        e.Session.ID,
		ActionIndex:   e.actionIndex.Add(1),
		Seat:          seat,
		ActionType:    res.Reason,
		ActionPayload: res.Detail,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			logrus.WithError(err).WithField("game_id", rec.GameID).Error("failed to publish action record")
		}
	}()
}

// broadcast pushes each connected seat its own redacted snapshot.
func (e *GameEntry) broadcast() {
	for seat, conn := range e.hub.connections() {
		msg, err := newMessage(models.TypeStateSnapshot, e.Session.Snapshot(seat))
		if err != nil {
			logrus.WithError(err).Error("failed to encode snapshot")
			return
		}
		sendOrLog(conn, seat, msg)
	}
}
