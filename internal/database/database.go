// Package database persists finished rounds to Postgres. Writes happen
// off the game's hot path; a missing or failing database never blocks
// play.
package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/engine"
)

// DB is the shared connection pool, nil when Postgres is not configured.
var DB *pgxpool.Pool

const schema = `
CREATE TABLE IF NOT EXISTS game_rounds (
    game_id      UUID        NOT NULL,
    round_number INT         NOT NULL,
    bid_winner   INT         NOT NULL,
    bid_value    INT         NOT NULL,
    trump        TEXT        NOT NULL,
    bid_success  BOOLEAN     NOT NULL,
    summary      JSONB       NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (game_id, round_number)
);
CREATE TABLE IF NOT EXISTS games (
    id         UUID        PRIMARY KEY,
    code       TEXT        NOT NULL,
    mode       TEXT        NOT NULL,
    seats      INT         NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Connect opens the pool and applies the schema.
func Connect(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return err
	}
	DB = pool
	return nil
}

// SaveGame records a created game. Safe to call from a goroutine.
func SaveGame(gameID uuid.UUID, code string, mode engine.Mode, seats int) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := DB.Exec(ctx,
		`INSERT INTO games (id, code, mode, seats) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
		gameID, code, string(mode), seats)
	if err != nil {
		logrus.WithError(err).WithField("game_id", gameID).Error("failed to save game")
	}
}

// SaveRoundSummary upserts one finished round. Safe to call from a
// goroutine.
func SaveRoundSummary(gameID uuid.UUID, summary engine.RoundSummary) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	blob, err := json.Marshal(summary)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal round summary")
		return
	}
	_, err = DB.Exec(ctx, `
INSERT INTO game_rounds (game_id, round_number, bid_winner, bid_value, trump, bid_success, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (game_id, round_number) DO UPDATE SET summary = EXCLUDED.summary`,
		gameID, summary.RoundNumber, summary.BidWinner, summary.BidValue,
		summary.Trump, summary.BidSuccess, blob)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"game_id": gameID,
			"round":   summary.RoundNumber,
		}).Error("failed to save round summary")
	}
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}
