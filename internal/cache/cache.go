// Package cache publishes game action records to a Redis queue for the
// history consumer. The queue is best-effort: a missing or failing Redis
// never blocks game play.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the shared Redis client, nil when Redis is not configured.
var Rdb *redis.Client

const actionQueue = "thurup:game_actions"

// GameActionRecord is one committed action in queue order.
type GameActionRecord struct {
	GameID        uuid.UUID      `json:"gameId"`
	ActionIndex   int64          `json:"actionIndex"`
	Seat          int            `json:"seat"` // -1 for game-driven events
	ActionType    string         `json:"actionType"`
	ActionPayload map[string]any `json:"actionPayload,omitempty"`
	Timestamp     int64          `json:"timestamp"`
}

// InitRedis connects the package client. url is a redis:// URL.
func InitRedis(ctx context.Context, url string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	Rdb = client
	return nil
}

// PublishGameAction pushes one record onto the action queue.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := Rdb.RPush(ctx, actionQueue, data).Err(); err != nil {
		return fmt.Errorf("rpush action record: %w", err)
	}
	return nil
}

// Close releases the client.
func Close() {
	if Rdb != nil {
		_ = Rdb.Close()
		Rdb = nil
	}
}
