// Package models holds the shared player and wire-message types exchanged
// between the game core and the transport layer.
package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Player is one seat binding for the lifetime of a game. Identity is the
// Token, never the transport connection: a reconnecting client presents the
// token and is bound back to its seat.
type Player struct {
	Seat      int       `json:"seat"`
	Name      string    `json:"name"`
	IsBot     bool      `json:"isBot"`
	Token     uuid.UUID `json:"-"`
	Connected bool      `json:"connected"`
}

// MessageType enumerates the websocket frame types. The inbound set is the
// action surface; the outbound set is the snapshot/result surface.
type MessageType string

const (
	// Client → server.
	TypeIdentify      MessageType = "identify"
	TypeRequestState  MessageType = "request_state"
	TypePlaceBid      MessageType = "place_bid"
	TypeChooseTrump   MessageType = "choose_trump"
	TypeExchangeKitty MessageType = "exchange_kitty"
	TypeRevealTrump   MessageType = "reveal_trump"
	TypePlayCard      MessageType = "play_card"
	TypeStartRound    MessageType = "start_round"
	TypeNextRound     MessageType = "next_round"

	// Server → client.
	TypeStateSnapshot MessageType = "state_snapshot"
	TypeActionOK      MessageType = "action_ok"
	TypeActionFailed  MessageType = "action_failed"
	TypeError         MessageType = "error"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IdentifyPayload binds a connection to a seat via its identity token.
type IdentifyPayload struct {
	Token string `json:"token"`
}

// BidPayload carries a bid submission. Value -1 (or omitted) is a pass.
type BidPayload struct {
	Seat  int  `json:"seat"`
	Value *int `json:"value"`
}

// ChooseTrumpPayload carries the bid winner's private suit choice.
type ChooseTrumpPayload struct {
	Seat int    `json:"seat"`
	Suit string `json:"suit"`
}

// ExchangeKittyPayload returns the named cards to the kitty after the bid
// winner takes it up.
type ExchangeKittyPayload struct {
	Seat    int      `json:"seat"`
	Returns []string `json:"returns"`
}

// RevealTrumpPayload carries an explicit reveal request.
type RevealTrumpPayload struct {
	Seat int `json:"seat"`
}

// PlayCardPayload carries a card play by its stable id.
type PlayCardPayload struct {
	Seat   int    `json:"seat"`
	CardID string `json:"cardId"`
}

// ErrorPayload reports a rejected action: a stable kind plus a human reason.
type ErrorPayload struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Ack confirms a committed action, optionally carrying a public event such
// as a completed-trick or completed-round notice.
type Ack struct {
	Action string         `json:"action"`
	Event  string         `json:"event,omitempty"`
	Detail map[string]any `json:"detail,omitempty"`
}
