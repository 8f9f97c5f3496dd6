package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/auth"
	"github.com/jerynmathew/thurup-sub001/internal/game"
	"github.com/jerynmathew/thurup-sub001/internal/models"
)

const identifyTimeout = 10 * time.Second

func newMessage(t models.MessageType, payload any) (models.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return models.Message{}, err
	}
	return models.Message{Type: t, Payload: raw}, nil
}

// handleWS upgrades the connection, binds it to a seat via the identify
// handshake, then relays actions until the client goes away.
func (s *GameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}
	entry, err := s.Get(id)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin policy is the proxy's job
	})
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}

	seat, err := s.identify(r.Context(), entry, conn)
	if err != nil {
		s.log.WithError(err).Debug("identify failed")
		conn.Close(websocket.StatusPolicyViolation, "identify failed")
		return
	}
	log := s.log.WithFields(logrus.Fields{"game_id": id, "seat": seat})

	if old := entry.hub.attach(seat, conn); old != nil {
		old.Close(websocket.StatusPolicyViolation, "seat taken over by a newer connection")
	}
	entry.Session.SetConnected(seat, true)
	log.Info("seat connected")

	// The fresh connection gets its view immediately.
	if msg, err := newMessage(models.TypeStateSnapshot, entry.Session.Snapshot(seat)); err == nil {
		sendOrLog(conn, seat, msg)
	}

	defer func() {
		if entry.hub.detach(seat, conn) {
			entry.Session.SetConnected(seat, false)
			log.Info("seat disconnected")
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var msg models.Message
		if err := wsjson.Read(r.Context(), conn, &msg); err != nil {
			return
		}
		s.dispatch(entry, seat, conn, msg)
	}
}

// identify reads the first frame and resolves it to a seat. The token is
// either the raw identity uuid handed out at join, or a signed seat token.
func (s *GameServer) identify(ctx context.Context, entry *GameEntry, conn *websocket.Conn) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, identifyTimeout)
	defer cancel()

	var msg models.Message
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		return 0, err
	}
	if msg.Type != models.TypeIdentify {
		return 0, errors.New("first frame must be identify")
	}
	var payload models.IdentifyPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return 0, err
	}

	token, err := uuid.Parse(payload.Token)
	if err != nil {
		claims, jwtErr := auth.ParseSeatToken(s.jwtSecret, payload.Token)
		if jwtErr != nil {
			return 0, jwtErr
		}
		if claims.GameID != entry.Session.ID.String() {
			return 0, errors.New("seat token is for a different game")
		}
		token, err = uuid.Parse(claims.PlayerToken)
		if err != nil {
			return 0, err
		}
	}

	seat, ok := entry.Session.ResolveToken(token)
	if !ok {
		return 0, errors.New("unknown identity token")
	}
	return seat, nil
}

// dispatch applies one inbound action for the bound seat and answers with
// action_ok or action_failed. Committed actions fan out through
// afterAction.
func (s *GameServer) dispatch(entry *GameEntry, seat int, conn *websocket.Conn, msg models.Message) {
	sess := entry.Session

	fail := func(err error) {
		kind := string(engine.KindOf(err))
		if kind == "" {
			kind = "internal"
		}
		out, mErr := newMessage(models.TypeActionFailed, models.ErrorPayload{Kind: kind, Reason: err.Error()})
		if mErr != nil {
			return
		}
		sendOrLog(conn, seat, out)
	}
	ok := func(action string, res game.Result) {
		out, err := newMessage(models.TypeActionOK, models.Ack{Action: action, Event: res.Event, Detail: res.Detail})
		if err != nil {
			return
		}
		sendOrLog(conn, seat, out)
		entry.afterAction(res)
	}

	switch msg.Type {
	case models.TypeRequestState:
		if out, err := newMessage(models.TypeStateSnapshot, sess.Snapshot(seat)); err == nil {
			sendOrLog(conn, seat, out)
		}

	case models.TypeStartRound:
		res, err := sess.Start()
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypeNextRound:
		res, err := sess.StartNextRound()
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypePlaceBid:
		var p models.BidPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fail(err)
			return
		}
		if err := requireSeat(seat, p.Seat); err != nil {
			fail(err)
			return
		}
		value := engine.PassBid
		if p.Value != nil {
			value = *p.Value
		}
		res, err := sess.PlaceBid(seat, value)
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypeChooseTrump:
		var p models.ChooseTrumpPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fail(err)
			return
		}
		if err := requireSeat(seat, p.Seat); err != nil {
			fail(err)
			return
		}
		suit, okSuit := engine.ParseSuit(p.Suit)
		if !okSuit {
			fail(&engine.Error{Kind: engine.KindBadRequest, Reason: "unknown suit " + p.Suit})
			return
		}
		res, err := sess.ChooseTrump(seat, suit)
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypeExchangeKitty:
		var p models.ExchangeKittyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fail(err)
			return
		}
		if err := requireSeat(seat, p.Seat); err != nil {
			fail(err)
			return
		}
		res, err := sess.ExchangeKitty(seat, p.Returns)
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypeRevealTrump:
		var p models.RevealTrumpPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fail(err)
			return
		}
		if err := requireSeat(seat, p.Seat); err != nil {
			fail(err)
			return
		}
		res, err := sess.RequestReveal(seat)
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	case models.TypePlayCard:
		var p models.PlayCardPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			fail(err)
			return
		}
		if err := requireSeat(seat, p.Seat); err != nil {
			fail(err)
			return
		}
		res, err := sess.PlayCard(seat, p.CardID)
		if err != nil {
			fail(err)
			return
		}
		ok(string(msg.Type), res)

	default:
		fail(&engine.Error{Kind: engine.KindBadRequest, Reason: "unknown message type " + string(msg.Type)})
	}
}

// requireSeat rejects frames claiming a seat other than the one this
// connection identified as.
func requireSeat(bound, claimed int) error {
	if claimed != bound {
		return &engine.Error{Kind: engine.KindSeatUnavailable, Reason: "frame seat does not match connection seat"}
	}
	return nil
}
