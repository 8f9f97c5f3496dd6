package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jerynmathew/thurup-sub001/engine"
	"github.com/jerynmathew/thurup-sub001/internal/auth"
	"github.com/jerynmathew/thurup-sub001/internal/game"
	"github.com/jerynmathew/thurup-sub001/internal/models"
)

const seatTokenTTL = 24 * time.Hour

// Routes returns the full HTTP surface.
func (s *GameServer) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/games", s.handleCreate)
	mux.HandleFunc("POST /v1/games/{code}/join", s.handleJoin)
	mux.HandleFunc("POST /v1/games/{id}/start", s.handleStart)
	mux.HandleFunc("GET /v1/games/{id}", s.handleState)
	mux.HandleFunc("DELETE /v1/games/{id}", s.handleDelete)
	mux.HandleFunc("GET /v1/games/{id}/ws", s.handleWS)
	return mux
}

type createRequest struct {
	Mode           string `json:"mode"`
	Seats          int    `json:"seats"`
	TeamCount      int    `json:"teamCount"`
	MinBid         int    `json:"minBid"`
	RevealMode     string `json:"revealMode"`
	LastTrickBonus int    `json:"lastTrickBonus"`
	Passcode       string `json:"passcode"`
}

type createResponse struct {
	GameID string `json:"gameId"`
	Code   string `json:"code"`
}

func (s *GameServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &engine.Error{Kind: engine.KindBadRequest, Reason: "malformed request body"})
		return
	}

	cfg := game.DefaultConfig()
	if req.Mode != "" {
		cfg.Mode = engine.Mode(req.Mode)
		if cfg.Mode == engine.Mode56 && req.Seats == 0 {
			cfg.Seats = 6
		}
	}
	if req.Seats != 0 {
		cfg.Seats = req.Seats
	}
	if req.TeamCount != 0 {
		cfg.TeamCount = req.TeamCount
	}
	if req.MinBid != 0 {
		cfg.MinBid = req.MinBid
	}
	if req.RevealMode != "" {
		cfg.RevealMode = engine.RevealMode(req.RevealMode)
	}
	cfg.LastTrickBonus = req.LastTrickBonus

	entry, err := s.Create(cfg, req.Passcode)
	if err != nil {
		// Profile validation failures are caller mistakes, not server ones.
		if engine.KindOf(err) == "" {
			err = &engine.Error{Kind: engine.KindInvalidMode, Reason: err.Error()}
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{
		GameID: entry.Session.ID.String(),
		Code:   entry.Session.Code,
	})
}

type joinRequest struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

type joinResponse struct {
	GameID    string `json:"gameId"`
	Seat      int    `json:"seat"`
	Token     string `json:"token"`
	SeatToken string `json:"seatToken"`
}

func (s *GameServer) handleJoin(w http.ResponseWriter, r *http.Request) {
	entry, err := s.GetByCode(r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &engine.Error{Kind: engine.KindBadRequest, Reason: "malformed request body"})
		return
	}
	if req.Name == "" {
		writeError(w, &engine.Error{Kind: engine.KindBadRequest, Reason: "name is required"})
		return
	}
	if err := entry.Session.CheckPasscode(req.Passcode); err != nil {
		writeError(w, err)
		return
	}

	player, err := entry.Session.Join(req.Name, false)
	if err != nil {
		writeError(w, err)
		return
	}

	seatToken, err := auth.NewSeatToken(s.jwtSecret, entry.Session.ID, player.Seat, player.Token, seatTokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	entry.afterAction(game.Result{
		Reason: "player_joined",
		Event:  "player_joined",
		Detail: map[string]any{"seat": player.Seat, "name": player.Name},
	})
	writeJSON(w, http.StatusOK, joinResponse{
		GameID:    entry.Session.ID.String(),
		Seat:      player.Seat,
		Token:     player.Token.String(),
		SeatToken: seatToken,
	})
}

func (s *GameServer) handleStart(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entryByID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := entry.Session.Start()
	if err != nil {
		writeError(w, err)
		return
	}
	entry.afterAction(res)
	writeJSON(w, http.StatusOK, models.Ack{Action: "start_round", Event: res.Event, Detail: res.Detail})
}

// handleState serves the unprivileged observer snapshot.
func (s *GameServer) handleState(w http.ResponseWriter, r *http.Request) {
	entry, err := s.entryByID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry.Session.Snapshot(-1))
}

func (s *GameServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, &engine.Error{Kind: engine.KindBadRequest, Reason: "invalid game id"})
		return
	}
	s.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *GameServer) entryByID(r *http.Request) (*GameEntry, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, &engine.Error{Kind: engine.KindBadRequest, Reason: "invalid game id"}
	}
	return s.Get(id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps rule-error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := engine.KindOf(err)
	switch kind {
	case engine.KindGameNotFound:
		status = http.StatusNotFound
	case engine.KindBadRequest, engine.KindInvalidMode, engine.KindInvalidBidValue:
		status = http.StatusBadRequest
	case engine.KindSeatUnavailable, engine.KindWrongPhase:
		status = http.StatusConflict
	case engine.KindOutOfTurn, engine.KindNotBidWinner, engine.KindNotYetChosen,
		engine.KindAlreadyRevealed, engine.KindRevealNotEligible,
		engine.KindCardNotInHand, engine.KindMustFollowSuit:
		status = http.StatusUnprocessableEntity
	case "":
		kind = "internal"
	}
	writeJSON(w, status, models.ErrorPayload{Kind: string(kind), Reason: err.Error()})
}
