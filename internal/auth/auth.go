// Package auth issues and verifies seat tokens: signed claims binding a
// player identity to a seat in one game, used to reconnect after a
// dropped websocket.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SeatClaims is the JWT payload for one occupied seat.
type SeatClaims struct {
	GameID      string `json:"gid"`
	Seat        int    `json:"seat"`
	PlayerToken string `json:"tok"`
	jwt.RegisteredClaims
}

// NewSeatToken signs a token for the given seat, valid for ttl.
func NewSeatToken(secret []byte, gameID uuid.UUID, seat int, playerToken uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SeatClaims{
		GameID:      gameID.String(),
		Seat:        seat,
		PlayerToken: playerToken.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   playerToken.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSeatToken verifies the signature and expiry and returns the claims.
func ParseSeatToken(secret []byte, raw string) (*SeatClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &SeatClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SeatClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid seat token")
	}
	return claims, nil
}
