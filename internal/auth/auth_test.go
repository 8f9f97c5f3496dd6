package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	gameID := uuid.New()
	playerToken := uuid.New()

	raw, err := NewSeatToken(secret, gameID, 2, playerToken, time.Hour)
	require.NoError(t, err)

	claims, err := ParseSeatToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, gameID.String(), claims.GameID)
	assert.Equal(t, 2, claims.Seat)
	assert.Equal(t, playerToken.String(), claims.PlayerToken)
}

func TestSeatTokenWrongSecret(t *testing.T) {
	raw, err := NewSeatToken([]byte("secret"), uuid.New(), 0, uuid.New(), time.Hour)
	require.NoError(t, err)
	_, err = ParseSeatToken([]byte("other"), raw)
	assert.Error(t, err)
}

func TestSeatTokenExpired(t *testing.T) {
	raw, err := NewSeatToken([]byte("secret"), uuid.New(), 0, uuid.New(), -time.Minute)
	require.NoError(t, err)
	_, err = ParseSeatToken([]byte("secret"), raw)
	assert.Error(t, err)
}
