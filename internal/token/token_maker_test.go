package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecretKey = "12345678901234567890123456789012"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken(42, "royce", "user", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	payload, err := maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	require.Equal(t, 42, payload.UserID)
	require.Equal(t, "royce", payload.Username)
	require.Equal(t, "user", payload.Role)
}

func TestNewJWTMaker_ShortSecret(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}

func TestJWTMaker_ExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken(42, "royce", "user", -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestJWTMaker_InvalidToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	payload, err := maker.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestJWTMaker_TamperedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, err := maker.CreateToken(42, "royce", "user", time.Minute)
	require.NoError(t, err)

	// 竄改signature
	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	payload, err := maker.VerifyToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestJWTMaker_WrongSecret(t *testing.T) {
	makerA, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)
	makerB, err := NewJWTMaker("98765432109876543210987654321098")
	require.NoError(t, err)

	tokenStr, err := makerA.CreateToken(42, "royce", "user", time.Minute)
	require.NoError(t, err)

	payload, err := makerB.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}
