package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "ann@example.com",
		"user_id": 42,
		"exp":     exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	c, err := ParseClaims(tok)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", c.Subject)
	require.Equal(t, "42", c.UserID)
	require.True(t, c.ExpiresAt.Equal(exp))
	require.False(t, c.Expired(time.Now()))
	require.True(t, c.Expired(exp.Add(time.Minute)))
}

func TestParseClaims_Opaque(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	require.Error(t, err)
}

func TestClaims_NoExpiry(t *testing.T) {
	require.False(t, Claims{}.Expired(time.Now()))
}
