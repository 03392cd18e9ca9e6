package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	now := time.Now().Unix()
	token, err := signHS256JWT("secret-1", map[string]any{
		"sub":   uint(42),
		"email": "dana@example.com",
		"iat":   now,
		"exp":   now + 3600,
	})
	require.NoError(t, err)

	claims, ok := parseAndVerifyJWT(token, "secret-1")
	require.True(t, ok)
	assert.Equal(t, uint(42), claims.Sub)
	assert.Equal(t, now+3600, claims.Exp)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := signHS256JWT("secret-1", map[string]any{"sub": uint(42)})
	require.NoError(t, err)

	_, ok := parseAndVerifyJWT(token, "secret-2")
	assert.False(t, ok)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, ok := parseAndVerifyJWT("not.a", "secret-1")
	assert.False(t, ok)

	_, ok = parseAndVerifyJWT("a.b.c", "secret-1")
	assert.False(t, ok)
}

func TestJWTRejectsMissingSubject(t *testing.T) {
	token, err := signHS256JWT("secret-1", map[string]any{"email": "x@example.com"})
	require.NoError(t, err)

	_, ok := parseAndVerifyJWT(token, "secret-1")
	assert.False(t, ok)
}
