package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "cashier")
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
}

func TestSecretResolvedAtUseNotAtInit(t *testing.T) {
	// The environment is set long after this package initialized, the
	// same way a secret loaded from .env during startup appears. It must
	// still be the one tokens are signed with.
	t.Setenv("JWT_SECRET", "till-secret-one")
	token, err := GenerateToken(1, "admin")
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	// A token minted under one secret does not verify under another.
	t.Setenv("JWT_SECRET", "till-secret-two")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
