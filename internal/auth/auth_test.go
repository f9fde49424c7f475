package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-agenda/internal/auth"
)

func TestHasher(t *testing.T) {
	h := auth.Hasher{Cost: 4}
	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, h.Compare(hash, "secret1"))
	assert.False(t, h.Compare(hash, "secret2"))
	assert.False(t, h.Compare("not-a-hash", "secret1"))
}

func TestToken_RoundTrip(t *testing.T) {
	tok, err := auth.MakeToken("42", "MEDICO", "k", time.Minute)
	require.NoError(t, err)

	c, err := auth.ParseToken(tok, "k")
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
	assert.Equal(t, "MEDICO", c.Role)
}

func TestToken_Rejects(t *testing.T) {
	tok, err := auth.MakeToken("42", "", "k", time.Minute)
	require.NoError(t, err)
	_, err = auth.ParseToken(tok, "other")
	assert.Error(t, err, "wrong secret")

	expired, err := auth.MakeToken("42", "", "k", -time.Minute)
	require.NoError(t, err)
	_, err = auth.ParseToken(expired, "k")
	assert.Error(t, err, "expired")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "42"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ParseToken(none, "k")
	assert.Error(t, err, "alg none")
}
