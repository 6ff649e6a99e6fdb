package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "microservices-app"

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyBuildsActorFromClaims(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	raw := signHS256(t, "secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
		"realm_access": map[string]any{
			"roles": []any{"CLIENT"},
		},
	})

	actor, err := v.Verify(raw)
	require.NoError(t, err)

	assert.Equal(t, "alice", actor.SubjectID)
	assert.True(t, actor.Roles.Has(RoleClient))
	assert.False(t, actor.IsAdmin())
	// The raw credential is retained for forwarding to the catalog.
	assert.Equal(t, raw, actor.Token)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	raw := signHS256(t, "other-secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	raw := signHS256(t, "secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingExpiry(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	raw := signHS256(t, "secret", jwt.MapClaims{"sub": "alice"})

	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	raw := signHS256(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewHMACVerifier([]byte("secret"), testClientID)
	_, err := v.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
