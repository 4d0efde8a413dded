package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestVerifier_Verify(t *testing.T) {
	secret := []byte("test-secret")
	v := NewVerifier(secret)

	t.Run("returns the subject of a valid token", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		subject, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", subject)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token := signToken(t, []byte("other"), jwt.MapClaims{"sub": "u1"})

		_, err := v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		_, err := v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		token := signToken(t, secret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := v.Verify(token)
		assert.Error(t, err)
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		_, err := v.Verify("")
		assert.Error(t, err)
	})
}

func TestNewVerifierFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewVerifierFromEnv()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	v, err := NewVerifierFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, v)
}
