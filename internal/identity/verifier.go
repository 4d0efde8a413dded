// Package identity verifies session tokens so the realtime layer can trust
// the user id a connection claims during setup. Token issuance is owned by
// the external auth service; only HS256 verification happens here.
package identity

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks HS256 session tokens against a shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a Verifier with the given secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// NewVerifierFromEnv reads the shared secret from the JWT_SECRET environment
// variable.
func NewVerifierFromEnv() (*Verifier, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("identity: JWT_SECRET environment variable is not set")
	}
	return NewVerifier([]byte(secret)), nil
}

// Verify parses and validates the token and returns its subject, the user id
// the session was issued for.
func (v *Verifier) Verify(token string) (string, error) {
	if token == "" {
		return "", errors.New("identity: empty token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("identity: unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("identity: parse token: %w", err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("identity: token has no subject")
	}
	return subject, nil
}
