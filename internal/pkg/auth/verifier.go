package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expired token, missing subject. The edge maps it to 401 without detail.
var ErrInvalidToken = errors.New("invalid bearer token")

// Verifier validates bearer tokens and turns their claims into an Actor.
type Verifier struct {
	keyFunc      jwt.Keyfunc
	validMethods []string
	clientID     string
}

// NewHMACVerifier verifies HS256 tokens with a shared secret.
// Meant for local development and tests.
func NewHMACVerifier(secret []byte, clientID string) *Verifier {
	return &Verifier{
		keyFunc:      func(*jwt.Token) (any, error) { return secret, nil },
		validMethods: []string{jwt.SigningMethodHS256.Alg()},
		clientID:     clientID,
	}
}

// NewRSAVerifier verifies RS256 tokens against the identity provider's
// public key, supplied as a PEM block.
func NewRSAVerifier(publicKeyPEM []byte, clientID string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("auth: parse RSA public key: %w", err)
	}
	return newRSAVerifier(key, clientID), nil
}

func newRSAVerifier(key *rsa.PublicKey, clientID string) *Verifier {
	return &Verifier{
		keyFunc:      func(*jwt.Token) (any, error) { return key, nil },
		validMethods: []string{jwt.SigningMethodRS256.Alg()},
		clientID:     clientID,
	}
}

// Verify checks the token's signature and expiry and builds the Actor:
// subject claim becomes SubjectID, role claims become the normalized role
// set, and the raw credential is kept for forwarding to the catalog.
func (v *Verifier) Verify(tokenString string) (Actor, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, v.keyFunc,
		jwt.WithValidMethods(v.validMethods),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Actor{}, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	return Actor{
		SubjectID: subject,
		Roles:     RolesFromClaims(claims, v.clientID),
		Token:     tokenString,
	}, nil
}
