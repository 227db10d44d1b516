// Package session holds the client-local record of whether a user is
// currently authenticated: a single durable bearer credential. The session
// has exactly two states, Anonymous and Authenticated, derived entirely from
// whether a credential is present in the store.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// State is the derived session state.
type State string

const (
	Anonymous     State = "anonymous"
	Authenticated State = "authenticated"
)

// StateOf derives the session state from the store. A credential of any age
// counts as Authenticated; the server is the sole judge of its validity.
func StateOf(store Store) (State, error) {
	credential, err := store.Load()
	if err != nil {
		return Anonymous, errors.Wrap(err, "[StateOf] load credential")
	}
	if credential == "" {
		return Anonymous, nil
	}
	return Authenticated, nil
}

// Claims is the informational subset of the credential's JWT claims.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Inspect decodes the claims carried by a bearer credential WITHOUT verifying
// its signature or expiry. The result is for display only; no authentication
// decision may be based on it.
func Inspect(credential string) (Claims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return Claims{}, errors.Wrap(err, "[Inspect] parse credential")
	}

	out := Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		out.Issuer = iss
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}
