// Package auth performs the login exchange against the scheduling API and
// owns the local half of the session lifecycle: a successful login persists
// the issued credential, logout clears it. There is no server-side session
// invalidation endpoint; logout is purely local.
package auth

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
	"github.com/jrsteele09/go-meetings-client/pipeline"
	"github.com/jrsteele09/go-meetings-client/session"
)

// User is the record returned by the current-user lookup.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Gateway coordinates the authentication flow: login, logout, and the
// derived session state.
type Gateway struct {
	pipeline *pipeline.Pipeline
	store    session.Store
	logger   zerolog.Logger
}

// Option modifies a Gateway during construction.
type Option func(*Gateway)

// WithLogger sets the logger. Credential values are never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New constructs a Gateway. The store must be the same store the pipeline
// reads, otherwise a saved credential would never be attached to requests.
func New(p *pipeline.Pipeline, store session.Store, options ...Option) (*Gateway, error) {
	if p == nil {
		return nil, errors.New("[auth.New] pipeline is required")
	}
	if store == nil {
		return nil, errors.New("[auth.New] session store is required")
	}

	g := &Gateway{
		pipeline: p,
		store:    store,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a bearer credential and persists it. Any
// non-success response surfaces as AuthenticationFailedErr: wrong password
// and unknown account are indistinguishable to the caller. A failed login
// leaves the stored session untouched.
func (g *Gateway) Login(ctx context.Context, email, password string) (string, error) {
	data, err := g.pipeline.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		var srvErr *clienterrors.ServerError
		if clienterrors.As(err, &srvErr) {
			g.logger.Info().Str("email", email).Int("status", srvErr.StatusCode).Msg("login rejected")
			return "", clienterrors.Wrapf(AuthenticationFailedErr, "[Gateway.Login] HTTP %d", srvErr.StatusCode)
		}
		return "", errors.Wrap(err, "[Gateway.Login] login request")
	}

	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", errors.Wrap(err, "[Gateway.Login] parse login response")
	}
	if resp.AccessToken == "" {
		return "", errors.Wrap(AuthenticationFailedErr, "[Gateway.Login] response contained no access token")
	}

	if err := g.store.Save(resp.AccessToken); err != nil {
		return "", errors.Wrap(err, "[Gateway.Login] persist credential")
	}

	g.logger.Info().Str("email", email).Msg("login succeeded")
	return resp.AccessToken, nil
}

// Logout clears the local session. It never fails: clearing local state is
// unconditional, and there is no server-side token to revoke, so a not-yet-
// expired credential remains valid server-side until natural expiry.
func (g *Gateway) Logout() {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn().Err(err).Msg("session clear failed")
		return
	}
	g.logger.Info().Msg("logged out")
}

// IsAuthenticated reports whether a credential is currently stored. Freshness
// and validity are not checked; the server is the sole source of truth.
func (g *Gateway) IsAuthenticated() bool {
	state, err := session.StateOf(g.store)
	return err == nil && state == session.Authenticated
}

// CurrentUser looks up the user the stored credential belongs to.
func (g *Gateway) CurrentUser(ctx context.Context) (User, error) {
	data, err := g.pipeline.Get(ctx, "/users/me")
	if err != nil {
		var srvErr *clienterrors.ServerError
		if clienterrors.As(err, &srvErr) && srvErr.StatusCode == 401 {
			return User{}, clienterrors.Wrapf(AuthenticationFailedErr, "[Gateway.CurrentUser] HTTP %d", srvErr.StatusCode)
		}
		return User{}, errors.Wrap(err, "[Gateway.CurrentUser] request")
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return User{}, errors.Wrap(err, "[Gateway.CurrentUser] parse response")
	}
	return user, nil
}
