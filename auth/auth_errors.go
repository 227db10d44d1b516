package auth

import clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"

var (
	// AuthenticationFailedErr is returned when the login exchange is rejected.
	// The design does not distinguish a wrong password from an unknown
	// account; both surface as this error.
	AuthenticationFailedErr = clienterrors.ErrAuthenticationFailed
)
