package meetings

import clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"

var (
	// NotFoundErr is returned when the server reports no meeting with the
	// requested id.
	NotFoundErr = clienterrors.ErrNotFound
)
