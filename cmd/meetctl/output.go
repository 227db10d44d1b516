package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// renderError maps a client failure to what the user sees. Transport,
// server, and not-found failures collapse into a single generic notice, the
// same simplification the original UI pages made at their boundary;
// authentication and validation problems stay specific. The full error is
// always written to the log.
func renderError(err error) string {
	var verr *clienterrors.ValidationError
	if clienterrors.As(err, &verr) {
		msg := "validation failed:"
		fields := make([]string, 0, len(verr.FieldErrors))
		for field := range verr.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			msg += fmt.Sprintf("\n  %s: %s", field, verr.FieldErrors[field])
		}
		return msg
	}
	if clienterrors.Is(err, clienterrors.ErrAuthenticationFailed) {
		return "login failed: check your email and password"
	}
	return "request failed: the meeting service could not complete the operation"
}

// exitError logs the underlying failure, prints the user-facing notice, and
// exits.
func exitError(a *app, err error) {
	if a != nil {
		a.logger.Error().Err(err).Msg("command failed")
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", renderError(err))
	os.Exit(1)
}
