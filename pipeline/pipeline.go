// Package pipeline is the single choke point for every outbound call the
// client makes: it resolves the base address, encodes JSON payloads, attaches
// the stored bearer credential, and maps transport failures into the client's
// error taxonomy. Nothing is retried, cached, or deduplicated.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	clienterrors "github.com/jrsteele09/go-meetings-client/internal/errors"
	"github.com/jrsteele09/go-meetings-client/session"
)

const defaultTimeout = 30 * time.Second

// Pipeline wraps an HTTP client with the behaviour every domain operation
// shares. The credential is re-read from the session store on every call, so
// a login or logout between two requests takes effect immediately.
//
// Header attachment is fail-open: when no credential is stored the request is
// sent without an Authorization header and the server is the backstop that
// rejects unauthenticated access.
type Pipeline struct {
	baseURL string
	store   session.Store
	client  *http.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// Option modifies a Pipeline during construction.
type Option func(*Pipeline)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Pipeline) {
		p.client = client
	}
}

// WithTimeout sets the per-call timeout applied on top of the caller's
// context. Zero disables the pipeline-level timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing. Credential values are
// never logged, only whether one was attached.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline targeting baseURL, reading credentials from store.
func New(baseURL string, store session.Store, options ...Option) (*Pipeline, error) {
	if baseURL == "" {
		return nil, errors.New("[pipeline.New] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[pipeline.New] session store is required")
	}

	p := &Pipeline{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		client:  &http.Client{},
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

// Get issues a GET request and returns the raw response body.
func (p *Pipeline) Get(ctx context.Context, path string) ([]byte, error) {
	return p.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON-encoded body and returns the raw
// response body.
func (p *Pipeline) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[Pipeline.Post] marshal request body")
		}
		reader = bytes.NewReader(data)
	}
	return p.do(ctx, http.MethodPost, path, reader)
}

func (p *Pipeline) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	url := p.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Pipeline.do] create %s request", method)
	}

	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	credential, err := p.store.Load()
	if err != nil {
		// Fail-open: an unreadable store behaves like an empty one.
		p.logger.Warn().Err(err).Str("request_id", requestID).Msg("session store read failed, sending without credential")
		credential = ""
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	p.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Bool("authenticated", credential != "").
		Msg("request")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &clienterrors.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &clienterrors.NetworkError{URL: url, Err: err}
	}

	p.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &clienterrors.ServerError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}
