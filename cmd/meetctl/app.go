package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-meetings-client/auth"
	"github.com/jrsteele09/go-meetings-client/internal/config"
	"github.com/jrsteele09/go-meetings-client/internal/logging"
	"github.com/jrsteele09/go-meetings-client/meetings"
	"github.com/jrsteele09/go-meetings-client/pipeline"
	"github.com/jrsteele09/go-meetings-client/session"
)

// app wires the session store, pipeline, gateway, and repository together
// for one command invocation.
type app struct {
	cfg      config.Config
	logger   zerolog.Logger
	store    session.Store
	gateway  *auth.Gateway
	meetings *meetings.Repository
}

// addGlobalFlags registers flags shared by every command.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("base-url", "", "API base URL (env: MEETCTL_BASE_URL, default: http://localhost:8000)")
	cmd.PersistentFlags().String("session-file", "", "session file path (env: MEETCTL_SESSION_FILE, default: ~/.meetctl/session.json)")
	cmd.PersistentFlags().Duration("timeout", 0, "per-request timeout (env: MEETCTL_TIMEOUT_SECONDS, default: 30s)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug/info/warn/error (env: MEETCTL_LOG_LEVEL, default: info)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: json / text (default: text)")
}

func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		o.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("session-file"); v != "" {
		o.SessionFile = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		o.Timeout = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		o.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		o.Output = v
	}
	return o
}

// newApp rehydrates the session from disk and builds the client stack.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.New(overridesFromFlags(cmd))
	logger := logging.New(cfg.GetLogLevel(), cfg.GetLogFile())

	sessionFile := cfg.GetSessionFile()
	if sessionFile == "" {
		var err error
		sessionFile, err = session.DefaultPath()
		if err != nil {
			return nil, errors.Wrap(err, "[newApp] resolve session file")
		}
	}

	store, err := session.NewFileStore(sessionFile)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] create session store")
	}

	p, err := pipeline.New(cfg.GetBaseURL(), store,
		pipeline.WithTimeout(cfg.GetRequestTimeout()),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] create pipeline")
	}

	gateway, err := auth.New(p, store, auth.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] create auth gateway")
	}

	repo, err := meetings.New(p, meetings.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] create meeting repository")
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		gateway:  gateway,
		meetings: repo,
	}, nil
}

// commandTimeout bounds a whole command run, on top of the pipeline's
// per-request timeout.
const commandTimeout = 2 * time.Minute
