package config

import "time"

// Config resolves the client settings with flag > environment > config file
// > default precedence.
type Config interface {
	GetBaseURL() string
	GetSessionFile() string
	GetRequestTimeout() time.Duration
	GetLogLevel() string
	GetLogFile() string
	GetOutput() string
}

// Overrides carries command-line flag values, the highest-precedence source.
// Zero values mean "not set".
type Overrides struct {
	BaseURL     string
	SessionFile string
	Timeout     time.Duration
	LogLevel    string
	Output      string
}

type settings struct {
	file      FileConfig
	overrides Overrides
}

var _ Config = settings{}

// New resolves the configuration, reading the config file once.
func New(overrides Overrides) Config {
	return settings{
		file:      loadConfigFile(),
		overrides: overrides,
	}
}

func (s settings) GetBaseURL() string {
	if s.overrides.BaseURL != "" {
		return s.overrides.BaseURL
	}
	if v := GetEnv(baseURLVar, ""); v != "" {
		return v
	}
	if s.file.BaseURL != "" {
		return s.file.BaseURL
	}
	return "http://localhost:8000"
}

func (s settings) GetSessionFile() string {
	if s.overrides.SessionFile != "" {
		return s.overrides.SessionFile
	}
	if v := GetEnv(sessionFileVar, ""); v != "" {
		return v
	}
	return s.file.SessionFile
}

func (s settings) GetRequestTimeout() time.Duration {
	if s.overrides.Timeout > 0 {
		return s.overrides.Timeout
	}
	if seconds := GetEnvInt(timeoutVar, 0); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if s.file.TimeoutSeconds > 0 {
		return time.Duration(s.file.TimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}

func (s settings) GetLogLevel() string {
	if s.overrides.LogLevel != "" {
		return s.overrides.LogLevel
	}
	if v := GetEnv(logLevelVar, ""); v != "" {
		return v
	}
	if s.file.LogLevel != "" {
		return s.file.LogLevel
	}
	return "info"
}

func (s settings) GetLogFile() string {
	if v := GetEnv(logFileVar, ""); v != "" {
		return v
	}
	return s.file.LogFile
}

func (s settings) GetOutput() string {
	if s.overrides.Output != "" {
		return s.overrides.Output
	}
	if v := GetEnv(outputVar, ""); v != "" {
		return v
	}
	return "text"
}
