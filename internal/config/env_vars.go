package config

import (
	"os"
	"strconv"
)

const (
	baseURLVar     = "MEETCTL_BASE_URL"
	sessionFileVar = "MEETCTL_SESSION_FILE"
	timeoutVar     = "MEETCTL_TIMEOUT_SECONDS"
	logLevelVar    = "MEETCTL_LOG_LEVEL"
	logFileVar     = "MEETCTL_LOG_FILE"
	outputVar      = "MEETCTL_OUTPUT"
)

// GetEnv returns the environment variable's value, or defaultValue when unset
// or empty.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the environment variable parsed as an integer, or
// defaultValue when unset or unparseable.
func GetEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
