package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the client logger. Console output goes to stderr so it never
// mixes with command output; when logFile is set, a rotated copy is kept
// there as well. An unknown level falls back to info.
func New(level, logFile string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = zerolog.MultiLevelWriter(w, rotated)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
