// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileEnv names a file that log lines are appended to, in addition to the console.
const LogFileEnv = "FRAMEKIT_LOG_FILE"

// Options configure Setup.
type Options struct {
	Verbosity int       // 0 warn, 1 info, 2 debug, 3+ trace
	Console   io.Writer // nil is os.Stderr
	NoColor   bool
	LogFile   string // "" reads LogFileEnv
}

// Level maps a verbosity count (the number of -v flags) to a level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup replaces the global logger. Lines go to the console and, if a log file is configured and can be opened, are appended to it as JSON. A log file that can't be opened
// is reported once on the console and otherwise ignored.
//
// The returned function closes the log file.
func Setup(opts Options) func() error {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen, NoColor: opts.NoColor}}

	path := opts.LogFile
	if path == "" {
		path = os.Getenv(LogFileEnv)
	}
	closeFn := func() error { return nil }
	var openErr error
	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			openErr = err
		} else {
			writers = append(writers, f)
			closeFn = f.Close
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if openErr != nil {
		log.Warn().Err(openErr).Str("path", path).Msg("log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("logger initialized")
	return closeFn
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Get returns the global logger tagged with component.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Operation logs the start of an operation at debug level and returns a function that logs its completion and duration.
func Operation(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")
	return func() {
		logger.Debug().Str("operation", operation).Dur("duration", time.Since(start)).Msg("operation completed")
	}
}
