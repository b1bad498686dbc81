// Package logging writes per-session structured log files.
//
// The TUI owns the terminal for the whole session, so log output never
// goes to the console: each run gets its own file under the configured
// log directory, named by a session id.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// SessionLogger owns one session's log file and the logger writing to it.
type SessionLogger struct {
	Dir       string
	SessionID string
	LogPath   string

	file   *os.File
	logger *log.Logger
}

// Options configures the session logger.
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // text, json, logfmt
	Timestamps bool
}

// NewSessionLogger creates the log directory and a fresh log file for
// this session.
func NewSessionLogger(dir string, opts Options) (*SessionLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := sessionID()
	path := filepath.Join(dir, fmt.Sprintf("%s.log", id))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		Prefix:          "rtodo",
	})

	return &SessionLogger{
		Dir:       dir,
		SessionID: id,
		LogPath:   path,
		file:      file,
		logger:    logger,
	}, nil
}

// Logger returns the structured logger for this session.
func (s *SessionLogger) Logger() *log.Logger {
	return s.logger
}

// Close closes the underlying log file.
func (s *SessionLogger) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log
// Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
