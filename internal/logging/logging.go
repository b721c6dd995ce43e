// Package logging configures the zerolog logger shared by every postdeck
// component. Output goes to a file as JSON lines because the terminal belongs
// to the TUI; internal/logtail reads the same file back for the activity view.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where and how much to log.
type Options struct {
	// File is the log path. Ignored when Writer is set.
	File string
	// Level is a zerolog level name. Invalid names fall back to info.
	Level string
	// Writer overrides File, mainly for tests.
	Writer io.Writer
}

// New builds the application logger. The returned closer releases the log
// file and must be called on shutdown.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Writer
	closer := io.Closer(nopCloser{})
	if out == nil {
		path := strings.TrimSpace(opts.File)
		if path == "" {
			return zerolog.Nop(), closer, fmt.Errorf("log file path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		out, closer = file, file
	}

	level, levelErr := ParseLevel(opts.Level)

	l := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Str("git_revision", gitRevision()).
		Logger()

	if levelErr != nil {
		l.Warn().Str("level", opts.Level).Msg("invalid log level, defaulting to info")
	}
	return l, closer, nil
}

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(name string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

func gitRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
