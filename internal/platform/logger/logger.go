package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig holds the settings needed to build the application logger.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error (case-insensitive).
	Level string
	// FilePath enables rotated file output alongside stdout when non-empty.
	FilePath string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel converts a configured level name into a slog.Level.
// The second return value is false when the name is not recognized.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup initializes the application's logging system. It creates a structured
// JSON logger with the configured level, sets it as the slog default, and
// returns it together with a Closer for the log file (a no-op when logging
// only to stdout).
func Setup(cfg LoggerConfig) (*slog.Logger, io.Closer, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg LoggerConfig, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	var (
		out              = stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.FilePath != "" {
		fileName := cfg.FilePath
		if !strings.HasSuffix(fileName, ".log") {
			fileName += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   fileName,
			MaxSize:    50, // megabytes
			MaxBackups: 10,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, rotating)
		closer = rotating
	}

	logger := New(out, level)
	slog.SetDefault(logger)

	return logger, closer, nil
}

// New builds a JSON logger writing to out at the given level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}
