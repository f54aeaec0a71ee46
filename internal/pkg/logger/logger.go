package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = zerolog.Nop()

// Config describes the process logger.
type Config struct {
	// Level is any zerolog level name. Empty means info.
	Level string
	// Format is "json" or "text". Text uses the console writer.
	Format string
	// Service is attached to every entry when set.
	Service string
	Output  io.Writer
}

// Configure builds the process logger and installs it as the zerolog global.
func Configure(config Config) error {
	level := zerolog.InfoLevel
	if config.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		level = parsed
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	switch strings.ToLower(config.Format) {
	case "", "json":
	case "text", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(out).With().Timestamp()
	if config.Service != "" {
		ctx = ctx.Str("service", config.Service)
	}
	defaultLogger = ctx.Logger()
	log.Logger = defaultLogger
	return nil
}

// Get returns the configured logger. Before Configure it discards everything.
func Get() zerolog.Logger {
	return defaultLogger
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event { return defaultLogger.Debug() }

func Info() *zerolog.Event { return defaultLogger.Info() }

func Warn() *zerolog.Event { return defaultLogger.Warn() }

func Error() *zerolog.Event { return defaultLogger.Error() }
