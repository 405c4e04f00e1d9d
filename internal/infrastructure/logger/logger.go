package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/config"
)

// New builds the application logger for the given environment.
// A non-empty level overrides the environment default.
func New(env, level string, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stdout
	}
	zerolog.TimestampFieldName = "timestamp"

	var lvl zerolog.Level
	switch env {
	case config.EnvLocal:
		lvl = zerolog.TraceLevel
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	case config.EnvDev:
		lvl = zerolog.DebugLevel
	case config.EnvProd:
		lvl = zerolog.InfoLevel
	default:
		return zerolog.Nop(), fmt.Errorf("unknown env: %s", env)
	}

	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}
