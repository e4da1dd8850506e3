package logger

import (
	"hotel/config"
	"hotel/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init installs the global zerolog logger for the configured environment.
// Development gets the console writer; every other environment writes JSON
// lines tagged with the application name.
func Init(cfg *config.Config) {
	Setup(cfg, os.Stdout)
}

// Setup is Init with an explicit sink.
func Setup(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	output := out
	if cfg.Server.Env == constant.ServerEnvDevelopment {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stdout}
	}

	builder := zerolog.New(output).With().Timestamp()
	if cfg.App.Name != "" {
		builder = builder.Str("app", cfg.App.Name)
	}

	log.Logger = builder.Logger()

	level := Level(cfg.Server.LogLevel)
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("loglevel", level.String()).Str("env", cfg.Server.Env).Msg("Logger initialized.")
}

// Level parses a zerolog level name. Unknown names fall back to info and an
// empty name leaves every level enabled.
func Level(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.TraceLevel
	}

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
