package logger

import (
	"io"
	"os"
	"rkhub/config"
	"rkhub/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger installs a console logger so configuration loading can log
// before the real settings are known.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// Configure applies the configured level and output format. Production
// writes JSON lines tagged with the service name; everything else keeps the
// console writer.
func Configure(cfg *config.Config) {
	configure(cfg, os.Stderr)
}

func configure(cfg *config.Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = zerolog.New(out).With().
			Timestamp().
			Str("service", cfg.App.Name).
			Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().
			Timestamp().
			Logger()
	}

	log.Debug().Str("level", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Stack().Err(errors.WithStack(err)).Send()
}
