package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"rkhub/config"
	"rkhub/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.ConfigureTo(cfg, &bytes.Buffer{})

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_ProductionWritesJSON(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "rkhub"

	logger.ConfigureTo(cfg, &buf)
	log.Info().Str("table", "updates").Msg("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rkhub", line["service"])
	assert.Equal(t, "updates", line["table"])
	assert.Equal(t, "loaded", line["message"])
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "error"

	logger.InitLogger()
	logger.ConfigureTo(cfg, &buf)

	logger.ErrorWithStack(errors.New("insert into admissions failed"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "insert into admissions failed", line["error"])
	assert.Equal(t, "error", line["level"])
	assert.NotEmpty(t, line["stack"])
}

func TestErrorWithStack_Nil(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = "production"

	logger.ConfigureTo(cfg, &buf)
	logger.ErrorWithStack(nil)

	assert.Zero(t, buf.Len())
}
