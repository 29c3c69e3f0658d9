package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkhub/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "rkhub", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 300, cfg.Cache.TTL)
	assert.Equal(t, 30, cfg.JWT.AccessExpireMin)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, "admission.submitted", cfg.Kafka.Topics.AdmissionSubmitted)
	assert.InDelta(t, 1.0, cfg.External.Otel.SampleRatio, 0)
}

func TestLoad_NestedPrefixes(t *testing.T) {
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.internal")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.internal")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://rk.example,https://admin.rk.example")
	t.Setenv("APP_RATE_LIMITER_MAX_REQUESTS", "5")
	t.Setenv("CACHE_REDIS_PRIMARY_HOST", "redis.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "primary.internal", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "replica.internal", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, []string{"https://rk.example", "https://admin.rk.example"}, cfg.App.CORS.AllowedOrigins)
	assert.Equal(t, 5, cfg.App.RateLimiter.MaxRequests)
	assert.Equal(t, "redis.internal", cfg.Cache.Redis.Primary.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_TIMEZONE=Asia/Kolkata\n"), 0o600))

	t.Cleanup(func() { os.Unsetenv("APP_TIMEZONE") })

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("CACHE_TTL", "five minutes")

	_, err := config.Load()
	assert.Error(t, err)
}
