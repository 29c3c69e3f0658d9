package postgres_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkhub/config"
	"rkhub/infras/postgres"
)

func target() config.Postgres {
	return config.Postgres{
		Host:     "db.internal",
		Port:     "5432",
		Username: "rk",
		Password: "p@ss/word#1",
		Name:     "rkhub",
		SSLMode:  "require",
		Timezone: "Asia/Kolkata",
	}
}

func TestDSN(t *testing.T) {
	dsn, err := url.Parse(postgres.DSN(&config.Config{}, target(), nil))
	require.NoError(t, err)

	password, _ := dsn.User.Password()

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "db.internal:5432", dsn.Host)
	assert.Equal(t, "/rkhub", dsn.Path)
	assert.Equal(t, "p@ss/word#1", password)
	assert.Equal(t, "require", dsn.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Kolkata", dsn.Query().Get("timezone"))
}

func TestDSN_PrefixAndExtra(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "staging_"

	tgt := target()
	tgt.Timezone = ""

	dsn, err := url.Parse(postgres.DSN(cfg, tgt, url.Values{"x-migrations-table": {"schema_migrations"}}))
	require.NoError(t, err)

	assert.Equal(t, "/staging_rkhub", dsn.Path)
	assert.Equal(t, "schema_migrations", dsn.Query().Get("x-migrations-table"))
	assert.False(t, dsn.Query().Has("timezone"))
}
