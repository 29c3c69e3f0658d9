package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"rkhub/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes so a replica can serve the public lists.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect("read", DSN(cfg, pg.Read, nil), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", DSN(cfg, pg.Write, nil), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// DSN renders a URL connection string for target. Credentials are escaped,
// DB_POSTGRES_PREFIX is prepended to the database name and extra is merged
// into the query string.
func DSN(cfg *config.Config, target config.Postgres, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", target.SSLMode)

	if target.Timezone != "" {
		query.Set("timezone", target.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(target.Username, target.Password),
		Host:     net.JoinHostPort(target.Host, target.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + target.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name, dsn string, maxRetry, waitSeconds int) *sqlx.DB {
	parsed, _ := url.Parse(dsn)
	logger := log.With().Str("name", name).Str("host", parsed.Host).Str("db", parsed.Path).Logger()

	var err error

	for attempt := range max(maxRetry, 1) {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Err(fmt.Errorf("giving up after %d attempts: %w", maxRetry, err)).Msg("Database unavailable")

	return nil
}
