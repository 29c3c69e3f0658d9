package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Postgres is one side of the read/write connection pair.
type Postgres struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Shutdown struct {
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
	} `envconfig:"SHUTDOWN"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

// RateLimiter caps requests per client address inside a fixed window.
type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"60"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type App struct {
	Name        string      `envconfig:"NAME" default:"rkhub"`
	Timezone    string      `envconfig:"TIMEZONE"`
	APIKey      string      `envconfig:"API_KEY"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	Gallery     struct {
		ThumbnailWidth  int `envconfig:"THUMBNAIL_WIDTH"  default:"480"`
		ThumbnailHeight int `envconfig:"THUMBNAIL_HEIGHT" default:"480"`
	} `envconfig:"GALLERY"`
}

type Redis struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type Cache struct {
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	// TTL of cached listings, in seconds.
	TTL int `envconfig:"TTL" default:"300"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"30"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type Database struct {
	Postgres struct {
		Read           Postgres `envconfig:"READ"`
		Write          Postgres `envconfig:"WRITE"`
		Prefix         string   `envconfig:"PREFIX"`
		MaxRetry       int      `envconfig:"MAX_RETRY"       default:"3"`
		RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"2"`
		MigrationTable string   `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
		AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
	} `envconfig:"POSTGRES"`
}

type Kafka struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		AdmissionSubmitted string `envconfig:"ADMISSION_SUBMITTED" default:"admission.submitted"`
	} `envconfig:"TOPICS"`
}

type External struct {
	Otel struct {
		Endpoint    string  `envconfig:"ENDPOINT"`
		SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		Region          string `envconfig:"REGION"            default:"auto"`
	} `envconfig:"S3"`
}

// Config is read from the environment. Each section's tag is the variable
// prefix, so Database.Postgres.Write.Host comes from DB_POSTGRES_WRITE_HOST.
type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       Database `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	External External `envconfig:"EXTERNAL"`
}

var (
	conf *Config
	once sync.Once
)

// Load merges a .env file, when one exists, into the environment and
// decodes the result.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}

		log.Debug().Msg("No .env file found, using the process environment")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}

	return cfg, nil
}

// Get returns the process wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		conf = cfg

		log.Info().Str("env", cfg.Server.Env).Msg("Service configuration initialized")
	})

	return conf
}
