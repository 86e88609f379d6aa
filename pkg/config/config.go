package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration, loaded from WARMPAWS_*
// environment variables.
type Config struct {
	App    App
	DB     DB
	Redis  Redis
	JWT    JWT
	Stripe Stripe
	Flags  FeatureFlags
}

type App struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Comma separated list of allowed browser origins.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

type DB struct {
	DSN string `envconfig:"DB_DSN"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"warmpaws"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"warmpaws"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	MaxOpenConns    int `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeMins int `envconfig:"DB_CONN_MAX_LIFE_MINS" default:"30"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type JWT struct {
	Secret     string `envconfig:"JWT_SECRET" required:"true"`
	Issuer     string `envconfig:"JWT_ISSUER" default:"warmpaws"`
	TTLMinutes int    `envconfig:"JWT_TTL_MINUTES" default:"60"`
}

type Stripe struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
}

type FeatureFlags struct {
	// AutoMigrate runs pending goose migrations on startup.
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"false"`
}

// Load reads the environment into Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	ensureDSN(&cfg.DB)
	return &cfg, nil
}

// ensureDSN assembles a postgres DSN from the discrete fields when an
// explicit one was not provided.
func ensureDSN(db *DB) {
	if db.DSN != "" {
		return
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	q := u.Query()
	q.Set("sslmode", db.SSLMode)
	u.RawQuery = q.Encode()
	db.DSN = u.String()
}

func (a App) IsProduction() bool {
	return a.Env == "production"
}
