package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config is the typed runtime configuration of the welfare API.
type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"3000"`

	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:welfare.db?_pragma=foreign_keys(1)"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"JWT_SECRET"`

	SnapshotInterval time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"30s"`
	VoucherTTL       time.Duration `env:"VOUCHER_TTL" envDefault:"15m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:5173"`
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found: %v", err)
	}
}

// ErrMissingJWTSecret is returned by Load in production without JWT_SECRET.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// Load reads .env and parses the environment into a Config.
func Load() (Config, error) {
	LoadEnv()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// RedisAddr returns host:port for the redis client.
func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
