package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	minSecretLength = 32
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=10h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`

	Storage   StorageConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Bootstrap BootstrapConfig
}

type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,    default=data/payments.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=payment_service"`
}

// RedisConfig is optional: an empty Addr disables the payment ledger.
type RedisConfig struct {
	Addr          string `env:"REDIS_ADDR"`
	DB            int    `env:"REDIS_DB,       default=0"`
	LedgerWorkers int    `env:"LEDGER_WORKERS, default=4"`
}

type AuthConfig struct {
	// PublicPaths are added to /auth/login as paths the gate skips.
	PublicPaths []string `env:"PUBLIC_PATHS"`
	// PaymentAuthorities, when set, restricts /v1/payment to principals
	// holding at least one of them.
	PaymentAuthorities []string `env:"PAYMENT_AUTHORITIES"`
}

type BootstrapConfig struct {
	Username string   `env:"BOOTSTRAP_USERNAME"`
	Password string   `env:"BOOTSTRAP_PASSWORD"`
	Roles    []string `env:"BOOTSTRAP_ROLES"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// Validate reports every setting that would prevent the service from starting.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if c.Bootstrap.Username != "" && c.Bootstrap.Password == "" {
		errs = append(errs, errors.New("BOOTSTRAP_PASSWORD is required when BOOTSTRAP_USERNAME is set"))
	}
	return errors.Join(errs...)
}

// LedgerEnabled reports whether a Redis address was configured.
func (c *Config) LedgerEnabled() bool {
	return c.Redis.Addr != ""
}
