package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	Money       MoneyConfig
	Transaction TransactionConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	Driver          string // postgres, sqlite
	SQLitePath      string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Timezone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// MoneyConfig controls how currency amounts are rounded to two places.
type MoneyConfig struct {
	Rounding string // half_even, half_up
}

// TransactionConfig tunes the transaction recorder.
type TransactionConfig struct {
	// StrictProducts rejects a sale when a submitted product id does not
	// resolve to a catalog row. When false such lines are skipped silently.
	StrictProducts bool
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	RoundingHalfEven = "half_even"
	RoundingHalfUp   = "half_up"
)

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_NAME", "pos-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8000")

	// Credentials have no defaults in production.
	if !strings.EqualFold(v.GetString("APP_ENV"), "production") {
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_NAME", "pos_db")
		v.SetDefault("DB_USER", "postgres")
		v.SetDefault("DB_PASSWORD", "example")
	}
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_SQLITE_PATH", "pos.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Tokyo")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("CORS_ALLOWED_METHODS", "*")
	v.SetDefault("CORS_ALLOWED_HEADERS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("MONEY_ROUNDING", RoundingHalfEven)
	v.SetDefault("TRANSACTION_STRICT_PRODUCTS", false)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("APP_PORT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			SQLitePath:      v.GetString("DB_SQLITE_PATH"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			Timezone:        v.GetString("DB_TIMEZONE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Money: MoneyConfig{
			Rounding: strings.ToLower(v.GetString("MONEY_ROUNDING")),
		},
		Transaction: TransactionConfig{
			StrictProducts: v.GetBool("TRANSACTION_STRICT_PRODUCTS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.IsProduction() && c.Database.Driver == DriverPostgres {
		var missing []string
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.Password == "" {
			missing = append(missing, "DB_PASSWORD")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required database settings in production: %s", strings.Join(missing, ", "))
		}
	}

	switch c.Money.Rounding {
	case RoundingHalfEven, RoundingHalfUp:
	default:
		return fmt.Errorf("invalid MONEY_ROUNDING %q (want %s or %s)", c.Money.Rounding, RoundingHalfEven, RoundingHalfUp)
	}

	if c.RateLimit.Requests < 0 || c.RateLimit.Duration <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS must be >= 0 and RATE_LIMIT_DURATION > 0")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
