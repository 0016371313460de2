package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	StorageDriver string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string // PostgreSQL

	JWTSecret                  string
	JWTIssuer                  string
	AccessTokenExpiryDuration  time.Duration
	RefreshTokenExpiryDuration time.Duration
	BcryptCost                 int

	FrontendURL string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	LoginRateLimit  string
	RedisURL        string
	PosthogAPIKey   string
	PosthogEndpoint string
	MetricsEnabled  bool
}

// LoadConfig loads configuration from command-line flags, environment variables and a .env file
// if present, in that order of precedence.
func LoadConfig(args []string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("notes_backend", pflag.ContinueOnError)
	flags.String("port", "", "HTTP listen port")
	flags.String("storage", "", "storage driver: mongo, postgres or memory")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	for key, flag := range map[string]string{"PORT": "port", "STORAGE_DRIVER": "storage", "LOG_LEVEL": "log-level"} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageDriver:   strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:        v.GetString("MONGODB_URI"),
		MongoDatabase:   v.GetString("MONGODB_DATABASE"),
		DatabaseURL:     v.GetString("PGSQL_URL"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		BcryptCost:      v.GetInt("BCRYPT_COST"),
		FrontendURL:     strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		LoginRateLimit:  v.GetString("LOGIN_RATE_LIMIT"),
		RedisURL:        v.GetString("REDIS_URL"),
		PosthogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_CALLBACK_URL"),
	}

	var err error
	if cfg.AccessTokenExpiryDuration, err = parsePositiveDuration(v, "ACCESS_TOKEN_EXPIRY_DURATION"); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenExpiryDuration, err = parsePositiveDuration(v, "REFRESH_TOKEN_EXPIRY_DURATION"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		slog.Warn("Google OAuth is not fully configured; Google sign-in will not function.")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("MONGODB_DATABASE", "notes_app")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "notes-app")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_DURATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("BCRYPT_COST", 8)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_CALLBACK_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	v.SetDefault("METRICS_ENABLED", true)
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.RefreshTokenExpiryDuration <= c.AccessTokenExpiryDuration {
		return fmt.Errorf("REFRESH_TOKEN_EXPIRY_DURATION (%s) must be longer than ACCESS_TOKEN_EXPIRY_DURATION (%s)",
			c.RefreshTokenExpiryDuration, c.AccessTokenExpiryDuration)
	}
	switch c.StorageDriver {
	case StorageMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be set when STORAGE_DRIVER is mongo")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("PGSQL_URL must be set when STORAGE_DRIVER is postgres")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
