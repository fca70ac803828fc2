package cliparse

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/bookreview/db"
)

const (
	DatabasePostgres = string(db.Postgres)
	DatabaseSQLite   = string(db.SQLite)
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenKey     string
	TokenTTL     time.Duration
	LogLevel     string
	LogFormat    string
	CORSOrigins  []string
	AuthRPS      float64
	AuthBurst    int
	TrustProxy   bool
}

// ParseFlags parses CLI flags, falling back to environment variables.
// CLI values win over env.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins string

	fs := flag.NewFlagSet("bookreview", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenKey, "token-key", "", "Token key, 64 hex chars (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Token lifetime")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&origins, "cors-origins", "", "Comma separated allowed origins")
	fs.Float64Var(&cfg.AuthRPS, "auth-rps", 0, "Auth requests per second per client")
	fs.IntVar(&cfg.AuthBurst, "auth-burst", 0, "Auth burst size per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take client IPs from X-Forwarded-For / X-Real-IP")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", DatabasePostgres)
	}
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseType = string(dialect)

	// Secrets - MUST be provided
	if cfg.TokenKey == "" {
		cfg.TokenKey = os.Getenv("TOKEN_KEY")
	}
	if cfg.TokenKey == "" {
		return Config{}, errors.New("TOKEN_KEY required")
	}
	if b, err := hex.DecodeString(cfg.TokenKey); err != nil || len(b) != 32 {
		return Config{}, errors.New("TOKEN_KEY must be 64 hex characters")
	}

	if cfg.TokenTTL == 0 {
		ttl, err := time.ParseDuration(envOr("TOKEN_TTL", "24h"))
		if err != nil {
			return Config{}, errors.New("invalid TOKEN_TTL env variable")
		}
		cfg.TokenTTL = ttl
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", "text")
	}

	if origins == "" {
		origins = envOr("CORS_ORIGINS", "*")
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.AuthRPS == 0 {
		rps, err := strconv.ParseFloat(envOr("AUTH_RATE_LIMIT", "5"), 64)
		if err != nil {
			return Config{}, errors.New("invalid AUTH_RATE_LIMIT env variable")
		}
		cfg.AuthRPS = rps
	}
	if cfg.AuthBurst == 0 {
		burst, err := strconv.Atoi(envOr("AUTH_RATE_BURST", "10"))
		if err != nil {
			return Config{}, errors.New("invalid AUTH_RATE_BURST env variable")
		}
		cfg.AuthBurst = burst
	}

	// Only behind a reverse proxy that sets these headers itself
	if !cfg.TrustProxy {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			trust, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads variables from the given env files (".env" when none
// are named) without overriding values already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
