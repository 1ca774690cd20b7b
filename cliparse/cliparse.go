// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

const (
	DefaultAPIBaseURL = "https://dummyjson.com"
	DefaultStoreURL   = "file:transit-routes.db"
	DefaultPort       = 3318
	DefaultRouteLimit = 30
	DefaultTimeout    = 30 * time.Second
)

type Config struct {
	APIBaseURL  string
	StoreType   string
	StoreURL    string
	Port        int
	RouteLimit  int
	HTTPTimeout time.Duration
	LogLevel    slog.Level

	// Args holds the command and its arguments, after flags.
	Args []string
}

// LoadDotEnv reads .env into the environment if present.
// Variables that are already set are left alone.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}
}

// ParseFlags reads flags, falls back to environment variables, then defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var timeout, level string

	fs := flag.NewFlagSet("transit-routes", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "api", "", "Remote API base URL")
	fs.StringVar(&cfg.StoreType, "t", "", "Storage type (sqlite, postgres, redis or memory)")
	fs.StringVar(&cfg.StoreURL, "d", "", "Storage URL or file")
	fs.IntVar(&cfg.Port, "p", 0, "Port for the serve command")
	fs.IntVar(&cfg.RouteLimit, "limit", 0, "Number of routes to fetch")
	fs.StringVar(&timeout, "timeout", "", "HTTP timeout for remote calls (e.g. 15s)")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = getEnv("API_BASE_URL", DefaultAPIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.StoreType == "" {
		cfg.StoreType = getEnv("STORE_TYPE", StoreSQLite)
	}
	switch cfg.StoreType {
	case StoreSQLite, StorePostgres, StoreRedis, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	if cfg.StoreURL == "" {
		cfg.StoreURL = os.Getenv("STORE_URL")
	}
	if cfg.StoreURL == "" {
		switch cfg.StoreType {
		case StoreSQLite:
			cfg.StoreURL = DefaultStoreURL
		case StorePostgres, StoreRedis:
			return Config{}, fmt.Errorf("store URL required for %s (use -d or STORE_URL env)", cfg.StoreType)
		}
	}

	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
			return Config{}, err
		}
	}
	if cfg.RouteLimit == 0 {
		if cfg.RouteLimit, err = getEnvInt("ROUTE_LIMIT", DefaultRouteLimit); err != nil {
			return Config{}, err
		}
	}
	if cfg.RouteLimit < 0 {
		return Config{}, errors.New("route limit must not be negative")
	}

	if timeout == "" {
		timeout = os.Getenv("HTTP_TIMEOUT")
	}
	cfg.HTTPTimeout = DefaultTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid HTTP timeout %q", timeout)
		}
		cfg.HTTPTimeout = d
	}

	if level == "" {
		level = getEnv("LOG_LEVEL", "info")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", level)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
