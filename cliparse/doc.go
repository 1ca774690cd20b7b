// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

Anything left after the flags is the command and its arguments (cfg.Args).

# Config Fields

  - APIBaseURL: remote API root (default: https://dummyjson.com)
  - StoreType: sqlite, postgres, redis or memory (default: sqlite)
  - StoreURL: SQLite file, PostgreSQL DSN or Redis URL
  - Port: listen port for the serve command (default: 3318)
  - RouteLimit: routes requested per fetch (default: 30)
  - HTTPTimeout: timeout for remote calls (default: 30s)
  - LogLevel: slog level (default: info)

# CLI Flags

	-api        Remote API base URL
	-t          Storage type
	-d          Storage URL
	-p          Server port
	-limit      Routes per fetch
	-timeout    HTTP timeout
	-log-level  Log level

# Environment Variables

Flags fall back to environment variables:

	API_BASE_URL → -api
	STORE_TYPE   → -t
	STORE_URL    → -d
	PORT         → -p
	ROUTE_LIMIT  → -limit
	HTTP_TIMEOUT → -timeout
	LOG_LEVEL    → -log-level

CLI flags take precedence over environment variables. LoadDotEnv fills the
environment from a .env file in the working directory, if there is one.

# Validation

ParseFlags returns an error if:

  - the store type is unknown
  - STORE_URL is missing for postgres or redis
  - a numeric, duration or level value does not parse
*/
package cliparse
