// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the transit-routes command-line client and API server.

transit-routes browses transport routes served by the DummyJSON demo API,
signs a user in, and keeps a set of favourite routes and a light/dark theme
flag in local storage so they survive restarts.

# Running Commands

Every invocation restores the saved session, favourites and theme first:

	transit-routes login emilys emilyspass
	transit-routes routes
	transit-routes fav 7
	transit-routes favs
	transit-routes theme toggle

Everything except login, theme and serve requires a signed-in session.

# Starting the Server

serve exposes the same state over HTTP for a mobile front end:

	transit-routes -p 3318 serve

# Configuration

Settings come from flags, then the environment, then a .env file:

  - API_BASE_URL (-api): Remote API (default: https://dummyjson.com)
  - STORE_TYPE (-t): sqlite, postgres, redis or memory (default: sqlite)
  - STORE_URL (-d): Storage URL or file (default: file:transit-routes.db)
  - PORT (-p): Server port (default: 3318)
  - ROUTE_LIMIT (-limit): Routes per fetch (default: 30)
  - HTTP_TIMEOUT (-timeout): Remote call timeout (default: 30s)
  - LOG_LEVEL (-log-level): slog level (default: info)

# Architecture

  - api: Remote API client
  - catalog: Product to route mapping
  - store: Session, route, favourite and theme state with hydration
  - kv: Local key-value storage (SQLite, PostgreSQL, Redis, memory)
  - db: Schema creation
  - auth: Credential validation and token helpers
  - render: Terminal output
  - handlers, router, middleware: HTTP API
  - models: Shared types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
