// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/danielhkuo/transit-routes/auth"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/render"
	"github.com/danielhkuo/transit-routes/store"
)

const usage = `Usage: transit-routes [flags] <command> [args]

Commands:
  login <username> <password>   Sign in
  logout                        Sign out
  whoami                        Show the signed-in profile
  routes                        List transport routes
  show <id>                     Show one route
  fav <id>                      Add or remove a favourite
  favs                          List favourite routes
  theme [toggle|dark|light]     Show or change the theme
  serve                         Run the HTTP API

Flags:
  -api URL        Remote API base URL (API_BASE_URL)
  -t TYPE         Storage: sqlite, postgres, redis, memory (STORE_TYPE)
  -d URL          Storage URL or file (STORE_URL)
  -p PORT         Port for serve (PORT)
  -limit N        Routes to fetch (ROUTE_LIMIT)
  -timeout DUR    Remote call timeout (HTTP_TIMEOUT)
  -log-level LVL  debug, info, warn, error (LOG_LEVEL)
`

var errUsage = errors.New("usage")

// publicCommands run without a session
var publicCommands = map[string]bool{
	"login": true,
	"theme": true,
	"serve": true,
}

// runCommand executes one CLI command against a hydrated store
func runCommand(ctx context.Context, st *store.Store, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	p := render.New(out, st.IsDarkMode())

	if !publicCommands[cmd] && !st.IsAuthenticated() {
		p.Error("Sign in first: transit-routes login <username> <password>")
		return store.ErrNotAuthenticated
	}

	switch cmd {
	case "login":
		if len(rest) != 2 {
			return errUsage
		}
		profile, err := st.Login(ctx, models.LoginCredentials{Username: rest[0], Password: rest[1]})
		if err != nil {
			p.Error(err.Error())
			return err
		}
		p.Profile(profile, len(st.Snapshot().Items.Favourites), sessionExpiry(ctx, st))
		return nil

	case "logout":
		err := st.Logout(ctx)
		p.Message("Signed out")
		return err

	case "whoami":
		snap := st.Snapshot()
		p.Profile(*snap.Auth.User, len(snap.Items.Favourites), sessionExpiry(ctx, st))
		return nil

	case "routes":
		if err := fetch(ctx, st, p); err != nil {
			return err
		}
		snap := st.Snapshot()
		p.Routes(snap.Items.Routes, snap.Items.Favourites)
		return nil

	case "show", "fav":
		if len(rest) != 1 {
			return errUsage
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			p.Error(fmt.Sprintf("Route id must be a number, got %q", rest[0]))
			return errUsage
		}
		if err := fetch(ctx, st, p); err != nil {
			return err
		}
		route, err := st.RouteByID(id)
		if err != nil {
			p.Error(fmt.Sprintf("No route with id %d", id))
			return err
		}
		if cmd == "show" {
			p.Route(route, st.IsFavourite(id))
			return nil
		}
		favourite, err := st.ToggleFavourite(ctx, id)
		p.Toggled(route, favourite)
		return err

	case "favs":
		if err := fetch(ctx, st, p); err != nil {
			return err
		}
		p.Favourites(st.FavouriteRoutes())
		return nil

	case "theme":
		return theme(ctx, st, out, rest)

	default:
		return errUsage
	}
}

func fetch(ctx context.Context, st *store.Store, p *render.Printer) error {
	if err := st.FetchRoutes(ctx); err != nil {
		p.Error(store.MsgRoutesUnavailable)
		return err
	}
	return nil
}

func theme(ctx context.Context, st *store.Store, out io.Writer, args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	var err error
	if len(args) == 1 {
		switch args[0] {
		case "toggle":
			_, err = st.ToggleTheme(ctx)
		case "dark":
			err = st.SetTheme(ctx, true)
		case "light":
			err = st.SetTheme(ctx, false)
		default:
			return errUsage
		}
	}

	// reprint in the new palette
	dark := st.IsDarkMode()
	render.New(out, dark).Theme(dark)
	return err
}

// sessionExpiry reads the expiry of the persisted token; zero if unknown
func sessionExpiry(ctx context.Context, st *store.Store) time.Time {
	token, ok := st.Token(ctx)
	if !ok {
		return time.Time{}
	}
	exp, err := auth.TokenExpiry(token)
	if err != nil {
		slog.Debug("token expiry unavailable", "error", err)
		return time.Time{}
	}
	return exp
}
