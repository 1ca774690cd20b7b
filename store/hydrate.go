// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/transit-routes/models"
)

type persisted struct {
	value string
	ok    bool
}

// Hydrate restores session, favourites and theme from storage. The three
// keys are read concurrently. Anything missing, unreadable or malformed
// restores the default for that slice; Hydrate itself never fails.
func (s *Store) Hydrate(ctx context.Context) {
	keys := []string{models.KeyUser, models.KeyFavourites, models.KeyDarkMode}
	values := make([]persisted, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			v, ok, err := s.storage.GetItem(gctx, key)
			if err != nil {
				return err
			}
			values[i] = persisted{value: v, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Warn("failed to restore persisted state", "error", err)
		s.RestoreUser(nil)
		s.RestoreFavourites(nil)
		return
	}

	s.RestoreUser(decodeUser(values[0]))
	s.RestoreFavourites(decodeFavourites(values[1]))
	if dark, ok := decodeDarkMode(values[2]); ok {
		s.restoreTheme(dark)
	}

	slog.Debug("state restored",
		"authenticated", s.IsAuthenticated(),
		"favourites", len(s.Snapshot().Items.Favourites),
	)
}

// decodeUser accepts only a JSON object with a string username
func decodeUser(p persisted) *models.UserProfile {
	if !p.ok || p.value == "" {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(p.value), &raw); err != nil || raw == nil {
		slog.Warn("ignoring malformed persisted user", "error", err)
		return nil
	}
	if field := raw["username"]; len(field) == 0 || field[0] != '"' {
		slog.Warn("ignoring persisted user without username")
		return nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(p.value), &profile); err != nil {
		slog.Warn("ignoring malformed persisted user", "error", err)
		return nil
	}
	return &profile
}

// decodeFavourites accepts only a JSON array of integers
func decodeFavourites(p persisted) []int {
	if !p.ok || p.value == "" {
		return nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(p.value), &ids); err != nil {
		slog.Warn("ignoring malformed persisted favourites", "error", err)
		return nil
	}
	return ids
}

func decodeDarkMode(p persisted) (bool, bool) {
	if !p.ok || p.value == "" {
		return false, false
	}

	var dark bool
	if err := json.Unmarshal([]byte(p.value), &dark); err != nil {
		slog.Warn("ignoring malformed persisted theme", "error", err)
		return false, false
	}
	return dark, true
}
