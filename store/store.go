// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/danielhkuo/transit-routes/api"
	"github.com/danielhkuo/transit-routes/auth"
	"github.com/danielhkuo/transit-routes/kv"
	"github.com/danielhkuo/transit-routes/models"
)

const (
	MsgRoutesUnavailable = "Unable to load transport routes."
	MsgLoginFailed       = "Login failed"
)

var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrRouteNotFound    = errors.New("route not found")
)

// LoginError is a failed remote login. Its message is fit to show the user;
// the underlying API error is available through errors.Is and errors.As.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// Remote is the subset of the API client the store calls
type Remote interface {
	GetRoutes(ctx context.Context, opts api.ListOptions) ([]models.Route, error)
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
}

// Store holds session, route and theme state. Mutations are serialized;
// remote calls run without holding the lock.
type Store struct {
	remote  Remote
	storage kv.Storage
	opts    api.ListOptions

	// writeMu keeps storage writes in the same order as the state
	// changes they record. Remote calls are made before taking it.
	writeMu sync.Mutex

	mu    sync.RWMutex
	auth  models.AuthState
	items models.ItemsState
	theme models.ThemeState
}

// New creates a store in its initial, signed-out state
func New(remote Remote, storage kv.Storage, opts api.ListOptions) *Store {
	return &Store{
		remote:  remote,
		storage: storage,
		opts:    opts,
		items: models.ItemsState{
			Routes:     []models.Route{},
			Favourites: []int{},
		},
	}
}

// Session

// Login validates credentials, authenticates against the remote API and
// persists the profile and token. The returned error is user-presentable.
func (s *Store) Login(ctx context.Context, creds models.LoginCredentials) (models.UserProfile, error) {
	if err := auth.ValidateCredentials(creds); err != nil {
		s.mu.Lock()
		s.auth.Error = err.Error()
		s.mu.Unlock()
		return models.UserProfile{}, err
	}

	s.mu.Lock()
	s.auth.Loading = true
	s.auth.Error = ""
	s.mu.Unlock()

	resp, err := s.remote.Login(ctx, creds)
	if err != nil {
		msg := api.UserMessage(err)
		slog.Warn("login failed", "username", creds.Username, "error", err)
		s.rejectLogin(msg)
		return models.UserProfile{}, &LoginError{Message: msg, Err: err}
	}

	profile := resp.Profile()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.persistSession(ctx, profile, resp.SessionToken()); err != nil {
		slog.Error("failed to persist session", "error", err)
		s.rejectLogin(MsgLoginFailed)
		return models.UserProfile{}, fmt.Errorf("%s: %w", MsgLoginFailed, err)
	}

	s.mu.Lock()
	s.auth = models.AuthState{IsAuthenticated: true, User: &profile}
	s.mu.Unlock()

	slog.Info("signed in", "username", profile.Username)
	return profile, nil
}

func (s *Store) rejectLogin(msg string) {
	s.mu.Lock()
	s.auth.Loading = false
	s.auth.Error = msg
	s.mu.Unlock()
}

func (s *Store) persistSession(ctx context.Context, profile models.UserProfile, token string) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(ctx, models.KeyUser, string(data)); err != nil {
		return err
	}
	if token != "" {
		if err := s.storage.SetItem(ctx, models.KeyToken, token); err != nil {
			return err
		}
	}
	return nil
}

// Logout clears the session and its persisted keys. State is cleared even
// when storage fails; the first storage error is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.auth.IsAuthenticated = false
	s.auth.User = nil
	s.mu.Unlock()

	var firstErr error
	for _, key := range []string{models.KeyUser, models.KeyToken} {
		if err := s.storage.RemoveItem(ctx, key); err != nil {
			slog.Error("failed to remove persisted key", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	slog.Info("signed out")
	return firstErr
}

// RestoreUser sets the session from a persisted profile; nil signs out
func (s *Store) RestoreUser(profile *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auth.IsAuthenticated = profile != nil
	if profile != nil {
		p := *profile
		s.auth.User = &p
	} else {
		s.auth.User = nil
	}
}

// Token returns the persisted session token, if any
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.storage.GetItem(ctx, models.KeyToken)
	if err != nil {
		slog.Warn("failed to read token", "error", err)
		return "", false
	}
	return token, ok && token != ""
}

// Routes

// FetchRoutes replaces the route list with a fresh fetch. On failure the
// previous list is kept and a generic error message is set.
func (s *Store) FetchRoutes(ctx context.Context) error {
	s.mu.Lock()
	s.items.Loading = true
	s.items.Error = ""
	s.mu.Unlock()

	routes, err := s.remote.GetRoutes(ctx, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Loading = false

	if err != nil {
		slog.Error("failed to fetch routes", "error", err)
		s.items.Error = MsgRoutesUnavailable
		return fmt.Errorf("%s: %w", MsgRoutesUnavailable, err)
	}

	if routes == nil {
		routes = []models.Route{}
	}
	s.items.Routes = routes
	slog.Debug("routes fetched", "count", len(routes))
	return nil
}

// RouteByID looks a route up in the current list
func (s *Store) RouteByID(id int) (models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.items.Routes {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Route{}, ErrRouteNotFound
}

// Favourites

// ToggleFavourite adds id if absent, removes it if present, and persists
// the set. It reports the new membership; a storage error does not undo it.
func (s *Store) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := slices.Index(s.items.Favourites, id)
	if idx == -1 {
		s.items.Favourites = append(s.items.Favourites, id)
	} else {
		s.items.Favourites = slices.Delete(s.items.Favourites, idx, idx+1)
	}
	favourite := idx == -1
	data, err := json.Marshal(s.items.Favourites)
	s.mu.Unlock()

	if err != nil {
		return favourite, err
	}
	if err := s.storage.SetItem(ctx, models.KeyFavourites, string(data)); err != nil {
		slog.Error("failed to persist favourites", "error", err)
		return favourite, err
	}
	return favourite, nil
}

// RestoreFavourites replaces the set; nil means empty. Duplicates are dropped.
func (s *Store) RestoreFavourites(ids []int) {
	favs := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(favs, id) {
			favs = append(favs, id)
		}
	}

	s.mu.Lock()
	s.items.Favourites = favs
	s.mu.Unlock()
}

func (s *Store) IsFavourite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.items.Favourites, id)
}

// FavouriteRoutes returns the routes in the current list that are
// favourites. Favourite ids with no matching route are skipped.
func (s *Store) FavouriteRoutes() []models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Route{}
	for _, r := range s.items.Routes {
		if slices.Contains(s.items.Favourites, r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Theme

// SetTheme sets and persists the dark mode flag
func (s *Store) SetTheme(ctx context.Context, dark bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.theme.IsDarkMode = dark
	s.mu.Unlock()

	return s.persistTheme(ctx, dark)
}

// ToggleTheme flips dark mode and returns the new value
func (s *Store) ToggleTheme(ctx context.Context) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.theme.IsDarkMode = !s.theme.IsDarkMode
	dark := s.theme.IsDarkMode
	s.mu.Unlock()

	return dark, s.persistTheme(ctx, dark)
}

func (s *Store) persistTheme(ctx context.Context, dark bool) error {
	data, _ := json.Marshal(dark)
	if err := s.storage.SetItem(ctx, models.KeyDarkMode, string(data)); err != nil {
		slog.Error("failed to persist theme", "error", err)
		return err
	}
	return nil
}

func (s *Store) restoreTheme(dark bool) {
	s.mu.Lock()
	s.theme.IsDarkMode = dark
	s.mu.Unlock()
}

// Snapshots

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.IsAuthenticated
}

func (s *Store) IsDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme.IsDarkMode
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.State{
		Auth:  s.auth,
		Items: s.items,
		Theme: s.theme,
	}
	if s.auth.User != nil {
		u := *s.auth.User
		st.Auth.User = &u
	}
	st.Items.Routes = slices.Clone(s.items.Routes)
	st.Items.Favourites = slices.Clone(s.items.Favourites)
	return st
}
