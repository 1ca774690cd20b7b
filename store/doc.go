// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the client-side state container.

# State

Three slices, each with its own operations:

  - auth: Login, Logout, RestoreUser
  - items: FetchRoutes, ToggleFavourite, RestoreFavourites
  - theme: SetTheme, ToggleTheme

Snapshot returns a copy of all three. FavouriteRoutes, RouteByID and
IsFavourite answer the questions the front ends ask most.

# Session Lifecycle

	signed out --Login ok--> signed in --Logout--> signed out

There is no intermediate state, token refresh or expiry handling. A failed
login leaves the session signed out with a user-facing message in
AuthState.Error. Remote failures come back as *LoginError, whose message is
the user-facing one and which unwraps to the api error.

# Persistence

Every mutation that matters across restarts is written immediately:

	Login            user, token
	Logout           user, token removed
	ToggleFavourite  favourites (JSON array)
	SetTheme         darkMode (JSON boolean)

Hydrate reads user, favourites and darkMode concurrently at startup and
falls back to defaults for anything missing or malformed:

	st := store.New(client, storage, api.ListOptions{Limit: 30})
	st.Hydrate(ctx)

# Concurrency

The store is safe for concurrent use. State changes happen under a mutex;
remote calls and storage writes happen outside it, so a slow network call
never blocks readers.
*/
package store
