// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the transit-routes API.

# Handler Types

Each handler is a struct over the shared state container:

  - SessionHandler: Sign in, session status and sign out
  - RoutesHandler: Route list, refresh from the remote API, route details
  - FavouritesHandler: Favourite set listing and toggling
  - ThemeHandler: Light/dark flag

Handlers are created via constructor functions that accept *store.Store
(and Config where a handler needs it):

	routesHandler := handlers.NewRoutesHandler(st, cfg)

# Session

	POST   /session → Login (400 with field errors, 401 on bad credentials)
	GET    /session → Get
	DELETE /session → Logout (204)

A failed login never leaves a partial session; the error message in the
response body is the one a user should see.

# Routes and Favourites

	GET  /routes                 → List
	POST /routes/refresh         → Refresh (502 if the remote API fails)
	GET  /routes/{id}            → Get
	GET  /favourites             → List
	POST /favourites/{id}/toggle → Toggle

A failed refresh keeps the previous list. Favourite ids that no longer
match a loaded route stay in the set but are omitted from the routes
returned by GET /favourites.

# Theme

	GET  /theme        → Get
	PUT  /theme        → Put ({"dark_mode": bool})
	POST /theme/toggle → Toggle

Favourite and theme changes are applied in memory even when storage fails;
the failure is logged and the next change persists the full value again.
*/
package handlers
