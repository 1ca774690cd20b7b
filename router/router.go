// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/transit-routes/cliparse"
	"github.com/danielhkuo/transit-routes/handlers"
	"github.com/danielhkuo/transit-routes/middleware"
	"github.com/danielhkuo/transit-routes/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st)
	routesHandler := handlers.NewRoutesHandler(st, cfg)
	favouritesHandler := handlers.NewFavouritesHandler(st)
	themeHandler := handlers.NewThemeHandler(st)

	// signedIn gates everything behind the login screen
	signedIn := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(st, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session (public)
	mux.HandleFunc("POST /session", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("DELETE /session", middleware.WithLogging(sessionHandler.Logout))

	// Routes
	mux.HandleFunc("GET /routes", signedIn(routesHandler.List))
	mux.HandleFunc("POST /routes/refresh", signedIn(routesHandler.Refresh))
	mux.HandleFunc("GET /routes/{id}", signedIn(routesHandler.Get))

	// Favourites
	mux.HandleFunc("GET /favourites", signedIn(favouritesHandler.List))
	mux.HandleFunc("POST /favourites/{id}/toggle", signedIn(favouritesHandler.Toggle))

	// Theme
	mux.HandleFunc("GET /theme", signedIn(themeHandler.Get))
	mux.HandleFunc("PUT /theme", signedIn(themeHandler.Put))
	mux.HandleFunc("POST /theme/toggle", signedIn(themeHandler.Toggle))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("transit-routes API v1"))
	})

	return middleware.CORS(mux)
}
