// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/transit-routes/middleware"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/store"
)

type FavouritesHandler struct {
	store *store.Store
}

func NewFavouritesHandler(st *store.Store) *FavouritesHandler {
	return &FavouritesHandler{store: st}
}

// List handles GET /favourites
// ids holds the whole set; routes only those present in the current list.
func (h *FavouritesHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := h.store.Snapshot().Items.Favourites
	routes := h.store.FavouriteRoutes()

	middleware.JSONResponse(w, http.StatusOK, models.FavouritesResponse{
		IDs:    ids,
		Routes: routes,
		Count:  len(routes),
	})
}

// Toggle handles POST /favourites/{id}/toggle
func (h *FavouritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	favourite, err := h.store.ToggleFavourite(r.Context(), id)
	if err != nil {
		// the in-memory set has changed; it is persisted on the next toggle
		slog.Warn("favourite toggled but not persisted", "route_id", id, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ToggleFavouriteResponse{
		ID:         id,
		Favourite:  favourite,
		Favourites: h.store.Snapshot().Items.Favourites,
	})
}
