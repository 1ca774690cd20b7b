// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/transit-routes/cliparse"
	"github.com/danielhkuo/transit-routes/middleware"
	"github.com/danielhkuo/transit-routes/models"
	"github.com/danielhkuo/transit-routes/store"
)

type RoutesHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewRoutesHandler(st *store.Store, cfg cliparse.Config) *RoutesHandler {
	return &RoutesHandler{store: st, cfg: cfg}
}

// List handles GET /routes
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, routesResponse(h.store.Snapshot()))
}

// Refresh handles POST /routes/refresh
// A failed fetch keeps the previous list and answers 502 with the user message.
func (h *RoutesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.cfg.HTTPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.HTTPTimeout)
		defer cancel()
	}

	if err := h.store.FetchRoutes(ctx); err != nil {
		middleware.ErrorResponse(w, http.StatusBadGateway, store.MsgRoutesUnavailable)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, routesResponse(h.store.Snapshot()))
}

// Get handles GET /routes/{id}
func (h *RoutesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	route, err := h.store.RouteByID(id)
	if errors.Is(err, store.ErrRouteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RouteDetail{
		Route:       route,
		IsFavourite: h.store.IsFavourite(id),
	})
}

func routesResponse(snap models.State) models.RoutesResponse {
	details := make([]models.RouteDetail, len(snap.Items.Routes))
	favs := make(map[int]bool, len(snap.Items.Favourites))
	for _, id := range snap.Items.Favourites {
		favs[id] = true
	}
	for i, route := range snap.Items.Routes {
		details[i] = models.RouteDetail{Route: route, IsFavourite: favs[route.ID]}
	}

	return models.RoutesResponse{
		Routes:  details,
		Loading: snap.Items.Loading,
		Error:   snap.Items.Error,
	}
}

// routeID parses the {id} path value, answering 400 when it is not an integer
func routeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "route id must be an integer")
		return 0, false
	}
	return id, true
}
