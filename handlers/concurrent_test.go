// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/transit-routes/models"
)

// TestConcurrentFavouriteToggles verifies that simultaneous toggles of
// different routes neither lose nor duplicate ids, and that the persisted
// set matches memory once all requests finish
func TestConcurrentFavouriteToggles(t *testing.T) {
	st, _, storage := setupTestStore(t, 0)
	handler := NewFavouritesHandler(st)

	numRoutes := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 1; i <= numRoutes; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.Toggle(w, toggleRequest(strconv.Itoa(id)))
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numRoutes {
		t.Errorf("Expected %d successful toggles, got %d", numRoutes, successCount.Load())
	}

	favs := st.Snapshot().Items.Favourites
	if len(favs) != numRoutes {
		t.Fatalf("Expected %d favourites, got %d: %v", numRoutes, len(favs), favs)
	}
	sorted := slices.Clone(favs)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != numRoutes {
		t.Errorf("Found duplicate ids in %v", favs)
	}

	persisted, _, _ := storage.GetItem(context.Background(), models.KeyFavourites)
	var stored []int
	if err := json.Unmarshal([]byte(persisted), &stored); err != nil {
		t.Fatalf("Persisted favourites are not a JSON array: %v", err)
	}
	if !slices.Equal(stored, favs) {
		t.Errorf("Persisted %v does not match memory %v", stored, favs)
	}
}

// TestConcurrentSameRouteToggles flips one route an even number of times
// from many goroutines; it must end where it started
func TestConcurrentSameRouteToggles(t *testing.T) {
	st, _, _ := setupTestStore(t, 0)
	handler := NewFavouritesHandler(st)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.Toggle(httptest.NewRecorder(), toggleRequest("9"))
		}()
	}
	wg.Wait()

	if st.IsFavourite(9) {
		t.Error("Expected route 9 not to be a favourite after an even number of toggles")
	}
}

// TestConcurrentReadsDuringRefresh runs list requests while routes are
// being refreshed
func TestConcurrentReadsDuringRefresh(t *testing.T) {
	st, _, _ := setupTestStore(t, 30)
	routesHandler := NewRoutesHandler(st, getTestConfig())

	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			routesHandler.Refresh(w, httptest.NewRequest("POST", "/routes/refresh", nil))
			if w.Code != http.StatusOK {
				failures.Add(1)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			routesHandler.List(w, httptest.NewRequest("GET", "/routes", nil))

			var resp models.RoutesResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				failures.Add(1)
				return
			}
			// either before or after a refresh, never partial
			if len(resp.Routes) != 0 && len(resp.Routes) != 30 {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Got %d failed or partial responses", failures.Load())
	}
}
