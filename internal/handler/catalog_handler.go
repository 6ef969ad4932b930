package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"vkarimov/food-delivery/internal/geo"
	"vkarimov/food-delivery/internal/model"

	"github.com/go-chi/chi/v5"
)

// ListRestaurants handles GET /restaurants?cuisine=&lat=&lon=.
// lat and lon must be supplied together; when present the results carry
// distance annotations and are sorted nearest-first.
func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	cuisine := r.URL.Query().Get("cuisine")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var loc *geo.Point
	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			writeError(w, r, http.StatusBadRequest, "lat and lon must be supplied together")
			return
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid lat")
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid lon")
			return
		}
		loc = &geo.Point{Lat: lat, Lon: lon}
	}

	restaurants, err := h.catalog.List(r.Context(), cuisine, loc)
	if err != nil {
		log.Printf("list restaurants failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, restaurants)
}

// RestaurantDetail handles GET /restaurant/{id}.
func (h *Handler) RestaurantDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	detail, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			writeError(w, r, http.StatusNotFound, "restaurant not found")
			return
		}
		log.Printf("restaurant detail failed: id=%d err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, detail)
}

// Menu handles GET /menu/{restaurantID}. Unknown restaurants yield an
// empty list rather than an error.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "restaurantID"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	items, err := h.catalog.Menu(r.Context(), restaurantID)
	if err != nil {
		log.Printf("menu failed: restaurant=%d err=%v", restaurantID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, items)
}
