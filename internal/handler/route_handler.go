package handler

import (
	"encoding/json"
	"net/http"

	"vkarimov/food-delivery/internal/geo"
	"vkarimov/food-delivery/internal/service"
)

type routeRequest struct {
	UserLat     *float64                 `json:"user_lat"`
	UserLon     *float64                 `json:"user_lon"`
	Restaurants []service.RouteStopInput `json:"restaurants"`
}

// EstimateRoute handles POST /route. The restaurants are visited in the
// order given; an empty list yields empty stops and zero totals.
func (h *Handler) EstimateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserLat == nil || req.UserLon == nil {
		writeError(w, r, http.StatusBadRequest, "user_lat and user_lon are required")
		return
	}

	origin := geo.Point{Lat: *req.UserLat, Lon: *req.UserLon}
	estimate := service.EstimateRoute(origin, req.Restaurants)

	writeJSON(w, r, http.StatusOK, estimate)
}
