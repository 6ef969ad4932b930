package handler

import (
	"errors"
	"log"
	"net/http"

	"vkarimov/food-delivery/internal/service/geocode"
)

type geocodeResponse struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Geocode handles GET /geocode?address=. The storefront uses it to turn a
// street address into the coordinates the other endpoints expect.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	point, err := h.geocoder.Resolve(r.Context(), address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			writeError(w, r, http.StatusNotFound, "address not found")
			return
		}
		log.Printf("geocode failed: address=%q err=%v", address, err)
		writeError(w, r, http.StatusBadGateway, "geocoding service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, geocodeResponse{Address: address, Lat: point.Lat, Lon: point.Lon})
}
