package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"vkarimov/food-delivery/internal/service"
	"vkarimov/food-delivery/internal/service/geocode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	router *chi.Mux

	catalog  *service.CatalogService
	cart     *service.CartService
	geocoder *geocode.Client

	// Applied when a request carries no user_id (single-user mode).
	defaultUserID int64
}

func NewHandler(catalog *service.CatalogService, cart *service.CartService, geocoder *geocode.Client, defaultUserID int64) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	h := &Handler{
		router:        router,
		catalog:       catalog,
		cart:          cart,
		geocoder:      geocoder,
		defaultUserID: defaultUserID,
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.router.Get("/health", h.HealthCheck)

	h.router.Get("/restaurants", h.ListRestaurants)
	h.router.Get("/restaurant/{id}", h.RestaurantDetail)
	h.router.Get("/menu/{restaurantID}", h.Menu)

	h.router.Post("/cart", h.AddToCart)
	h.router.Get("/cart/{userID}", h.GetCart)
	h.router.Delete("/cart/item/{itemID}", h.RemoveCartItem)
	h.router.Post("/cart/clear", h.ClearCart)

	h.router.Post("/route", h.EstimateRoute)
	h.router.Get("/geocode", h.Geocode)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
