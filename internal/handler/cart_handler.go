package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"vkarimov/food-delivery/internal/model"

	"github.com/go-chi/chi/v5"
)

type addToCartRequest struct {
	UserID       *int64 `json:"user_id"`
	RestaurantID int64  `json:"restaurant_id"`
	ItemID       int64  `json:"item_id"`
	Quantity     int    `json:"quantity"` // Optional, defaults to 1 if 0
}

// AddToCart handles POST /cart. Re-adding the same item merges quantities
// into the existing entry.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RestaurantID == 0 || req.ItemID == 0 {
		writeError(w, r, http.StatusBadRequest, "restaurant_id and item_id are required")
		return
	}

	userID := h.defaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	if err := h.cart.Add(r.Context(), userID, req.RestaurantID, req.ItemID, req.Quantity); err != nil {
		if errors.Is(err, model.ErrMenuItemNotFound) {
			writeError(w, r, http.StatusNotFound, "menu item not found")
			return
		}
		log.Printf("add to cart failed: user=%d item=%d err=%v", userID, req.ItemID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success", Message: "Item added to cart"})
}

// GetCart handles GET /cart/{userID}.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	summary, err := h.cart.Get(r.Context(), userID)
	if err != nil {
		log.Printf("get cart failed: user=%d err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}

// RemoveCartItem handles DELETE /cart/item/{itemID}?user_id=.
// Removing an item that is not in the cart still succeeds.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid item id")
		return
	}

	userID := h.defaultUserID
	if v := r.URL.Query().Get("user_id"); v != "" {
		userID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid user_id")
			return
		}
	}

	if err := h.cart.Remove(r.Context(), userID, itemID); err != nil {
		log.Printf("remove cart item failed: user=%d item=%d err=%v", userID, itemID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success", Message: "Item removed from cart"})
}

type clearCartRequest struct {
	UserID *int64 `json:"user_id"`
}

// ClearCart handles POST /cart/clear. The body is optional; without it the
// configured default user's cart is cleared.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	var req clearCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := h.defaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	if err := h.cart.Clear(r.Context(), userID); err != nil {
		log.Printf("clear cart failed: user=%d err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, statusResponse{Status: "success", Message: "Cart cleared"})
}
