package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vkarimov/food-delivery/internal/handler"
	"vkarimov/food-delivery/internal/model"
	"vkarimov/food-delivery/internal/service"
	"vkarimov/food-delivery/internal/service/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogRepo struct {
	restaurants []model.Restaurant
	menu        map[int64][]model.MenuItem
}

func (f *fakeCatalogRepo) ListRestaurants(_ context.Context, cuisine string) ([]model.Restaurant, error) {
	if cuisine == "" {
		return f.restaurants, nil
	}
	out := []model.Restaurant{}
	for _, r := range f.restaurants {
		if strings.Contains(r.CuisineType, cuisine) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetRestaurant(_ context.Context, id int64) (*model.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			rest := r
			return &rest, nil
		}
	}
	return nil, model.ErrRestaurantNotFound
}

func (f *fakeCatalogRepo) ListMenu(_ context.Context, restaurantID int64) ([]model.MenuItem, error) {
	items := f.menu[restaurantID]
	if items == nil {
		items = []model.MenuItem{}
	}
	return items, nil
}

type fakeCartRepo struct {
	entries map[int64]map[int64]int // userID -> itemID -> quantity
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{entries: make(map[int64]map[int64]int)}
}

func (f *fakeCartRepo) Upsert(_ context.Context, userID, restaurantID, itemID int64, quantity int) error {
	if itemID == 404 {
		return model.ErrMenuItemNotFound
	}
	if f.entries[userID] == nil {
		f.entries[userID] = make(map[int64]int)
	}
	f.entries[userID][itemID] += quantity
	return nil
}

func (f *fakeCartRepo) ListRows(_ context.Context, userID int64) ([]model.CartRow, error) {
	rows := []model.CartRow{}
	var id int64
	for itemID, qty := range f.entries[userID] {
		id++
		rows = append(rows, model.CartRow{
			ID: id, UserID: userID, RestaurantID: 1, ItemID: itemID,
			Quantity: qty, ItemName: "Биг Бургер", Price: 350,
			RestaurantName: "Бургер Хаус",
		})
	}
	return rows, nil
}

func (f *fakeCartRepo) Remove(_ context.Context, userID, itemID int64) error {
	delete(f.entries[userID], itemID)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID int64) error {
	delete(f.entries, userID)
	return nil
}

func setup(t *testing.T) (*handler.Handler, *fakeCartRepo) {
	t.Helper()

	catalogRepo := &fakeCatalogRepo{
		restaurants: []model.Restaurant{
			{ID: 1, Name: "Бургер Хаус", CuisineType: "Фастфуд", DeliveryTime: 30, Lat: 59.9311, Lon: 30.3609},
			{ID: 2, Name: "Пицца Мания", CuisineType: "Пицца", DeliveryTime: 25, Lat: 60.0, Lon: 30.4},
		},
		menu: map[int64][]model.MenuItem{
			1: {
				{ID: 10, RestaurantID: 1, ItemName: "Биг Бургер", Price: 350, Category: "Основные блюда"},
				{ID: 11, RestaurantID: 1, ItemName: "Картофель фри", Price: 150, Category: "Гарниры"},
			},
		},
	}
	cartRepo := newFakeCartRepo()

	geocoder := geocode.NewClient(geocode.Config{APIURL: "http://127.0.0.1:0", UserAgent: "test"})

	h := handler.NewHandler(
		service.NewCatalogService(catalogRepo),
		service.NewCartService(cartRepo),
		geocoder,
		1,
	)
	return h, cartRepo
}

func doRequest(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListRestaurants(t *testing.T) {
	h, _ := setup(t)

	w := doRequest(h, http.MethodGet, "/restaurants", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.NotContains(t, got[0], "distance")
	assert.NotContains(t, got[0], "estimated_delivery")
}

func TestListRestaurants_WithLocation(t *testing.T) {
	h, _ := setup(t)

	w := doRequest(h, http.MethodGet, "/restaurants?lat=60.0&lon=30.4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)

	// Nearest first: the query point sits on restaurant 2.
	assert.Equal(t, "Пицца Мания", got[0]["name"])
	assert.Contains(t, got[0], "distance")
	assert.Contains(t, got[0], "estimated_delivery")
	assert.Equal(t, 0.0, got[0]["distance"])
}

func TestListRestaurants_BadCoordinates(t *testing.T) {
	h, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodGet, "/restaurants?lat=abc&lon=30.4", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodGet, "/restaurants?lat=60.0", nil).Code)
}

func TestRestaurantDetail(t *testing.T) {
	h, _ := setup(t)

	w := doRequest(h, http.MethodGet, "/restaurant/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Name string                      `json:"name"`
		Menu map[string][]model.MenuItem `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Бургер Хаус", got.Name)
	require.Len(t, got.Menu, 2)
	assert.Len(t, got.Menu["Основные блюда"], 1)
	assert.Len(t, got.Menu["Гарниры"], 1)
}

func TestRestaurantDetail_NotFound(t *testing.T) {
	h, _ := setup(t)

	assert.Equal(t, http.StatusNotFound, doRequest(h, http.MethodGet, "/restaurant/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodGet, "/restaurant/abc", nil).Code)
}

func TestMenu_UnknownRestaurantIsEmptyList(t *testing.T) {
	h, _ := setup(t)

	w := doRequest(h, http.MethodGet, "/menu/99", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestAddToCart(t *testing.T) {
	h, repo := setup(t)

	body, _ := json.Marshal(map[string]any{"restaurant_id": 1, "item_id": 10, "quantity": 2})
	w := doRequest(h, http.MethodPost, "/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])

	// No user_id in the body: the configured default user owns the entry.
	assert.Equal(t, 2, repo.entries[1][10])
}

func TestAddToCart_Validation(t *testing.T) {
	h, _ := setup(t)

	body, _ := json.Marshal(map[string]any{"restaurant_id": 1})
	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodPost, "/cart", body).Code)

	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodPost, "/cart", []byte("{invalid")).Code)

	body, _ = json.Marshal(map[string]any{"restaurant_id": 1, "item_id": 404})
	assert.Equal(t, http.StatusNotFound, doRequest(h, http.MethodPost, "/cart", body).Code)
}

func TestGetCart(t *testing.T) {
	h, _ := setup(t)

	body, _ := json.Marshal(map[string]any{"user_id": 5, "restaurant_id": 1, "item_id": 10, "quantity": 3})
	require.Equal(t, http.StatusOK, doRequest(h, http.MethodPost, "/cart", body).Code)

	w := doRequest(h, http.MethodGet, "/cart/5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Restaurants map[string]struct {
			Subtotal float64 `json:"subtotal"`
		} `json:"restaurants"`
		TotalAmount float64 `json:"total_amount"`
		TotalItems  int     `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Restaurants, 1)
	assert.Equal(t, 1050.0, got.Restaurants["1"].Subtotal)
	assert.Equal(t, 1050.0, got.TotalAmount)
	assert.Equal(t, 1, got.TotalItems)
}

func TestRemoveCartItem_Idempotent(t *testing.T) {
	h, repo := setup(t)

	body, _ := json.Marshal(map[string]any{"user_id": 2, "restaurant_id": 1, "item_id": 10})
	require.Equal(t, http.StatusOK, doRequest(h, http.MethodPost, "/cart", body).Code)

	assert.Equal(t, http.StatusOK, doRequest(h, http.MethodDelete, "/cart/item/10?user_id=2", nil).Code)
	assert.Empty(t, repo.entries[2])

	// Removing it again still succeeds.
	assert.Equal(t, http.StatusOK, doRequest(h, http.MethodDelete, "/cart/item/10?user_id=2", nil).Code)
}

func TestClearCart_EmptyBody(t *testing.T) {
	h, repo := setup(t)

	body, _ := json.Marshal(map[string]any{"restaurant_id": 1, "item_id": 10})
	require.Equal(t, http.StatusOK, doRequest(h, http.MethodPost, "/cart", body).Code)

	w := doRequest(h, http.MethodPost, "/cart/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.entries[1])
}

func TestEstimateRoute(t *testing.T) {
	h, _ := setup(t)

	body, _ := json.Marshal(map[string]any{
		"user_lat": 59.9311,
		"user_lon": 30.3609,
		"restaurants": []map[string]any{
			{"name": "Пицца Мания", "lat": 60.0, "lon": 30.4},
			{"name": "Бургер Хаус", "lat": 59.9311, "lon": 30.3609},
		},
	})
	w := doRequest(h, http.MethodPost, "/route", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Route []struct {
			RestaurantName string  `json:"restaurant_name"`
			DistanceKm     float64 `json:"distance_km"`
		} `json:"route"`
		TotalDistanceKm          float64 `json:"total_distance_km"`
		TotalDeliveryTimeMinutes int     `json:"total_delivery_time_minutes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Route, 2)
	assert.Equal(t, "Пицца Мания", got.Route[0].RestaurantName)
	assert.Greater(t, got.TotalDistanceKm, 0.0)
	assert.Greater(t, got.TotalDeliveryTimeMinutes, 40)
}

func TestEstimateRoute_MissingOrigin(t *testing.T) {
	h, _ := setup(t)

	body, _ := json.Marshal(map[string]any{"restaurants": []map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodPost, "/route", body).Code)
}

func TestGeocode_MissingAddress(t *testing.T) {
	h, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(h, http.MethodGet, "/geocode", nil).Code)
}

func TestHealthCheck(t *testing.T) {
	h, _ := setup(t)

	w := doRequest(h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
