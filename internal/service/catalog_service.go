package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"vkarimov/food-delivery/internal/geo"
	"vkarimov/food-delivery/internal/model"
)

// CatalogRepository is the read access the catalog service needs.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context, cuisine string) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*model.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// AnnotatedRestaurant is a restaurant with distance fields that are only
// present when the caller supplied a location.
type AnnotatedRestaurant struct {
	model.Restaurant
	Distance          *float64 `json:"distance,omitempty"`
	EstimatedDelivery *int     `json:"estimated_delivery,omitempty"`
}

// List returns restaurants matching the optional cuisine filter. When a user
// location is given, each result is annotated with its distance (km, one
// decimal) and a delivery estimate based on that restaurant's own base time,
// and the list is sorted by distance ascending. Without a location the
// storage order is preserved and the extra fields are absent.
func (s *CatalogService) List(ctx context.Context, cuisine string, loc *geo.Point) ([]AnnotatedRestaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx, cuisine)
	if err != nil {
		return nil, err
	}

	out := make([]AnnotatedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		annotated := AnnotatedRestaurant{Restaurant: r}
		if loc != nil {
			d := geo.Distance(loc.Lat, loc.Lon, r.Lat, r.Lon)
			rounded := geo.RoundKm(d)
			estimate := geo.DeliveryTimeMinutes(d, r.DeliveryTime)
			annotated.Distance = &rounded
			annotated.EstimatedDelivery = &estimate
		}
		out = append(out, annotated)
	}

	if loc != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].Distance < *out[j].Distance
		})
	}
	return out, nil
}

// RestaurantDetail is a restaurant together with its menu grouped by category.
type RestaurantDetail struct {
	model.Restaurant
	Menu *MenuByCategory `json:"menu"`
}

// Detail returns a restaurant and its menu grouped by category.
// Returns model.ErrRestaurantNotFound for an unknown id.
func (s *CatalogService) Detail(ctx context.Context, id int64) (*RestaurantDetail, error) {
	restaurant, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	menu := NewMenuByCategory()
	for _, item := range items {
		menu.Add(item)
	}

	return &RestaurantDetail{Restaurant: *restaurant, Menu: menu}, nil
}

// Menu returns the raw menu of a restaurant. An unknown or empty restaurant
// yields an empty list.
func (s *CatalogService) Menu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	return s.repo.ListMenu(ctx, restaurantID)
}

// MenuByCategory groups menu items by category label while preserving the
// order in which categories are first seen. A plain map would lose that
// order when marshalled (encoding/json sorts map keys).
type MenuByCategory struct {
	categories []string
	items      map[string][]model.MenuItem
}

func NewMenuByCategory() *MenuByCategory {
	return &MenuByCategory{items: make(map[string][]model.MenuItem)}
}

func (m *MenuByCategory) Add(item model.MenuItem) {
	if _, ok := m.items[item.Category]; !ok {
		m.categories = append(m.categories, item.Category)
	}
	m.items[item.Category] = append(m.items[item.Category], item)
}

// Categories returns the category labels in first-seen order.
func (m *MenuByCategory) Categories() []string {
	return m.categories
}

// Items returns the items of one category in insertion order.
func (m *MenuByCategory) Items(category string) []model.MenuItem {
	return m.items[category]
}

func (m *MenuByCategory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, category := range m.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.items[category])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
