package service

import (
	"context"

	"vkarimov/food-delivery/internal/model"
)

// CartRepository is the cart storage the cart service needs.
type CartRepository interface {
	Upsert(ctx context.Context, userID, restaurantID, itemID int64, quantity int) error
	ListRows(ctx context.Context, userID int64) ([]model.CartRow, error)
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type CartService struct {
	repo CartRepository
}

func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

// RestaurantGroup is one restaurant's slice of the cart.
type RestaurantGroup struct {
	RestaurantName    string          `json:"restaurant_name"`
	RestaurantAddress string          `json:"restaurant_address"`
	Lat               float64         `json:"lat"`
	Lon               float64         `json:"lon"`
	Items             []model.CartRow `json:"items"`
	Subtotal          float64         `json:"subtotal"`
}

// CartSummary is the cart grouped by restaurant with aggregate totals.
// TotalItems counts cart rows, not summed quantities.
type CartSummary struct {
	Restaurants map[int64]*RestaurantGroup `json:"restaurants"`
	TotalAmount float64                    `json:"total_amount"`
	TotalItems  int                        `json:"total_items"`
}

// Add puts an item in the user's cart, merging with an existing entry for
// the same item. A non-positive quantity defaults to 1.
func (s *CartService) Add(ctx context.Context, userID, restaurantID, itemID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	return s.repo.Upsert(ctx, userID, restaurantID, itemID, quantity)
}

// Get returns the user's cart grouped by restaurant. An empty cart yields
// an empty restaurant map and zero totals.
func (s *CartService) Get(ctx context.Context, userID int64) (*CartSummary, error) {
	rows, err := s.repo.ListRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Restaurants: make(map[int64]*RestaurantGroup)}
	for _, row := range rows {
		group, ok := summary.Restaurants[row.RestaurantID]
		if !ok {
			group = &RestaurantGroup{
				RestaurantName:    row.RestaurantName,
				RestaurantAddress: row.Address,
				Lat:               row.Lat,
				Lon:               row.Lon,
				Items:             make([]model.CartRow, 0, 4),
			}
			summary.Restaurants[row.RestaurantID] = group
		}

		lineTotal := row.Price * float64(row.Quantity)
		group.Items = append(group.Items, row)
		group.Subtotal += lineTotal
		summary.TotalAmount += lineTotal
	}
	summary.TotalItems = len(rows)

	return summary, nil
}

// Remove deletes one item from the user's cart. Removing an absent item is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.repo.Remove(ctx, userID, itemID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
