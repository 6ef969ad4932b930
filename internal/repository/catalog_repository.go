package repository

import (
	"context"
	"errors"
	"fmt"

	"vkarimov/food-delivery/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// RunAtomic executes a function within a transaction
func (r *CatalogRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return runAtomic(ctx, r.db, fn)
}

// ListRestaurants returns all restaurants, optionally restricted to those
// whose cuisine label contains the filter as a case-sensitive substring.
func (r *CatalogRepository) ListRestaurants(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT id, name, address, cuisine_type, rating, delivery_time, lat, lon, description
		FROM restaurants
		WHERE $1 = '' OR cuisine_type LIKE '%' || $1 || '%'
		ORDER BY id`,
		cuisine,
	)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := make([]model.Restaurant, 0, 32)
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(
			&rest.ID, &rest.Name, &rest.Address, &rest.CuisineType, &rest.Rating,
			&rest.DeliveryTime, &rest.Lat, &rest.Lon, &rest.Description,
		); err != nil {
			return nil, fmt.Errorf("list restaurants: scan row: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

// GetRestaurant returns a single restaurant by id.
func (r *CatalogRepository) GetRestaurant(ctx context.Context, id int64) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := executor(ctx, r.db).QueryRow(ctx, `
		SELECT id, name, address, cuisine_type, rating, delivery_time, lat, lon, description
		FROM restaurants
		WHERE id = $1`,
		id,
	).Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.CuisineType, &rest.Rating,
		&rest.DeliveryTime, &rest.Lat, &rest.Lon, &rest.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return &rest, nil
}

// ListMenu returns the menu items of a restaurant in insertion order.
// An unknown restaurant yields an empty list, not an error.
func (r *CatalogRepository) ListMenu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT id, restaurant_id, item_name, description, price, category
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY id`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list menu for restaurant %d: %w", restaurantID, err)
	}
	defer rows.Close()

	items := make([]model.MenuItem, 0, 16)
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(
			&item.ID, &item.RestaurantID, &item.ItemName,
			&item.Description, &item.Price, &item.Category,
		); err != nil {
			return nil, fmt.Errorf("list menu: scan row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// InsertRestaurant inserts a restaurant and returns its id. Used by the seed tool.
func (r *CatalogRepository) InsertRestaurant(ctx context.Context, rest *model.Restaurant) (int64, error) {
	var id int64
	err := executor(ctx, r.db).QueryRow(ctx, `
		INSERT INTO restaurants (name, address, cuisine_type, rating, delivery_time, lat, lon, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		rest.Name, rest.Address, rest.CuisineType, rest.Rating,
		rest.DeliveryTime, rest.Lat, rest.Lon, rest.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert restaurant: %w", err)
	}
	return id, nil
}

// InsertMenuItem inserts a menu item. Used by the seed tool.
func (r *CatalogRepository) InsertMenuItem(ctx context.Context, item *model.MenuItem) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO menu_items (restaurant_id, item_name, description, price, category)
		VALUES ($1, $2, $3, $4, $5)`,
		item.RestaurantID, item.ItemName, item.Description, item.Price, item.Category,
	)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}
