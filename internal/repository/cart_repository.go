package repository

import (
	"context"
	"errors"
	"fmt"

	"vkarimov/food-delivery/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for foreign_key_violation.
const fkViolation = "23503"

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert adds an item to the user's cart. A repeated (user, item) pair
// increments the stored quantity in a single atomic statement, so a
// concurrent double-add cannot duplicate the row.
func (r *CartRepository) Upsert(ctx context.Context, userID, restaurantID, itemID int64, quantity int) error {
	_, err := executor(ctx, r.db).Exec(ctx, `
		INSERT INTO cart_items (user_id, restaurant_id, item_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, restaurantID, itemID, quantity,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return model.ErrMenuItemNotFound
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// ListRows returns the user's cart entries joined with menu and restaurant data.
func (r *CartRepository) ListRows(ctx context.Context, userID int64) ([]model.CartRow, error) {
	rows, err := executor(ctx, r.db).Query(ctx, `
		SELECT c.id, c.user_id, c.restaurant_id, c.item_id, c.quantity,
		       m.item_name, m.description, m.price, m.category,
		       r.name, r.address, r.lat, r.lon
		FROM cart_items c
		JOIN menu_items m ON c.item_id = m.id
		JOIN restaurants r ON c.restaurant_id = r.id
		WHERE c.user_id = $1
		ORDER BY c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart rows: %w", err)
	}
	defer rows.Close()

	out := make([]model.CartRow, 0, 8)
	for rows.Next() {
		var row model.CartRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.RestaurantID, &row.ItemID, &row.Quantity,
			&row.ItemName, &row.Description, &row.Price, &row.Category,
			&row.RestaurantName, &row.Address, &row.Lat, &row.Lon,
		); err != nil {
			return nil, fmt.Errorf("list cart rows: scan row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Remove deletes the entry matching both keys. Deleting a missing entry is a no-op.
func (r *CartRepository) Remove(ctx context.Context, userID, itemID int64) error {
	_, err := executor(ctx, r.db).Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND item_id = $2`,
		userID, itemID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Clear deletes every entry for the user. Clearing an empty cart is a no-op.
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := executor(ctx, r.db).Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
