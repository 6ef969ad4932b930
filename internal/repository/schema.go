package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		cuisine_type TEXT,
		rating DOUBLE PRECISION,
		delivery_time INT,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id BIGSERIAL PRIMARY KEY,
		restaurant_id BIGINT REFERENCES restaurants(id),
		item_name TEXT NOT NULL,
		description TEXT,
		price DOUBLE PRECISION NOT NULL,
		category TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL DEFAULT 1,
		restaurant_id BIGINT,
		item_id BIGINT REFERENCES menu_items(id),
		quantity INT NOT NULL,
		UNIQUE (user_id, item_id)
	)`,
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return runAtomic(ctx, pool, func(ctx context.Context) error {
		exec := executor(ctx, pool)
		for i, stmt := range schemaStatements {
			if _, err := exec.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
			}
		}
		return nil
	})
}

// ResetSchema drops and recreates the tables. Used by the seed tool,
// which rebuilds the catalog wholesale.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	drops := []string{
		`DROP TABLE IF EXISTS cart_items`,
		`DROP TABLE IF EXISTS menu_items`,
		`DROP TABLE IF EXISTS restaurants`,
	}
	for _, stmt := range drops {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	return InitSchema(ctx, pool)
}
