package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const DefaultPingTimeout = 5 * time.Second

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		identity_token   TEXT NOT NULL,
		position         INT NOT NULL,
		product_id       TEXT NOT NULL,
		product_name     TEXT NOT NULL,
		price            NUMERIC(10,2) NOT NULL,
		quantity         INT NOT NULL CHECK (quantity > 0),
		size             TEXT,
		toppings         JSONB,
		removed_toppings TEXT[],
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_identity ON cart_items (identity_token, position)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             UUID PRIMARY KEY,
		identity_token TEXT NOT NULL,
		phone_number   TEXT NOT NULL,
		customer_info  JSONB NOT NULL,
		status         TEXT NOT NULL CHECK (status IN ('in_progress', 'completed')),
		total          NUMERIC(10,2) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_identity ON orders (identity_token, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id         UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		position         INT NOT NULL,
		product_id       TEXT NOT NULL,
		product_name     TEXT NOT NULL,
		price            NUMERIC(10,2) NOT NULL,
		quantity         INT NOT NULL CHECK (quantity > 0),
		size             TEXT,
		toppings         JSONB,
		removed_toppings TEXT[],
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id, position)`,
}

// InitSchema creates the tables the storefront needs. It is safe to run on
// every start.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
