package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils"
)

// ErrMalformedCart means a stored line could not be decoded.
var ErrMalformedCart = errors.New("malformed cart data")

type CartRepository interface {
	GetItems(ctx context.Context, identity string) ([]models.CartItem, error)
	ReplaceItems(ctx context.Context, identity string, items []models.CartItem) error
	ClearItems(ctx context.Context, identity string) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetItems returns the identity's lines in the order they were added. A
// cart that was never written is empty, not missing.
func (r *cartRepository) GetItems(ctx context.Context, identity string) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, product_name, price, quantity, size, toppings, removed_toppings
		FROM cart_items
		WHERE identity_token = $1
		ORDER BY position
	`

	rows, err := r.DB.QueryContext(dbCtx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		var row lineRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item, err := row.toCartItem()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCart, err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// ReplaceItems overwrites the identity's cart with items in one transaction.
func (r *cartRepository) ReplaceItems(ctx context.Context, identity string, items []models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE identity_token = $1`, identity); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	query := `
		INSERT INTO cart_items (identity_token, position, product_id, product_name, price, quantity, size, toppings, removed_toppings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i, item := range items {
		size, toppings, removed, err := lineArgs(item)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(dbCtx, query, identity, i, item.ID, item.Name, item.Price, item.Quantity, size, toppings, removed)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearItems(ctx context.Context, identity string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE identity_token = $1`, identity); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
