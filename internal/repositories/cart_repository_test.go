package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pizza-storefront/internal/repositories"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identity = "6f1c2a9e-8d0b-4c55-a1e3-7b9d2f4c8e10"

var lineColumns = []string{"product_id", "product_name", "price", "quantity", "size", "toppings", "removed_toppings"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

func TestCartRepository_GetItems(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`SELECT product_id, product_name, price, quantity, size, toppings, removed_toppings FROM cart_items WHERE identity_token = $1 ORDER BY position`)

	t.Run("Success - lines in position order", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		rows := sqlmock.NewRows(lineColumns).
			AddRow("cheese", "Classic Cheese", "17.00", 2, "Large", []byte(`[{"name":"Bacon","price":"2","added":true}]`), nil).
			AddRow("pepperoni", "Pepperoni", "16.99", 1, "Medium", []byte(`[{"name":"Pepperoni","price":"0","removed":true}]`), "{Pepperoni}").
			AddRow("cannoli", "Cannoli", "5.99", 3, nil, nil, nil)
		mock.ExpectQuery(selectSQL).WithArgs(identity).WillReturnRows(rows)

		// Act
		items, err := repo.GetItems(t.Context(), identity)

		// Assert
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "cheese", items[0].ID)
		assert.True(t, dec("17").Equal(items[0].Price))
		require.Len(t, items[0].Toppings, 1)
		assert.Equal(t, "Bacon", items[0].Toppings[0].Name)
		assert.True(t, items[0].Toppings[0].Added)

		assert.Equal(t, []string{"Pepperoni"}, items[1].RemovedToppings)
		assert.True(t, items[1].Toppings[0].Removed)

		assert.Empty(t, items[2].Size)
		assert.Nil(t, items[2].Toppings)
		assert.Nil(t, items[2].RemovedToppings)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - empty cart is not an error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectQuery(selectSQL).WithArgs(identity).WillReturnRows(sqlmock.NewRows(lineColumns))

		// Act
		items, err := repo.GetItems(t.Context(), identity)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - malformed toppings", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		rows := sqlmock.NewRows(lineColumns).AddRow("cheese", "Classic Cheese", "15.00", 1, nil, []byte(`{not json`), nil)
		mock.ExpectQuery(selectSQL).WithArgs(identity).WillReturnRows(rows)

		// Act
		items, err := repo.GetItems(t.Context(), identity)

		// Assert
		require.Error(t, err)
		assert.Nil(t, items)
		assert.ErrorIs(t, err, repository.ErrMalformedCart)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		dbErr := errors.New("connection refused")
		mock.ExpectQuery(selectSQL).WithArgs(identity).WillReturnError(dbErr)

		// Act
		_, err := repo.GetItems(t.Context(), identity)

		// Assert
		require.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, repository.ErrMalformedCart)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_ReplaceItems(t *testing.T) {
	deleteSQL := regexp.QuoteMeta(`DELETE FROM cart_items WHERE identity_token = $1`)
	insertSQL := regexp.QuoteMeta(`INSERT INTO cart_items (identity_token, position, product_id, product_name, price, quantity, size, toppings, removed_toppings)`)

	toppings := []models.ToppingItem{{Name: "Pepperoni", Price: decimal.Zero, Removed: true}}
	items := []models.CartItem{
		{ID: "pepperoni", Name: "Pepperoni", Price: dec("16.99"), Quantity: 2, Size: "Medium", Toppings: toppings, RemovedToppings: []string{"Pepperoni"}},
		{ID: "soft-drinks", Name: "Soft Drinks", Price: dec("2.99"), Quantity: 1},
	}

	toppingsJSON, err := json.Marshal(toppings)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(identity).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(insertSQL).
			WithArgs(identity, 0, "pepperoni", "Pepperoni", dec("16.99"), 2, "Medium", toppingsJSON, pq.Array([]string{"Pepperoni"})).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertSQL).
			WithArgs(identity, 1, "soft-drinks", "Soft Drinks", dec("2.99"), 1, nil, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.ReplaceItems(t.Context(), identity, items)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - empty cart only deletes", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(identity).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		// Act
		err := repo.ReplaceItems(t.Context(), identity, []models.CartItem{})

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - insert error rolls back", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(identity).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insertSQL).WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		// Act
		err := repo.ReplaceItems(t.Context(), identity, items)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert cart item")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_ClearItems(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE identity_token = $1`)).
		WithArgs(identity).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ClearItems(t.Context(), identity)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
