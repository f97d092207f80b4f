package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pizza-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderColumns     = []string{"id", "identity_token", "customer_info", "status", "total", "created_at", "updated_at"}
	orderItemColumns = append([]string{"order_id"}, lineColumns...)
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewOrderRepo(db), mock
}

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:       "Dana Whitfield",
		Phone:      "312-555-0147",
		Email:      "dana@example.com",
		Address:    "1060 W Addison St",
		City:       "Chicago",
		ZipCode:    "60613",
		CardNumber: "**** **** **** 4242",
		CardExpiry: "12/29",
	}
}

func testOrder() *models.Order {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Order{
		ID:            uuid.New(),
		IdentityToken: identity,
		Items: []models.CartItem{
			{ID: "pepperoni", Name: "Pepperoni", Price: dec("17.00"), Quantity: 2, Size: "Medium"},
		},
		Customer:  testCustomer(),
		Status:    models.OrderStatusInProgress,
		Total:     dec("34.00"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	insertOrderSQL := regexp.QuoteMeta(`INSERT INTO orders (id, identity_token, phone_number, customer_info, status, total, created_at, updated_at)`)
	insertItemSQL := regexp.QuoteMeta(`INSERT INTO order_items (order_id, position, product_id, product_name, price, quantity, size, toppings, removed_toppings)`)

	t.Run("Success - header and lines in one transaction", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := testOrder()
		customerJSON, err := json.Marshal(order.Customer)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(insertOrderSQL).
			WithArgs(order.ID, identity, "312-555-0147", customerJSON, models.OrderStatusInProgress, order.Total, order.CreatedAt, order.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertItemSQL).
			WithArgs(order.ID, 0, "pepperoni", "Pepperoni", dec("17.00"), 2, "Medium", nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err = repo.CreateOrder(t.Context(), order)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - item insert error leaves nothing behind", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := testOrder()

		mock.ExpectBegin()
		mock.ExpectExec(insertOrderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertItemSQL).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert an order item")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - commit error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := testOrder()

		mock.ExpectBegin()
		mock.ExpectExec(insertOrderSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertItemSQL).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit order")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`SELECT id, identity_token, customer_info, status, total, created_at, updated_at FROM orders WHERE id = $1`)
	itemsSQL := regexp.QuoteMeta(`FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := testOrder()
		customerJSON, err := json.Marshal(order.Customer)
		require.NoError(t, err)

		mock.ExpectQuery(selectSQL).WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(order.ID.String(), identity, customerJSON, "in_progress", "34.00", order.CreatedAt, order.UpdatedAt))
		mock.ExpectQuery(itemsSQL).WithArgs(pq.Array([]string{order.ID.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(order.ID.String(), "pepperoni", "Pepperoni", "17.00", 2, "Medium", nil, nil))

		// Act
		got, err := repo.GetOrderByID(t.Context(), order.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, identity, got.IdentityToken)
		assert.Equal(t, models.OrderStatusInProgress, got.Status)
		assert.True(t, dec("34").Equal(got.Total))
		assert.Equal(t, order.Customer, got.Customer)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		mock.ExpectQuery(selectSQL).WithArgs(id).WillReturnRows(sqlmock.NewRows(orderColumns))

		// Act
		got, err := repo.GetOrderByID(t.Context(), id)

		// Assert
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_ListOrders(t *testing.T) {
	itemsSQL := regexp.QuoteMeta(`FROM order_items WHERE order_id = ANY($1::uuid[])`)

	t.Run("Success - status filter, newest first", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		newer, older := testOrder(), testOrder()
		customerJSON, err := json.Marshal(newer.Customer)
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE status = $1`)).
			WithArgs(models.OrderStatusInProgress).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
			WithArgs(models.OrderStatusInProgress, 10, 10).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(newer.ID.String(), identity, customerJSON, "in_progress", "34.00", newer.CreatedAt, newer.UpdatedAt).
				AddRow(older.ID.String(), identity, customerJSON, "in_progress", "34.00", older.CreatedAt, older.UpdatedAt))
		mock.ExpectQuery(itemsSQL).
			WithArgs(pq.Array([]string{newer.ID.String(), older.ID.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(newer.ID.String(), "pepperoni", "Pepperoni", "17.00", 2, "Medium", nil, nil).
				AddRow(older.ID.String(), "cheese", "Classic Cheese", "14.99", 1, nil, nil, nil).
				AddRow(older.ID.String(), "cannoli", "Cannoli", "5.99", 2, nil, nil, nil))

		// Act
		orders, total, err := repo.ListOrders(t.Context(), models.OrderFilter{Status: models.OrderStatusInProgress}, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
		assert.Len(t, orders[0].Items, 1)
		assert.Len(t, orders[1].Items, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - identity filter with no orders skips the item query", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE identity_token = $1`)).
			WithArgs(identity).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE identity_token = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
			WithArgs(identity, 20, 0).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		// Act
		orders, total, err := repo.ListOrders(t.Context(), models.OrderFilter{IdentityToken: identity}, 1, 20)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - count error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).WillReturnError(errors.New("timeout"))

		// Act
		_, _, err := repo.ListOrders(t.Context(), models.OrderFilter{}, 1, 20)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count orders")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		updatedAt := time.Now().UTC().Truncate(time.Second)
		mock.ExpectQuery(updateSQL).WithArgs(models.OrderStatusCompleted, id).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))

		// Act
		got, err := repo.UpdateOrderStatus(t.Context(), id, models.OrderStatusCompleted)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, updatedAt, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		mock.ExpectQuery(updateSQL).WithArgs(models.OrderStatusCompleted, id).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		// Act
		_, err := repo.UpdateOrderStatus(t.Context(), id, models.OrderStatusCompleted)

		// Assert
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_DeleteOrder(t *testing.T) {
	deleteSQL := regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteOrder(t.Context(), id))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)
		id := uuid.New()
		mock.ExpectExec(deleteSQL).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteOrder(t.Context(), id), repository.ErrOrderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
