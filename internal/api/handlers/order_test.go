package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPaging = config.Dashboard{AllowDelete: true, DefaultPageSize: 20, MaxPageSize: 100}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:       "Ada Lovelace",
		Phone:      "555-0100",
		Email:      "ada@example.com",
		Address:    "12 Analytical Way",
		City:       "London",
		ZipCode:    "N1 9GU",
		CardNumber: "4242 4242 4242 4242",
		CardExpiry: "12/29",
		CardCVV:    "123",
	}
}

func placedOrder(status models.OrderStatus) *models.Order {
	customer := validCustomer()
	customer.CardNumber = "**** 4242"
	customer.CardCVV = ""
	now := time.Now().UTC()

	return &models.Order{
		ID:            uuid.New(),
		IdentityToken: testIdentity,
		Items:         []models.CartItem{{ID: "pepperoni", Name: "Pepperoni", Price: dec("17"), Quantity: 2}},
		Customer:      customer,
		Status:        status,
		Total:         dec("34"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success - 201 with the masked order", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		reqBody := models.CheckoutRequest{Customer: validCustomer()}
		body, _ := json.Marshal(reqBody)
		order := placedOrder(models.OrderStatusInProgress)
		orderService.On("PlaceOrder", mock.Anything, testIdentity, &reqBody).Return(order, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodPost, "/orders", bytes.NewReader(body), testIdentity, nil)

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var got models.Order
		decodeData(t, rr, &got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, models.OrderStatusInProgress, got.Status)
		assert.True(t, dec("34").Equal(got.Total))
		assert.Equal(t, "**** 4242", got.Customer.CardNumber)
		assert.NotContains(t, rr.Body.String(), "card_cvv")
	})

	t.Run("Failure - invalid email", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		customer := validCustomer()
		customer.Email = "not-an-email"
		body, _ := json.Marshal(models.CheckoutRequest{Customer: customer})

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodPost, "/orders", bytes.NewReader(body), testIdentity, nil)

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errResp := decodeError(t, rr)
		assert.Equal(t, appErrors.ErrCodeValidation, errResp.Code)
		assert.Contains(t, errResp.Details, "Field Email must be a valid email address")
	})

	t.Run("Failure - empty cart", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		reqBody := models.CheckoutRequest{Customer: validCustomer()}
		body, _ := json.Marshal(reqBody)
		orderService.On("PlaceOrder", mock.Anything, testIdentity, &reqBody).Return(nil, appErrors.EmptyCartError()).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodPost, "/orders", bytes.NewReader(body), testIdentity, nil)

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, decodeError(t, rr).Code)
	})

	t.Run("Failure - rate limited", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		reqBody := models.CheckoutRequest{Customer: validCustomer()}
		body, _ := json.Marshal(reqBody)
		orderService.On("PlaceOrder", mock.Anything, testIdentity, &reqBody).
			Return(nil, appErrors.TooManyRequestsError("Too many checkout attempts").WithDetail("retry after 42 seconds")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodPost, "/orders", bytes.NewReader(body), testIdentity, nil)

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, []string{"retry after 42 seconds"}, decodeError(t, rr).Details)
	})

	t.Run("Failure - no identity", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		body, _ := json.Marshal(models.CheckoutRequest{Customer: validCustomer()})

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodPost, "/orders", bytes.NewReader(body), nil)

		// Act
		h.PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		order := placedOrder(models.OrderStatusCompleted)
		orderService.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodGet, "/orders/"+order.ID.String(), nil, testIdentity, map[string]string{"id": order.ID.String()})

		// Act
		h.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.Order
		decodeData(t, rr, &got)
		assert.Equal(t, models.OrderStatusCompleted, got.Status)
	})

	t.Run("Failure - malformed id", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodGet, "/orders/abc", nil, testIdentity, map[string]string{"id": "abc"})

		// Act
		h.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeError(t, rr).Code)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		id := uuid.New()
		orderService.On("GetOrderByID", mock.Anything, id).Return(nil, appErrors.NotFoundError("Order not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodGet, "/orders/"+id.String(), nil, testIdentity, map[string]string{"id": id.String()})

		// Act
		h.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListMyOrders(t *testing.T) {
	t.Run("Success - pagination is read from the query", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		page := &models.PaginatedResponse{Data: []*models.Order{placedOrder(models.OrderStatusInProgress)}, Total: 6, Page: 2, PageSize: 5}
		orderService.On("ListOrdersByIdentity", mock.Anything, testIdentity, 2, 5).Return(page, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodGet, "/orders?page=2&pageSize=5", nil, testIdentity, nil)

		// Act
		h.ListMyOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got struct {
			Data     []models.Order `json:"data"`
			Total    int            `json:"total"`
			Page     int            `json:"page"`
			PageSize int            `json:"pageSize"`
		}
		decodeData(t, rr, &got)
		require.Len(t, got.Data, 1)
		assert.Equal(t, 6, got.Total)
		assert.Equal(t, 2, got.Page)
	})

	t.Run("Defaults when the query is empty", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(orderService, testPaging)
		page := &models.PaginatedResponse{Data: []*models.Order{}, Page: 1, PageSize: 20}
		orderService.On("ListOrdersByIdentity", mock.Anything, testIdentity, 1, 20).Return(page, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithIdentity(http.MethodGet, "/orders", nil, testIdentity, nil)

		// Act
		h.ListMyOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
