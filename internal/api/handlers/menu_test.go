package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListPizzas(t *testing.T) {
	pizzas := []models.MenuItem{
		{ID: "pepperoni", Name: "Pepperoni", Price: dec("16.99"), Category: models.CategoryClassic, Featured: true},
	}

	t.Run("Success - filters are passed through", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		menuService.On("ListPizzas", mock.Anything, models.CategoryClassic, true).Return(pizzas, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu?category=classic&featured=true", nil, nil)

		// Act
		h.ListPizzas().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got []models.MenuItem
		decodeData(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "pepperoni", got[0].ID)
		assert.True(t, dec("16.99").Equal(got[0].Price))
	})

	t.Run("Failure - malformed featured flag", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu?featured=maybe", nil, nil)

		// Act
		h.ListPizzas().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeBadRequest, decodeError(t, rr).Code)
		menuService.AssertNotCalled(t, "ListPizzas", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - unknown category", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		menuService.On("ListPizzas", mock.Anything, models.Category("calzone"), false).
			Return(nil, appErrors.BadRequestError("Unknown category")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu?category=calzone", nil, nil)

		// Act
		h.ListPizzas().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetPizza(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		detail := &models.PizzaDetail{
			MenuItem:        models.MenuItem{ID: "pepperoni", Name: "Pepperoni", Price: dec("16.99")},
			DefaultToppings: []string{"Pepperoni"},
		}
		menuService.On("GetPizza", mock.Anything, "pepperoni").Return(detail, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu/pepperoni", nil, map[string]string{"id": "pepperoni"})

		// Act
		h.GetPizza().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.PizzaDetail
		decodeData(t, rr, &got)
		assert.Equal(t, []string{"Pepperoni"}, got.DefaultToppings)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		menuService.On("GetPizza", mock.Anything, "hawaiian").Return(nil, appErrors.NotFoundError("Pizza not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu/hawaiian", nil, map[string]string{"id": "hawaiian"})

		// Act
		h.GetPizza().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, decodeError(t, rr).Code)
	})
}

func TestListSidesAndOptions(t *testing.T) {
	menuService := mocks.NewMenuService(t)
	h := handlers.NewMenuHandler(menuService)

	t.Run("Sides by course", func(t *testing.T) {
		// Arrange
		sides := []models.SideItem{{ID: "tiramisu", Name: "Tiramisu", Price: dec("6.99"), Course: models.CourseDessert}}
		menuService.On("ListSides", mock.Anything, models.CourseDessert).Return(sides, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu/sides?course=dessert", nil, nil)

		// Act
		h.ListSides().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got []models.SideItem
		decodeData(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "tiramisu", got[0].ID)
	})

	t.Run("Options", func(t *testing.T) {
		// Arrange
		opts := &models.MenuOptions{
			Sizes:    []models.SizeSpec{{Name: "Large", Label: "Large (14\")", Price: dec("3.00")}},
			Toppings: []models.ToppingSpec{{Name: "Bacon", Price: dec("1.50")}},
		}
		menuService.On("GetOptions", mock.Anything).Return(opts).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodGet, "/menu/options", nil, nil)

		// Act
		h.GetOptions().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.MenuOptions
		decodeData(t, rr, &got)
		require.Len(t, got.Toppings, 1)
		assert.Equal(t, "Bacon", got.Toppings[0].Name)
	})
}

func TestQuote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		reqBody := models.QuoteRequest{Size: "Large", Toppings: []string{"Pepperoni", "Bacon"}, Quantity: 2}
		body, _ := json.Marshal(reqBody)

		quote := &models.QuoteResponse{
			Item:      models.CartItem{ID: "pepperoni", Name: "Pepperoni", Price: dec("21.49"), Quantity: 2, Size: "Large"},
			UnitPrice: dec("21.49"),
			LineTotal: dec("42.98"),
		}
		menuService.On("Quote", mock.Anything, "pepperoni", &reqBody).Return(quote, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodPost, "/menu/pepperoni/quote", bytes.NewReader(body), map[string]string{"id": "pepperoni"})

		// Act
		h.Quote().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.QuoteResponse
		decodeData(t, rr, &got)
		assert.True(t, dec("42.98").Equal(got.LineTotal))
	})

	t.Run("Failure - bad JSON", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodPost, "/menu/pepperoni/quote", bytes.NewReader([]byte("{bad")), map[string]string{"id": "pepperoni"})

		// Act
		h.Quote().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - unknown topping", func(t *testing.T) {
		// Arrange
		menuService := mocks.NewMenuService(t)
		h := handlers.NewMenuHandler(menuService)
		reqBody := models.QuoteRequest{Toppings: []string{"Pineapple Rings"}}
		body, _ := json.Marshal(reqBody)
		menuService.On("Quote", mock.Anything, "cheese", &reqBody).
			Return(nil, appErrors.ValidationError("Invalid customization")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutIdentity(http.MethodPost, "/menu/cheese/quote", bytes.NewReader(body), map[string]string{"id": "cheese"})

		// Act
		h.Quote().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, rr).Code)
	})
}
