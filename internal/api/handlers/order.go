package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pizza-storefront/internal/services"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
	paging       config.Dashboard
}

func NewOrderHandler(orderService service.OrderService, paging config.Dashboard) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New(), paging: paging}
}

// PlaceOrder godoc
//	@Summary		Check out
//	@Description	Places an order from the current cart. Card fields are demo data only: nothing is charged, the number is masked and the CVV is not stored. The cart is cleared once the order is saved.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Customer details"
//	@Success		201		{object}	models.Order			"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		422		{object}	response.ErrorResponse	"Empty cart"
//	@Failure		429		{object}	response.ErrorResponse	"Too many checkout attempts"
//	@Failure		500		{object}	response.ErrorResponse	"Failed to place order"
//	@Router			/orders [post]
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order
//	@Description	Returns an order for its confirmation page.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"The order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid order ID").WithError(err))
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListMyOrders godoc
//	@Summary		List my orders
//	@Description	Lists the orders placed from this browser identity, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"		minimum(1)
//	@Param			pageSize	query		int												false	"Items per page (default: 20)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Router			/orders [get]
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		page, size := utils.ParsePagination(r, h.paging.DefaultPageSize, h.paging.MaxPageSize)

		orders, err := h.orderService.ListOrdersByIdentity(r.Context(), identity, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
