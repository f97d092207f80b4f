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

// DashboardHandler serves the staff order dashboard. Every route sits
// behind the staff AuthMiddleware.
type DashboardHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
	paging       config.Dashboard
}

func NewDashboardHandler(orderService service.OrderService, paging config.Dashboard) *DashboardHandler {
	return &DashboardHandler{orderService: orderService, validator: validator.New(), paging: paging}
}

// ListOrders godoc
//	@Summary		List all orders
//	@Description	Lists every order, newest first, optionally filtered by status.
//	@Tags			Dashboard
//	@Produce		json
//	@Param			status		query		string											false	"Status filter"	Enums(all, in_progress, completed)
//	@Param			page		query		int												false	"Page number (default: 1)"		minimum(1)
//	@Param			pageSize	query		int												false	"Items per page (default: 20)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		400			{object}	response.ErrorResponse							"Unknown status"
//	@Failure		401			{object}	response.ErrorResponse							"Staff token required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/dashboard/orders [get]
func (h *DashboardHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		status := models.OrderStatus(r.URL.Query().Get("status"))
		page, size := utils.ParsePagination(r, h.paging.DefaultPageSize, h.paging.MaxPageSize)

		orders, err := h.orderService.ListOrders(r.Context(), status, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// UpdateOrderStatus godoc
//	@Summary		Change an order's status
//	@Description	Marks an order completed or reopens it. Setting the status it already has changes nothing.
//	@Tags			Dashboard
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid ID or status"
//	@Failure		401		{object}	response.ErrorResponse			"Staff token required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		409		{object}	response.ErrorResponse			"Transition not allowed"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/dashboard/orders/{id}/status [patch]
func (h *DashboardHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid order ID").WithError(err))
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid status update input")
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// DeleteOrder godoc
//	@Summary		Delete an order
//	@Description	Deletes an order and its lines. Can be switched off with dashboard.allow_delete.
//	@Tags			Dashboard
//	@Param			id	path	string	true	"Order ID (UUID)"	Format(uuid)
//	@Success		204	"Order deleted"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Staff token required"
//	@Failure		403	{object}	response.ErrorResponse	"Deleting is disabled"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/dashboard/orders/{id} [delete]
func (h *DashboardHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid order ID").WithError(err))
			return
		}

		if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
			logger.Error("Failed to delete order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
