package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pizza-storefront/internal/services"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the cart of the browser identity, with its total and item count.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"The cart"
//	@Failure		500	{object}	response.ErrorResponse	"Cart could not be loaded"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), identity)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a menu item
//	@Description	Adds a side, or a pizza exactly as it is on the menu. Adding an item already in the cart raises its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item to add"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Menu item not found"
//	@Failure		500		{object}	response.ErrorResponse	"Cart could not be saved"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// AddPizza godoc
//	@Summary		Add a customized pizza
//	@Description	Adds a pizza with a chosen size and topping set. Toppings lists every topping that should be on the pizza; leave it out to keep the defaults.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			pizza	body		models.AddPizzaRequest	true	"Pizza to add"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error, unknown size or topping"
//	@Failure		404		{object}	response.ErrorResponse	"Pizza not found"
//	@Failure		500		{object}	response.ErrorResponse	"Cart could not be saved"
//	@Router			/cart/pizzas [post]
func (h *CartHandler) AddPizza() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		var req models.AddPizzaRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add pizza input")
			return
		}

		cart, err := h.cartService.AddPizza(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to add pizza to cart", slog.String("pizzaId", req.PizzaID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Pizza added to cart", slog.String("pizzaId", req.PizzaID), slog.String("size", req.Size))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//	@Summary		Set a line quantity
//	@Description	Sets the absolute quantity of the line matching the product and topping set. Zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Line and quantity"
//	@Success		200		{object}	models.Cart						"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		500		{object}	response.ErrorResponse			"Cart could not be saved"
//	@Router			/cart/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to update cart quantity", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line
//	@Description	Removes the line matching the product and topping set.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.RemoveItemRequest	true	"Line to remove"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		500		{object}	response.ErrorResponse		"Cart could not be saved"
//	@Router			/cart/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid remove item input")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), identity, &req)
		if err != nil {
			logger.Error("Failed to remove cart line", slog.String("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//	@Summary		Clear the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Empty cart"
//	@Failure		500	{object}	response.ErrorResponse	"Cart could not be saved"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		identity, ok := requireIdentity(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), identity)
		if err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
