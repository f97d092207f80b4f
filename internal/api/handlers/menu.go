package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pizza-storefront/internal/services"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type MenuHandler struct {
	menuService service.MenuService
	validator   *validator.Validate
}

func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService, validator: validator.New()}
}

// ListPizzas godoc
//	@Summary		List pizzas
//	@Description	Lists the pizzas on the menu, optionally filtered by category or featured flag.
//	@Tags			Menu
//	@Produce		json
//	@Param			category	query		string					false	"Category"	Enums(classic, specialty, vegetarian)
//	@Param			featured	query		bool					false	"Only featured pizzas"
//	@Success		200			{array}		models.MenuItem			"Pizzas in menu order"
//	@Failure		400			{object}	response.ErrorResponse	"Unknown category or malformed flag"
//	@Router			/menu [get]
func (h *MenuHandler) ListPizzas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		featured := false
		if raw := r.URL.Query().Get("featured"); raw != "" {
			var err error
			featured, err = strconv.ParseBool(raw)
			if err != nil {
				logger.Warn("Invalid featured flag", slog.String("featured", raw))
				response.Error(w, errors.BadRequestError("Invalid featured flag").WithError(err))
				return
			}
		}

		category := models.Category(r.URL.Query().Get("category"))

		pizzas, err := h.menuService.ListPizzas(r.Context(), category, featured)
		if err != nil {
			logger.Warn("Failed to list pizzas", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, pizzas)
	}
}

// GetPizza godoc
//	@Summary		Get a pizza
//	@Description	Returns one pizza together with its default toppings.
//	@Tags			Menu
//	@Produce		json
//	@Param			id	path		string					true	"Pizza ID"
//	@Success		200	{object}	models.PizzaDetail		"The pizza"
//	@Failure		404	{object}	response.ErrorResponse	"Pizza not found"
//	@Router			/menu/{id} [get]
func (h *MenuHandler) GetPizza() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		pizza, err := h.menuService.GetPizza(r.Context(), id)
		if err != nil {
			logger.Warn("Pizza lookup failed", slog.String("pizzaId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, pizza)
	}
}

// ListSides godoc
//	@Summary		List sides
//	@Description	Lists appetizers, desserts and drinks.
//	@Tags			Menu
//	@Produce		json
//	@Param			course	query		string					false	"Course"	Enums(appetizer, dessert, drink)
//	@Success		200		{array}		models.SideItem			"Side items"
//	@Failure		400		{object}	response.ErrorResponse	"Unknown course"
//	@Router			/menu/sides [get]
func (h *MenuHandler) ListSides() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		sides, err := h.menuService.ListSides(r.Context(), models.Course(r.URL.Query().Get("course")))
		if err != nil {
			logger.Warn("Failed to list sides", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sides)
	}
}

// GetOptions godoc
//	@Summary		Customization options
//	@Description	Lists the sizes and toppings with their price deltas.
//	@Tags			Menu
//	@Produce		json
//	@Success		200	{object}	models.MenuOptions	"Sizes and toppings"
//	@Router			/menu/options [get]
func (h *MenuHandler) GetOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.menuService.GetOptions(r.Context()))
	}
}

// Quote godoc
//	@Summary		Price a customization
//	@Description	Prices a pizza with the chosen size and toppings without touching the cart. Toppings lists every topping that should be on the pizza; leave it out to keep the defaults.
//	@Tags			Menu
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Pizza ID"
//	@Param			quote	body		models.QuoteRequest		true	"Customization"
//	@Success		200		{object}	models.QuoteResponse	"Priced line"
//	@Failure		400		{object}	response.ErrorResponse	"Unknown size or topping"
//	@Failure		404		{object}	response.ErrorResponse	"Pizza not found"
//	@Router			/menu/{id}/quote [post]
func (h *MenuHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		var req models.QuoteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid quote input")
			return
		}

		quote, err := h.menuService.Quote(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Failed to quote pizza", slog.String("pizzaId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}
