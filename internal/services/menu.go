package service

import (
	"context"
	"errors"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/pricing"
)

type MenuService interface {
	ListPizzas(ctx context.Context, category models.Category, featuredOnly bool) ([]models.MenuItem, error)
	GetPizza(ctx context.Context, id string) (*models.PizzaDetail, error)
	ListSides(ctx context.Context, course models.Course) ([]models.SideItem, error)
	GetOptions(ctx context.Context) *models.MenuOptions
	Quote(ctx context.Context, id string, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type menuService struct {
	catalog *catalog.Catalog
}

func NewMenuService(c *catalog.Catalog) MenuService {
	return &menuService{catalog: c}
}

func (s *menuService) ListPizzas(ctx context.Context, category models.Category, featuredOnly bool) ([]models.MenuItem, error) {
	if category != "" && !category.Valid() {
		return nil, appErrors.BadRequestError("Unknown category: " + string(category))
	}

	return s.catalog.Pizzas(category, featuredOnly), nil
}

func (s *menuService) GetPizza(ctx context.Context, id string) (*models.PizzaDetail, error) {
	pizza, err := s.catalog.Pizza(id)
	if err != nil {
		return nil, appErrors.NotFoundError("Pizza not found").WithError(err)
	}

	defaults := s.catalog.Rules().DefaultToppings(id)
	if defaults == nil {
		defaults = []string{}
	}

	return &models.PizzaDetail{MenuItem: pizza, DefaultToppings: defaults}, nil
}

func (s *menuService) ListSides(ctx context.Context, course models.Course) ([]models.SideItem, error) {
	switch course {
	case "", models.CourseAppetizer, models.CourseDessert, models.CourseDrink:
		return s.catalog.Sides(course), nil
	default:
		return nil, appErrors.BadRequestError("Unknown course: " + string(course))
	}
}

func (s *menuService) GetOptions(ctx context.Context) *models.MenuOptions {
	rules := s.catalog.Rules()
	return &models.MenuOptions{Sizes: rules.Sizes(), Toppings: rules.Toppings()}
}

// Quote prices a customization without touching any cart.
func (s *menuService) Quote(ctx context.Context, id string, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	c, err := customize(s.catalog, id, req.Size, req.Toppings, req.Quantity)
	if err != nil {
		return nil, err
	}

	return &models.QuoteResponse{
		Item:      c.CartItem(),
		UnitPrice: c.UnitPrice(),
		LineTotal: c.LineTotal(),
	}, nil
}

// customize builds a customizer for a pizza. An empty size keeps the base
// size, nil toppings keep the defaults and a zero quantity means one.
func customize(c *catalog.Catalog, pizzaID, size string, toppings []string, quantity int) (*pricing.Customizer, error) {
	pizza, err := c.Pizza(pizzaID)
	if err != nil {
		return nil, appErrors.NotFoundError("Pizza not found").WithError(err)
	}

	cz := pricing.NewCustomizer(pizza, c.Rules())

	if size != "" {
		if err := cz.SelectSize(size); err != nil {
			return nil, customizationError(err)
		}
	}

	if toppings != nil {
		if err := cz.SetToppings(toppings); err != nil {
			return nil, customizationError(err)
		}
	}

	if quantity != 0 {
		if err := cz.SetQuantity(quantity); err != nil {
			return nil, customizationError(err)
		}
	}

	return cz, nil
}

func customizationError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnknownSize),
		errors.Is(err, pricing.ErrUnknownTopping),
		errors.Is(err, pricing.ErrInvalidQuantity):
		return appErrors.ValidationError(err.Error()).WithError(err)
	default:
		return appErrors.InternalError("Failed to price pizza").WithError(err)
	}
}
