// Package pricing resolves a pizza customization into a priced cart line.
package pricing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownSize     = errors.New("unknown size")
	ErrUnknownTopping  = errors.New("unknown topping")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Customizer tracks one pizza being built. It starts at the base size with
// the pizza's default toppings on and a quantity of one.
//
// Removing a default topping is recorded but never lowers the price.
type Customizer struct {
	pizza    models.MenuItem
	rules    *catalog.Rules
	defaults []string
	size     models.SizeSpec
	added    []models.ToppingSpec
	removed  []string
	quantity int
}

func NewCustomizer(pizza models.MenuItem, rules *catalog.Rules) *Customizer {
	return &Customizer{
		pizza:    pizza,
		rules:    rules,
		defaults: rules.DefaultToppings(pizza.ID),
		size:     rules.BaseSize(),
		quantity: 1,
	}
}

func (c *Customizer) SelectSize(name string) error {
	size, ok := c.rules.Size(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSize, name)
	}
	c.size = size
	return nil
}

// ToggleTopping flips a topping on or off.
//
// A non-default topping turned on is recorded as added; turning it on again
// drops the record. A default topping turned off is recorded as removed;
// turning it back on cancels the removal.
func (c *Customizer) ToggleTopping(name string) error {
	spec, ok := c.rules.Topping(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTopping, name)
	}

	if c.isDefault(spec.Name) {
		if i := slices.Index(c.removed, spec.Name); i >= 0 {
			c.removed = slices.Delete(c.removed, i, i+1)
		} else {
			c.removed = append(c.removed, spec.Name)
		}
		return nil
	}

	if i := slices.IndexFunc(c.added, func(t models.ToppingSpec) bool { return t.Name == spec.Name }); i >= 0 {
		c.added = slices.Delete(c.added, i, i+1)
	} else {
		c.added = append(c.added, spec)
	}
	return nil
}

// SetToppings makes exactly the named toppings the ones that are on.
// Defaults missing from on are removed; anything else in on is added.
func (c *Customizer) SetToppings(on []string) error {
	specs := make([]models.ToppingSpec, 0, len(on))
	for _, name := range on {
		spec, ok := c.rules.Topping(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTopping, name)
		}
		if !slices.ContainsFunc(specs, func(t models.ToppingSpec) bool { return t.Name == spec.Name }) {
			specs = append(specs, spec)
		}
	}

	c.added = nil
	c.removed = nil

	for _, d := range c.defaults {
		if !slices.ContainsFunc(specs, func(t models.ToppingSpec) bool { return t.Name == d }) {
			c.removed = append(c.removed, d)
		}
	}

	for _, spec := range specs {
		if !c.isDefault(spec.Name) {
			c.added = append(c.added, spec)
		}
	}

	return nil
}

func (c *Customizer) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c.quantity = quantity
	return nil
}

// UnitPrice is the base price plus the size delta plus every added topping.
func (c *Customizer) UnitPrice() decimal.Decimal {
	price := c.pizza.Price.Add(c.size.Price)
	for _, t := range c.added {
		price = price.Add(t.Price)
	}
	return price
}

func (c *Customizer) LineTotal() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.quantity)))
}

// CartItem renders the customization as a cart line. Added toppings come
// first, then removed defaults at no charge. A pizza left at its defaults
// carries no topping list.
func (c *Customizer) CartItem() models.CartItem {
	item := models.CartItem{
		ID:       c.pizza.ID,
		Name:     c.pizza.Name,
		Price:    c.UnitPrice(),
		Quantity: c.quantity,
		Size:     c.size.Name,
	}

	if len(c.added)+len(c.removed) == 0 {
		return item
	}

	item.Toppings = make([]models.ToppingItem, 0, len(c.added)+len(c.removed))
	for _, t := range c.added {
		item.Toppings = append(item.Toppings, models.ToppingItem{Name: t.Name, Price: t.Price, Added: true})
	}
	for _, name := range c.removed {
		item.Toppings = append(item.Toppings, models.ToppingItem{Name: name, Price: decimal.Zero, Removed: true})
	}

	if len(c.removed) > 0 {
		item.RemovedToppings = slices.Clone(c.removed)
	}

	return item
}

func (c *Customizer) isDefault(name string) bool {
	return slices.Contains(c.defaults, name)
}
