// Package catalog serves the static menu: pizzas, sides, sizes, toppings and
// the default topping set of every pizza. The data ships inside the binary
// and is read-only once loaded.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

var (
	ErrPizzaNotFound = errors.New("pizza not found")
	ErrSideNotFound  = errors.New("side item not found")
)

type menuFile struct {
	Pizzas   []models.MenuItem    `yaml:"pizzas"`
	Sides    []models.SideItem    `yaml:"sides"`
	Sizes    []models.SizeSpec    `yaml:"sizes"`
	Toppings []models.ToppingSpec `yaml:"toppings"`
	Defaults map[string][]string  `yaml:"defaults"`
}

type Catalog struct {
	pizzas []models.MenuItem
	sides  []models.SideItem
	rules  *Rules
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(menuYAML)
	})
	return defaultCatalog, defaultErr
}

// Parse decodes and validates a menu document.
func Parse(data []byte) (*Catalog, error) {
	var file menuFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	rules, err := NewRules(file.Sizes, file.Toppings, file.Defaults)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(file.Pizzas)+len(file.Sides))

	for _, p := range file.Pizzas {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("menu: missing or duplicate id %q", p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("menu: pizza %q has unknown category %q", p.ID, p.Category)
		}
		if !p.Price.IsPositive() {
			return nil, fmt.Errorf("menu: pizza %q must have a positive price", p.ID)
		}
		seen[p.ID] = true
	}

	for _, s := range file.Sides {
		if s.ID == "" || seen[s.ID] {
			return nil, fmt.Errorf("menu: missing or duplicate id %q", s.ID)
		}
		if !s.Price.IsPositive() {
			return nil, fmt.Errorf("menu: side %q must have a positive price", s.ID)
		}
		seen[s.ID] = true
	}

	for id := range file.Defaults {
		if !slices.ContainsFunc(file.Pizzas, func(p models.MenuItem) bool { return p.ID == id }) {
			return nil, fmt.Errorf("menu: default toppings listed for unknown pizza %q", id)
		}
	}

	return &Catalog{pizzas: file.Pizzas, sides: file.Sides, rules: rules}, nil
}

// Pizzas lists pizzas in menu order. An empty category or a false featured
// flag leaves that filter off.
func (c *Catalog) Pizzas(category models.Category, featuredOnly bool) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.pizzas))
	for _, p := range c.pizzas {
		if category != "" && p.Category != category {
			continue
		}
		if featuredOnly && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) Pizza(id string) (models.MenuItem, error) {
	for _, p := range c.pizzas {
		if p.ID == id {
			return p, nil
		}
	}
	return models.MenuItem{}, ErrPizzaNotFound
}

func (c *Catalog) Sides(course models.Course) []models.SideItem {
	out := make([]models.SideItem, 0, len(c.sides))
	for _, s := range c.sides {
		if course == "" || s.Course == course {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Side(id string) (models.SideItem, error) {
	for _, s := range c.sides {
		if s.ID == id {
			return s, nil
		}
	}
	return models.SideItem{}, ErrSideNotFound
}

func (c *Catalog) Rules() *Rules {
	return c.rules
}

// Rules holds the size and topping price deltas plus each pizza's defaults.
type Rules struct {
	sizes    []models.SizeSpec
	toppings []models.ToppingSpec
	defaults map[string][]string
	base     models.SizeSpec
}

// NewRules validates and wraps pricing data. Exactly one size must carry a
// zero delta, and every default topping must be a known topping.
func NewRules(sizes []models.SizeSpec, toppings []models.ToppingSpec, defaults map[string][]string) (*Rules, error) {
	r := &Rules{
		sizes:    slices.Clone(sizes),
		toppings: slices.Clone(toppings),
		defaults: make(map[string][]string, len(defaults)),
	}

	baseCount := 0
	for _, s := range sizes {
		if s.Price.IsZero() {
			r.base = s
			baseCount++
		}
	}
	if baseCount != 1 {
		return nil, fmt.Errorf("menu: expected exactly one base size with a zero delta, found %d", baseCount)
	}

	for _, t := range toppings {
		if t.Price.IsNegative() {
			return nil, fmt.Errorf("menu: topping %q has a negative price", t.Name)
		}
	}

	for id, names := range defaults {
		for _, name := range names {
			if _, ok := r.Topping(name); !ok {
				return nil, fmt.Errorf("menu: pizza %q defaults to unknown topping %q", id, name)
			}
		}
		r.defaults[id] = slices.Clone(names)
	}

	return r, nil
}

func (r *Rules) Sizes() []models.SizeSpec {
	return slices.Clone(r.sizes)
}

func (r *Rules) Toppings() []models.ToppingSpec {
	return slices.Clone(r.toppings)
}

// BaseSize is the size the menu price is quoted for.
func (r *Rules) BaseSize() models.SizeSpec {
	return r.base
}

// Size looks a size up by name, ignoring case.
func (r *Rules) Size(name string) (models.SizeSpec, bool) {
	for _, s := range r.sizes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.SizeSpec{}, false
}

// Topping looks a topping up by name, ignoring case.
func (r *Rules) Topping(name string) (models.ToppingSpec, bool) {
	for _, t := range r.toppings {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return models.ToppingSpec{}, false
}

// DefaultToppings returns the ordered default topping names of a pizza. A
// pizza without an entry has no defaults.
func (r *Rules) DefaultToppings(pizzaID string) []string {
	return slices.Clone(r.defaults[pizzaID])
}
