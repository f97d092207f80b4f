package models

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryClassic    Category = "classic"
	CategorySpecialty  Category = "specialty"
	CategoryVegetarian Category = "vegetarian"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryClassic, CategorySpecialty, CategoryVegetarian:
		return true
	}
	return false
}

type Course string

const (
	CourseAppetizer Course = "appetizer"
	CourseDessert   Course = "dessert"
	CourseDrink     Course = "drink"
)

// MenuItem is a pizza on the menu. Reference data, never mutated at runtime.
type MenuItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Category    Category        `json:"category" yaml:"category"`
	Image       string          `json:"image" yaml:"image"`
	Featured    bool            `json:"featured,omitempty" yaml:"featured"`
}

// SideItem is anything sold as-is: appetizers, desserts and drinks.
type SideItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Course      Course          `json:"course" yaml:"course"`
	Image       string          `json:"image,omitempty" yaml:"image"`
}

type ToppingSpec struct {
	Name  string          `json:"name" yaml:"name"`
	Price decimal.Decimal `json:"price" yaml:"price"`
}

type SizeSpec struct {
	Name  string          `json:"name" yaml:"name"`
	Label string          `json:"label" yaml:"label"`
	Price decimal.Decimal `json:"price" yaml:"price"`
}

type PizzaDetail struct {
	MenuItem
	DefaultToppings []string `json:"default_toppings"`
}

type MenuOptions struct {
	Sizes    []SizeSpec    `json:"sizes"`
	Toppings []ToppingSpec `json:"toppings"`
}

type QuoteRequest struct {
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
	Quantity int      `json:"quantity" validate:"omitempty,min=1,max=2147483647"`
}

type QuoteResponse struct {
	Item      CartItem        `json:"item"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
