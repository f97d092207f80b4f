package models

import "github.com/shopspring/decimal"

// ToppingItem records one customization on a line. Added and Removed are
// mutually exclusive for a given name.
type ToppingItem struct {
	Name    string          `json:"name" validate:"required"`
	Price   decimal.Decimal `json:"price"`
	Added   bool            `json:"added,omitempty"`
	Removed bool            `json:"removed,omitempty"`
}

// CartItem is one line of a cart or an order snapshot. ID is the product id
// and is not unique across a cart; a line is identified by ID plus its
// topping set. Price is the unit price.
type CartItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Size            string          `json:"size,omitempty"`
	Toppings        []ToppingItem   `json:"toppings,omitempty"`
	RemovedToppings []string        `json:"removed_toppings,omitempty"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the view of one identity's cart. Loaded is false until the cart
// has been read from the durable store, so an unloaded cart is never mistaken
// for an empty one.
type Cart struct {
	IdentityToken string          `json:"-"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	Loaded        bool            `json:"loaded"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1,max=2147483647"`
}

type AddPizzaRequest struct {
	PizzaID  string   `json:"pizza_id" validate:"required"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings" validate:"omitempty,dive,required"`
	Quantity int      `json:"quantity" validate:"required,min=1,max=2147483647"`
}

// Toppings in the line requests are matched against the line's topping set;
// leaving them out only matches lines that carry no topping list.
type UpdateQuantityRequest struct {
	ProductID string        `json:"product_id" validate:"required"`
	Quantity  int           `json:"quantity" validate:"max=2147483647"`
	Toppings  []ToppingItem `json:"toppings,omitempty" validate:"omitempty,dive"`
}

type RemoveItemRequest struct {
	ProductID string        `json:"product_id" validate:"required"`
	Toppings  []ToppingItem `json:"toppings,omitempty" validate:"omitempty,dive"`
}
