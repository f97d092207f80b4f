package cart

import (
	"math"
	"slices"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// The functions below never modify the slice they are given; each returns a
// fresh slice holding the new state.

// MaxQuantity is the largest quantity a line can hold in storage.
const MaxQuantity = math.MaxInt32

// Add merges item into the first line it matches, adding its quantity, or
// appends it as a new line. A merged quantity saturates at MaxQuantity; line
// counts are unbounded.
func Add(items []models.CartItem, item models.CartItem) []models.CartItem {
	out := Clone(items)

	for i := range out {
		if Matches(out[i], item.ID, item.Toppings) {
			out[i].Quantity = min(out[i].Quantity+item.Quantity, MaxQuantity)
			return out
		}
	}

	return append(out, cloneItem(item))
}

// Remove drops every line matching id and toppings.
func Remove(items []models.CartItem, id string, toppings []models.ToppingItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))

	for _, line := range items {
		if Matches(line, id, toppings) {
			continue
		}
		out = append(out, cloneItem(line))
	}

	return out
}

// UpdateQuantity sets the matching lines to quantity. A quantity of zero or
// less removes them instead.
func UpdateQuantity(items []models.CartItem, id string, quantity int, toppings []models.ToppingItem) []models.CartItem {
	if quantity <= 0 {
		return Remove(items, id, toppings)
	}

	out := Clone(items)
	for i := range out {
		if Matches(out[i], id, toppings) {
			out[i].Quantity = quantity
		}
	}

	return out
}

// Contains reports whether any line matches id and toppings.
func Contains(items []models.CartItem, id string, toppings []models.ToppingItem) bool {
	return slices.ContainsFunc(items, func(line models.CartItem) bool {
		return Matches(line, id, toppings)
	})
}

// Total is the sum of price × quantity over all lines.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func ItemCount(items []models.CartItem) int {
	count := 0
	for _, line := range items {
		count += line.Quantity
	}
	return count
}

// View builds the client-facing cart for the given lines.
func View(identity string, items []models.CartItem, loaded bool) *models.Cart {
	lines := Clone(items)
	if lines == nil {
		lines = []models.CartItem{}
	}

	return &models.Cart{
		IdentityToken: identity,
		Items:         lines,
		Total:         Total(lines),
		ItemCount:     ItemCount(lines),
		Loaded:        loaded,
	}
}

// Clone deep-copies lines so a snapshot never shares topping slices with the
// live cart.
func Clone(items []models.CartItem) []models.CartItem {
	if items == nil {
		return nil
	}

	out := make([]models.CartItem, len(items))
	for i, line := range items {
		out[i] = cloneItem(line)
	}
	return out
}

func cloneItem(line models.CartItem) models.CartItem {
	line.Toppings = slices.Clone(line.Toppings)
	line.RemovedToppings = slices.Clone(line.RemovedToppings)
	return line
}
