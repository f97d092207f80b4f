// Package cart holds the cart reconciliation rules: when two lines are the
// same entry, how lines merge, and the identity-scoped Store that mirrors a
// cart to durable storage.
package cart

import (
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
)

// ToppingsEqual reports whether two topping lists describe the same set.
//
// Both absent is equal, one absent is not, and lists of different length are
// never equal. Otherwise both lists are sorted by name and compared pairwise
// on (name, price).
func ToppingsEqual(a, b []models.ToppingItem) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}

	sortedA := sortedByName(a)
	sortedB := sortedByName(b)

	for i := range sortedA {
		if sortedA[i].Name != sortedB[i].Name || !sortedA[i].Price.Equal(sortedB[i].Price) {
			return false
		}
	}

	return true
}

// Matches reports whether line is the entry identified by id and toppings.
func Matches(line models.CartItem, id string, toppings []models.ToppingItem) bool {
	return line.ID == id && ToppingsEqual(line.Toppings, toppings)
}

func sortedByName(toppings []models.ToppingItem) []models.ToppingItem {
	out := slices.Clone(toppings)
	slices.SortStableFunc(out, func(x, y models.ToppingItem) int {
		if c := strings.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return x.Price.Cmp(y.Price)
	})
	return out
}
