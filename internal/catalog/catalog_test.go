package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	t.Run("Lists every pizza in menu order", func(t *testing.T) {
		pizzas := c.Pizzas("", false)

		require.Len(t, pizzas, 9)
		assert.Equal(t, "cheese", pizzas[0].ID)
		assert.Equal(t, "spinach-mushroom", pizzas[8].ID)
	})

	t.Run("Filters by category and featured", func(t *testing.T) {
		vegetarian := c.Pizzas(models.CategoryVegetarian, false)
		featured := c.Pizzas("", true)

		assert.Len(t, vegetarian, 2)
		require.Len(t, featured, 2)
		assert.Equal(t, "deluxe", featured[0].ID)
		assert.Equal(t, "bacon-giardiniera", featured[1].ID)
	})

	t.Run("Finds a pizza by id", func(t *testing.T) {
		pizza, err := c.Pizza("pepperoni")

		require.NoError(t, err)
		assert.Equal(t, "Pepperoni", pizza.Name)
		assert.True(t, decimal.RequireFromString("16.99").Equal(pizza.Price))
	})

	t.Run("Unknown pizza", func(t *testing.T) {
		_, err := c.Pizza("hawaiian")

		assert.ErrorIs(t, err, catalog.ErrPizzaNotFound)
	})

	t.Run("Sides by course", func(t *testing.T) {
		assert.Len(t, c.Sides(""), 11)
		assert.Len(t, c.Sides(models.CourseDrink), 4)

		side, err := c.Side("cannoli")
		require.NoError(t, err)
		assert.Equal(t, models.CourseDessert, side.Course)

		_, err = c.Side("calzone")
		assert.ErrorIs(t, err, catalog.ErrSideNotFound)
	})

	t.Run("Rules", func(t *testing.T) {
		rules := c.Rules()

		assert.Equal(t, "Medium", rules.BaseSize().Name)
		assert.Equal(t, []string{"Pepperoni"}, rules.DefaultToppings("pepperoni"))
		assert.Empty(t, rules.DefaultToppings("cheese"))

		large, ok := rules.Size("large")
		require.True(t, ok)
		assert.True(t, decimal.NewFromInt(3).Equal(large.Price))

		_, ok = rules.Topping("Anchovies")
		assert.False(t, ok)
	})
}

func TestParse(t *testing.T) {
	t.Run("Rejects an unknown category", func(t *testing.T) {
		doc := []byte(`
pizzas:
  - {id: margherita, name: Margherita, price: "12.00", category: neapolitan}
sizes:
  - {name: Medium, price: "0"}
`)
		_, err := catalog.Parse(doc)

		assert.ErrorContains(t, err, "unknown category")
	})

	t.Run("Rejects a duplicate id", func(t *testing.T) {
		doc := []byte(`
pizzas:
  - {id: cheese, name: Cheese, price: "12.00", category: classic}
sides:
  - {id: cheese, name: Cheese Bread, price: "4.00", course: appetizer}
sizes:
  - {name: Medium, price: "0"}
`)
		_, err := catalog.Parse(doc)

		assert.ErrorContains(t, err, "duplicate id")
	})

	t.Run("Rejects a default topping that is not on the menu", func(t *testing.T) {
		doc := []byte(`
pizzas:
  - {id: cheese, name: Cheese, price: "12.00", category: classic}
sizes:
  - {name: Medium, price: "0"}
toppings:
  - {name: Basil, price: "0.50"}
defaults:
  cheese: [Anchovies]
`)
		_, err := catalog.Parse(doc)

		assert.ErrorContains(t, err, "unknown topping")
	})

	t.Run("Requires exactly one base size", func(t *testing.T) {
		doc := []byte(`
sizes:
  - {name: Small, price: "-2.00"}
  - {name: Large, price: "3.00"}
`)
		_, err := catalog.Parse(doc)

		assert.ErrorContains(t, err, "base size")
	})
}
