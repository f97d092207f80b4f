package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"complete an order", models.OrderStatusInProgress, models.OrderStatusCompleted, true},
		{"reopen an order", models.OrderStatusCompleted, models.OrderStatusInProgress, true},
		{"same status", models.OrderStatusInProgress, models.OrderStatusInProgress, false},
		{"unknown target", models.OrderStatusInProgress, models.OrderStatus("cancelled"), false},
		{"unknown source", models.OrderStatus("pending"), models.OrderStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.CanTransition(tt.from, tt.to))
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, models.OrderStatusInProgress.Valid())
	assert.True(t, models.OrderStatusCompleted.Valid())
	assert.False(t, models.OrderStatus("").Valid())
	assert.False(t, models.OrderStatus("shipping").Valid())
}

func TestCartItemLineTotal(t *testing.T) {
	item := models.CartItem{ID: "pepperoni", Price: decimal.RequireFromString("16.99"), Quantity: 3}

	assert.True(t, decimal.RequireFromString("50.97").Equal(item.LineTotal()))
}
