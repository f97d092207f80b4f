package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pizza-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	placed  []*models.Order
	changed []models.OrderStatus
	err     error
}

func (r *recordingNotifier) OrderPlaced(_ context.Context, order *models.Order) error {
	r.placed = append(r.placed, order)
	return r.err
}

func (r *recordingNotifier) OrderStatusChanged(_ context.Context, order *models.Order, from models.OrderStatus) error {
	r.changed = append(r.changed, from)
	return r.err
}

func TestNotifiers(t *testing.T) {
	t.Run("Every notifier is called even when one fails", func(t *testing.T) {
		// Arrange
		failing := &recordingNotifier{err: errors.New("smtp down")}
		ok := &recordingNotifier{}
		n := service.NewNotifiers(failing, nil, ok)
		order := &models.Order{Status: models.OrderStatusCompleted}

		// Act
		placedErr := n.OrderPlaced(t.Context(), order)
		changedErr := n.OrderStatusChanged(t.Context(), order, models.OrderStatusInProgress)

		// Assert
		require.Error(t, placedErr)
		assert.Contains(t, placedErr.Error(), "smtp down")
		require.Error(t, changedErr)
		assert.Len(t, failing.placed, 1)
		assert.Len(t, ok.placed, 1)
		assert.Equal(t, []models.OrderStatus{models.OrderStatusInProgress}, ok.changed)
	})

	t.Run("No notifiers is a no-op", func(t *testing.T) {
		n := service.NewNotifiers()

		assert.NoError(t, n.OrderPlaced(t.Context(), &models.Order{}))
	})
}
