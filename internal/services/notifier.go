package service

import (
	"context"
	"errors"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
)

// OrderNotifier is told about order lifecycle changes after they commit.
// Notifications are best effort; an error never undoes the change.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) error
}

type notifiers []OrderNotifier

// NewNotifiers fans out to every non-nil notifier and joins their errors.
func NewNotifiers(ns ...OrderNotifier) OrderNotifier {
	out := make(notifiers, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (ns notifiers) OrderPlaced(ctx context.Context, order *models.Order) error {
	var errs []error
	for _, n := range ns {
		if err := n.OrderPlaced(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ns notifiers) OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) error {
	var errs []error
	for _, n := range ns {
		if err := n.OrderStatusChanged(ctx, order, from); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
