// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    uuid.UUID          `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	PrevStatus models.OrderStatus `json:"prev_status,omitempty"`
	Total      decimal.Decimal    `json:"total"`
	ItemCount  int                `json:"item_count"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	w   messageWriter
	now func() time.Time
}

func NewPublisher(cfg config.Kafka) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{w: w, now: time.Now}
}

// OrderPlaced publishes an order.placed event keyed by order id, so every
// event of one order lands on the same partition.
func (p *Publisher) OrderPlaced(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, OrderEvent{
		Type:      TypeOrderPlaced,
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: itemCount(order.Items),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) error {
	return p.publish(ctx, OrderEvent{
		Type:       TypeOrderStatusChanged,
		OrderID:    order.ID,
		Status:     order.Status,
		PrevStatus: from,
		Total:      order.Total,
		ItemCount:  itemCount(order.Items),
	})
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

func (p *Publisher) publish(ctx context.Context, evt OrderEvent) error {
	evt.OccurredAt = p.now().UTC()

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", evt.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	return nil
}

func itemCount(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
