package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusInProgress: {OrderStatusCompleted: true},
	OrderStatusCompleted:  {OrderStatusInProgress: true},
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// CustomerInfo is what the checkout form collects. The card fields are demo
// data only: nothing is charged and no payment network is contacted. The
// number is masked and the CVV dropped before an order is stored.
type CustomerInfo struct {
	Name       string `json:"name" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required,max=200"`
	City       string `json:"city" validate:"required,max=100"`
	ZipCode    string `json:"zip_code" validate:"required,max=20"`
	CardNumber string `json:"card_number" validate:"required,min=4,max=23"`
	CardExpiry string `json:"card_expiry" validate:"required,max=7"`
	CardCVV    string `json:"card_cvv,omitempty" validate:"required,max=4"`
}

type Order struct {
	ID            uuid.UUID       `json:"id"`
	IdentityToken string          `json:"-"`
	Items         []CartItem      `json:"items"`
	Customer      CustomerInfo    `json:"customer"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CheckoutRequest struct {
	Customer CustomerInfo `json:"customer" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=in_progress completed"`
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	IdentityToken string
	Status        OrderStatus
}
