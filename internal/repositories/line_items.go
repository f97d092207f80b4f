package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// lineRow is one stored cart or order line as it comes off the wire.
type lineRow struct {
	productID   string
	productName string
	price       decimal.Decimal
	quantity    int
	size        sql.NullString
	toppings    []byte
	removed     pq.StringArray
}

func (l *lineRow) scanTargets() []any {
	return []any{&l.productID, &l.productName, &l.price, &l.quantity, &l.size, &l.toppings, &l.removed}
}

func (l *lineRow) toCartItem() (models.CartItem, error) {
	item := models.CartItem{
		ID:       l.productID,
		Name:     l.productName,
		Price:    l.price,
		Quantity: l.quantity,
		Size:     l.size.String,
	}

	if l.toppings != nil {
		if err := json.Unmarshal(l.toppings, &item.Toppings); err != nil {
			return models.CartItem{}, fmt.Errorf("failed to unmarshal toppings of %s: %w", l.productID, err)
		}
	}

	if len(l.removed) > 0 {
		item.RemovedToppings = []string(l.removed)
	}

	return item, nil
}

// lineArgs returns the size, toppings and removed toppings columns. Absent
// values are stored as NULL so the nil and empty topping lists stay distinct.
func lineArgs(item models.CartItem) (any, any, any, error) {
	var size any
	if item.Size != "" {
		size = item.Size
	}

	var toppings any
	if item.Toppings != nil {
		data, err := json.Marshal(item.Toppings)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal toppings of %s: %w", item.ID, err)
		}
		toppings = data
	}

	return size, toppings, pq.Array(item.RemovedToppings), nil
}
