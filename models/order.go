package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Order is an immutable record of a submitted cart. TotalPrice is the
// client-computed amount and is never recomputed server side.
type Order struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CustomerName string     `json:"customer_name" gorm:"not null"`
	Items        OrderItems `json:"items" gorm:"column:items_json"`
	TotalPrice   float64    `json:"total_price"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
}

// MealSnapshot is the copy of a meal carried by a cart line. Name holds the
// customized display name and UniqueCartID the key of the cart line.
type MealSnapshot struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	Description  *string    `json:"description"`
	Options      OptionList `json:"options"`
	CategoryID   *uint      `json:"category_id"`
	UniqueCartID string     `json:"uniqueCartId,omitempty"`
}

type CartLine struct {
	Meal     MealSnapshot `json:"meal"`
	Quantity int          `json:"quantity"`
}

// OrderItems is the line-item list of an order, stored as a JSON array.
// Each line keeps the exact JSON the client submitted, including fields
// CartLine does not know about; Lines decodes the typed view.
type OrderItems []json.RawMessage

// NewOrderItems encodes typed cart lines.
func NewOrderItems(lines []CartLine) (OrderItems, error) {
	items := make(OrderItems, 0, len(lines))
	for _, l := range lines {
		b, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("order items: encode: %w", err)
		}
		items = append(items, b)
	}
	return items, nil
}

// Lines decodes every stored line into a CartLine.
func (items OrderItems) Lines() ([]CartLine, error) {
	lines := make([]CartLine, 0, len(items))
	for i, raw := range items {
		var l CartLine
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("order items: line %d: %w", i, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (OrderItems) GormDataType() string { return "text" }

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		items = OrderItems{}
	}
	b, err := json.Marshal([]json.RawMessage(items))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *OrderItems) Scan(value any) error {
	raw, err := columnBytes(value)
	if err != nil {
		return fmt.Errorf("order items: %w", err)
	}
	if len(raw) == 0 {
		*items = OrderItems{}
		return nil
	}
	var lines []json.RawMessage
	if err := json.Unmarshal(raw, &lines); err != nil {
		return fmt.Errorf("order items: decode: %w", err)
	}
	if lines == nil {
		lines = []json.RawMessage{}
	}
	*items = lines
	return nil
}

func (items OrderItems) MarshalJSON() ([]byte, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]json.RawMessage(items))
}

// AfterFind normalizes a NULL items column, which gorm leaves as nil
// without calling Scan.
func (o *Order) AfterFind(*gorm.DB) error {
	if o.Items == nil {
		o.Items = OrderItems{}
	}
	return nil
}
