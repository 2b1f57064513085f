// Package cart holds a customer's in-progress order before it is submitted.
package cart

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"food-ordering-api/client"
	"food-ordering-api/models"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNameRequired = errors.New("customer name is required")
)

// OrderPlacer submits an order; *client.Client satisfies it.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order client.OrderInput) (uint, error)
}

type Cart struct {
	mu    sync.Mutex
	lines []models.CartLine
}

func New() *Cart {
	return &Cart{}
}

// LineID is the key a meal with the given selection is stored under.
// Selection order does not matter.
func LineID(mealID uint, selected []string) string {
	sorted := append([]string(nil), selected...)
	sort.Strings(sorted)
	return strconv.FormatUint(uint64(mealID), 10) + "_" + strings.Join(sorted, "_")
}

// Add puts one unit of meal into the cart. Selected labels the meal does not
// offer are ignored. The same meal with a different selection is a new line.
// The snapshot keeps the meal's full option list; the selection is carried
// by the display name and the line id.
func (c *Cart) Add(meal models.Meal, selected []string) string {
	chosen := make([]string, 0, len(selected))
	for _, opt := range meal.Options {
		for _, s := range selected {
			if s == opt {
				chosen = append(chosen, opt)
				break
			}
		}
	}

	id := LineID(meal.ID, chosen)
	name := meal.Name
	if len(chosen) > 0 {
		name += " (" + strings.Join(chosen, ", ") + ")"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity++
		return id
	}
	c.lines = append(c.lines, models.CartLine{
		Meal: models.MealSnapshot{
			ID:           meal.ID,
			Name:         name,
			Price:        meal.Price,
			Description:  meal.Description,
			Options:      append(models.OptionList{}, meal.Options...),
			CategoryID:   meal.CategoryID,
			UniqueCartID: id,
		},
		Quantity: 1,
	})
	return id
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Meal.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines...)
}

func (c *Cart) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Checkout submits the cart and, on success, takes the submitted quantities
// out of it. Lines added while the request is in flight stay. On any error
// the cart is left untouched.
func (c *Cart) Checkout(ctx context.Context, api OrderPlacer, customerName string) (uint, error) {
	if strings.TrimSpace(customerName) == "" {
		return 0, ErrNameRequired
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	var total float64
	for _, l := range lines {
		total += l.Meal.Price * float64(l.Quantity)
	}

	id, err := api.PlaceOrder(ctx, client.OrderInput{
		CustomerName: customerName,
		Items:        lines,
		TotalPrice:   total,
	})
	if err != nil {
		return 0, err
	}
	c.consume(lines)
	return id, nil
}

func (c *Cart) consume(submitted []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range submitted {
		i := c.index(l.Meal.UniqueCartID)
		if i < 0 {
			continue
		}
		c.lines[i].Quantity -= l.Quantity
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
	}
}

func (c *Cart) index(id string) int {
	for i, l := range c.lines {
		if l.Meal.UniqueCartID == id {
			return i
		}
	}
	return -1
}
