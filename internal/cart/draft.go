// Package cart holds the mutable staging area an order is built or edited
// in. A draft never touches the committed order; discarding it leaves the
// original untouched.
package cart

import (
	"fmt"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

type Draft struct {
	customerName string
	items        []domain.OrderLineItem
	orderNote    string
}

// New starts an empty draft for the cashier checkout flow.
func New() *Draft {
	return &Draft{}
}

// FromOrder starts an edit draft seeded with a deep copy of the order's
// items, so draft mutations can never leak into the committed order.
func FromOrder(o *domain.Order) *Draft {
	return &Draft{
		customerName: o.CustomerName,
		items:        domain.CloneLineItems(o.Items),
		orderNote:    o.Note,
	}
}

func (d *Draft) find(menuItemID string) int {
	for i := range d.items {
		if d.items[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Add appends a quantity-1 snapshot of the menu item, or increments the
// existing line by one. An increment clears IsPrepared: a re-added item must
// be re-verified by the kitchen.
func (d *Draft) Add(item domain.MenuItem) {
	if i := d.find(item.ID); i >= 0 {
		d.items[i].Quantity++
		d.items[i].IsPrepared = false
		return
	}
	d.items = append(d.items, domain.NewLineItem(item))
}

// AdjustQuantity steps the quantity by delta, never dropping below 1 through
// this path; Remove and Decrement are the removal paths. Increasing clears
// IsPrepared, decreasing leaves it alone.
func (d *Draft) AdjustQuantity(menuItemID string, delta int64) error {
	i := d.find(menuItemID)
	if i < 0 {
		return fmt.Errorf("item %s is not in the cart", menuItemID)
	}

	next := d.items[i].Quantity + delta
	if next < 1 {
		next = 1
	}
	if next > d.items[i].Quantity {
		d.items[i].IsPrepared = false
	}
	d.items[i].Quantity = next
	return nil
}

// Decrement lowers the quantity by one and removes the line entirely when it
// reaches zero (the from-scratch cashier stepper).
func (d *Draft) Decrement(menuItemID string) error {
	i := d.find(menuItemID)
	if i < 0 {
		return fmt.Errorf("item %s is not in the cart", menuItemID)
	}

	d.items[i].Quantity--
	if d.items[i].Quantity < 1 {
		d.items = append(d.items[:i], d.items[i+1:]...)
	}
	return nil
}

// Remove deletes the line item outright.
func (d *Draft) Remove(menuItemID string) {
	if i := d.find(menuItemID); i >= 0 {
		d.items = append(d.items[:i], d.items[i+1:]...)
	}
}

func (d *Draft) SetItemNote(menuItemID, note string) error {
	i := d.find(menuItemID)
	if i < 0 {
		return fmt.Errorf("item %s is not in the cart", menuItemID)
	}
	d.items[i].Note = note
	return nil
}

func (d *Draft) SetOrderNote(note string) {
	d.orderNote = note
}

// SetCustomerName records the customer; empty falls back to "Guest" at
// commit time.
func (d *Draft) SetCustomerName(name string) {
	d.customerName = name
}

// CustomerName returns the entered name, defaulting to "Guest".
func (d *Draft) CustomerName() string {
	if d.customerName == "" {
		return domain.DefaultCustomerName
	}
	return d.customerName
}

func (d *Draft) OrderNote() string {
	return d.orderNote
}

// Total recomputes the draft price from scratch on every call.
func (d *Draft) Total() int64 {
	return domain.OrderTotal(d.items)
}

// Items returns a deep copy of the draft lines in insertion order.
func (d *Draft) Items() []domain.OrderLineItem {
	return domain.CloneLineItems(d.items)
}

func (d *Draft) Empty() bool {
	return len(d.items) == 0
}
