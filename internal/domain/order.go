package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
	StatusPickedUp  OrderStatus = "Picked Up"
	StatusCancelled OrderStatus = "Cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusPickedUp, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Paid"
	PaymentUnpaid PaymentStatus = "Unpaid"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

const DefaultCustomerName = "Guest"

// OrderLineItem is a snapshot of a menu item taken when the item was added,
// so later menu edits never alter historical orders.
type OrderLineItem struct {
	MenuItemID string        `bson:"menu_item_id" json:"menu_item_id"`
	Name       string        `bson:"name" json:"name"`
	BasePrice  int64         `bson:"base_price" json:"base_price"`
	Category   Category      `bson:"category" json:"category"`
	Image      string        `bson:"image,omitempty" json:"image,omitempty"`
	Bundle     *BundleConfig `bson:"bundle,omitempty" json:"bundle,omitempty"`
	Quantity   int64         `bson:"quantity" json:"quantity"`
	Note       string        `bson:"note,omitempty" json:"note,omitempty"`
	IsPrepared bool          `bson:"is_prepared" json:"is_prepared"`
}

// NewLineItem snapshots a menu item into a line item with quantity 1.
func NewLineItem(item MenuItem) OrderLineItem {
	li := OrderLineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		BasePrice:  item.BasePrice,
		Category:   item.Category,
		Image:      item.Image,
		Quantity:   1,
	}
	if item.Bundle != nil {
		b := *item.Bundle
		li.Bundle = &b
	}
	return li
}

func (li OrderLineItem) clone() OrderLineItem {
	out := li
	if li.Bundle != nil {
		b := *li.Bundle
		out.Bundle = &b
	}
	return out
}

// CloneLineItems deep-copies a line item slice.
func CloneLineItems(items []OrderLineItem) []OrderLineItem {
	if items == nil {
		return nil
	}
	out := make([]OrderLineItem, len(items))
	for i, li := range items {
		out[i] = li.clone()
	}
	return out
}

// ValidateLineItems rejects quantities below 1 and malformed bundle snapshots
// before anything is priced or persisted.
func ValidateLineItems(items []OrderLineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for _, li := range items {
		if li.MenuItemID == "" {
			return fmt.Errorf("line item is missing a menu item id")
		}
		if li.Quantity < 1 {
			return fmt.Errorf("quantity for %q must be at least 1", li.Name)
		}
		if li.BasePrice < 0 {
			return fmt.Errorf("base price for %q must not be negative", li.Name)
		}
		if li.Bundle != nil && li.Bundle.Enabled {
			if li.Bundle.BuyQuantity < 2 {
				return fmt.Errorf("bundle buy quantity for %q must be at least 2", li.Name)
			}
			if li.Bundle.BundlePrice < 0 {
				return fmt.Errorf("bundle price for %q must not be negative", li.Name)
			}
		}
	}
	return nil
}

type EditHistoryEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Changes   string    `bson:"changes" json:"changes"`
}

// Order embeds its line items directly; insertion order is display order.
// Total is the authoritative computed price of Items at the last save.
type Order struct {
	ID            string             `bson:"_id,omitempty" json:"id"`
	CustomerName  string             `bson:"customer_name" json:"customer_name"`
	Items         []OrderLineItem    `bson:"items" json:"items"`
	Total         int64              `bson:"total" json:"total"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	EditHistory   []EditHistoryEntry `bson:"edit_history,omitempty" json:"edit_history,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Clone deep-copies the order, including line items and history.
func (o *Order) Clone() *Order {
	out := *o
	out.Items = CloneLineItems(o.Items)
	if o.EditHistory != nil {
		out.EditHistory = make([]EditHistoryEntry, len(o.EditHistory))
		copy(out.EditHistory, o.EditHistory)
	}
	return &out
}

// FindItem returns a pointer into Items for the given menu item id, or nil.
func (o *Order) FindItem(menuItemID string) *OrderLineItem {
	for i := range o.Items {
		if o.Items[i].MenuItemID == menuItemID {
			return &o.Items[i]
		}
	}
	return nil
}

// OrderLineItemRow is the denormalized one-row-per-line-item projection kept
// in sync with Order.Items on every write (remote mode only). Reporting reads
// from this instead of unwinding the embedded array.
type OrderLineItemRow struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	OrderID    string    `bson:"order_id" json:"order_id"`
	MenuItemID string    `bson:"menu_item_id" json:"menu_item_id"`
	Name       string    `bson:"name" json:"name"`
	Quantity   int64     `bson:"quantity" json:"quantity"`
	BasePrice  int64     `bson:"base_price" json:"base_price"`
	IsPrepared bool      `bson:"is_prepared" json:"is_prepared"`
	Note       string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
