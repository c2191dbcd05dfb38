package domain

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryCoffee  Category = "Coffee"
	CategoryTea     Category = "Tea"
	CategoryFood    Category = "Food"
	CategoryDessert Category = "Dessert"
	CategoryOther   Category = "Other"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategoryFood, CategoryDessert, CategoryOther:
		return true
	}
	return false
}

// BundleConfig is a buy-N-for-fixed-price promo attached to a menu item.
// BundlePrice is the price for exactly BuyQuantity units, in minor currency
// units. The engine does not require BundlePrice <= BuyQuantity*BasePrice;
// break-even or loss-making promos are an admin decision.
type BundleConfig struct {
	Enabled        bool  `bson:"enabled" json:"enabled"`
	BuyQuantity    int64 `bson:"buy_quantity" json:"buy_quantity"`
	BundlePrice    int64 `bson:"bundle_price" json:"bundle_price"`
	ShowPromoLabel bool  `bson:"show_promo_label" json:"show_promo_label"`
}

// MenuItem is a purchasable product. Stock and MinStock are nil for items
// that do not track inventory. All prices are in minor currency units.
type MenuItem struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	BasePrice int64         `bson:"base_price" json:"base_price"`
	Category  Category      `bson:"category" json:"category"`
	Image     string        `bson:"image,omitempty" json:"image,omitempty"`
	Bundle    *BundleConfig `bson:"bundle,omitempty" json:"bundle,omitempty"`
	Stock     *int64        `bson:"stock,omitempty" json:"stock,omitempty"`
	MinStock  *int64        `bson:"min_stock,omitempty" json:"min_stock,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if m.BasePrice <= 0 {
		return fmt.Errorf("base price must be positive")
	}
	if !ValidCategory(m.Category) {
		return fmt.Errorf("unknown category %q", m.Category)
	}
	if m.Bundle != nil && m.Bundle.Enabled {
		if m.Bundle.BuyQuantity < 2 {
			return fmt.Errorf("bundle buy quantity must be at least 2")
		}
		if m.Bundle.BundlePrice < 0 {
			return fmt.Errorf("bundle price must not be negative")
		}
	}
	if m.Stock != nil && *m.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// Clone deep-copies the item, including its pointer fields, so callers can
// never write through into a shared copy.
func (m *MenuItem) Clone() *MenuItem {
	out := *m
	if m.Bundle != nil {
		b := *m.Bundle
		out.Bundle = &b
	}
	if m.Stock != nil {
		v := *m.Stock
		out.Stock = &v
	}
	if m.MinStock != nil {
		v := *m.MinStock
		out.MinStock = &v
	}
	return &out
}

// TracksStock reports whether inventory is maintained for this item.
func (m *MenuItem) TracksStock() bool {
	return m.Stock != nil
}

// LowStock reports whether the item is at or below its alert threshold.
func (m *MenuItem) LowStock() bool {
	return m.Stock != nil && m.MinStock != nil && *m.Stock <= *m.MinStock
}
