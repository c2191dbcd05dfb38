package domain

import "time"

// StockAlert is the persisted record of a stock.low event, shown on the
// admin dashboard.
type StockAlert struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	MenuItemID string    `bson:"menu_item_id" json:"menu_item_id"`
	Name       string    `bson:"name" json:"name"`
	Stock      int64     `bson:"stock" json:"stock"`
	MinStock   int64     `bson:"min_stock" json:"min_stock"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
