package domain

import "time"

type OrderEvent struct {
	EventType     string        `json:"event_type"`
	OrderID       string        `json:"order_id"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Total         int64         `json:"total"`
	Timestamp     time.Time     `json:"timestamp"`
}

type StockAlertEvent struct {
	EventType  string    `json:"event_type"`
	MenuItemID string    `json:"menu_item_id"`
	Name       string    `json:"name"`
	Stock      int64     `json:"stock"`
	MinStock   int64     `json:"min_stock"`
	Timestamp  time.Time `json:"timestamp"`
}

type MenuImportMessage struct {
	TaskID        string `json:"task_id"`
	SpreadsheetID string `json:"spreadsheet_id"`
	ReadRange     string `json:"read_range"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
	EventStockLow           = "stock.low"
)
