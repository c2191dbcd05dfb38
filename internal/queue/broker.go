package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueOrderEvents    = "order-events"
	QueueStockAlerts    = "stock-alerts"
	QueueMenuImport     = "menu-import"
	QueueOrderEventsDLQ = "order-events-dlq"
	QueueStockAlertsDLQ = "stock-alerts-dlq"
	QueueMenuImportDLQ  = "menu-import-dlq"
)
