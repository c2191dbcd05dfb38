package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"go.uber.org/zap"
)

// StockAlertWorker persists stock.low events so the dashboard can show a
// history instead of only the live low-stock list.
type StockAlertWorker struct {
	alertRepo repo.StockAlertRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewStockAlertWorker(
	alertRepo repo.StockAlertRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *StockAlertWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockAlertWorker{
		alertRepo: alertRepo,
		broker:    broker,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *StockAlertWorker) Start() error {
	w.logger.Info("starting stock alert worker")

	return w.broker.Subscribe(w.ctx, queue.QueueStockAlerts, w.handleMessage)
}

func (w *StockAlertWorker) Stop() {
	w.logger.Info("stopping stock alert worker")
	w.cancel()
}

func (w *StockAlertWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.StockAlertEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal stock alert", "error", err)
		return fmt.Errorf("failed to unmarshal stock alert: %w", err)
	}

	alert := &domain.StockAlert{
		MenuItemID: event.MenuItemID,
		Name:       event.Name,
		Stock:      event.Stock,
		MinStock:   event.MinStock,
		Timestamp:  event.Timestamp,
	}

	if err := w.alertRepo.Create(ctx, alert); err != nil {
		w.logger.Errorw("failed to persist stock alert", "menu_item_id", event.MenuItemID, "error", err)
		return err
	}

	w.logger.Infow("stock alert recorded", "menu_item_id", event.MenuItemID, "stock", event.Stock)

	return nil
}
