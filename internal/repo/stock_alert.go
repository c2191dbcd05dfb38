package repo

import (
	"context"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

type StockAlertRepository interface {
	Create(ctx context.Context, alert *domain.StockAlert) error
	ListRecent(ctx context.Context, limit int) ([]domain.StockAlert, error)
}
