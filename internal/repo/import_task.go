package repo

import (
	"context"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

type ImportTaskRepository interface {
	Create(ctx context.Context, task *domain.ImportTask) error
	GetByID(ctx context.Context, id string) (*domain.ImportTask, error)
	UpdateStatus(ctx context.Context, id string, status domain.ImportTaskStatus, errorMsg string) error
	Complete(ctx context.Context, id string, itemCount int) error
	IncrementRetryCount(ctx context.Context, id string) error
}
