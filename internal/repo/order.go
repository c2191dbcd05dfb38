package repo

import (
	"context"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

// OrderLineItemRepository maintains the denormalized per-line-item projection
// (remote mode only). Rebuild is delete-then-reinsert so the rows always
// mirror the order's embedded items after every write.
type OrderLineItemRepository interface {
	Rebuild(ctx context.Context, orderID string, items []domain.OrderLineItem) error
	DeleteByOrderID(ctx context.Context, orderID string) error
	ListByOrderID(ctx context.Context, orderID string) ([]domain.OrderLineItemRow, error)
}
