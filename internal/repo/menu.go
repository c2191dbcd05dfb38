package repo

import (
	"context"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
)

type MenuItemRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	// AdjustStock applies a signed delta to the stock counter. Items that do
	// not track stock are left untouched.
	AdjustStock(ctx context.Context, id string, delta int64) error
	Delete(ctx context.Context, id string) error
}
