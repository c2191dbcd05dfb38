package local

import (
	"context"
	"errors"
	"testing"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
)

func intPtr(v int64) *int64 { return &v }

func TestMenuItemsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	menuRepo := NewMenuItemRepository(storage)

	item := &domain.MenuItem{
		Name:      "Croissant",
		BasePrice: 20000,
		Category:  domain.CategoryFood,
		Bundle: &domain.BundleConfig{
			Enabled:     true,
			BuyQuantity: 3,
			BundlePrice: 50000,
		},
		Stock:    intPtr(10),
		MinStock: intPtr(2),
	}
	if err := menuRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == "" {
		t.Fatal("Create must assign an id")
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := NewMenuItemRepository(reopened).GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID after reopen: %v", err)
	}
	if got.Name != "Croissant" || got.BasePrice != 20000 {
		t.Errorf("got %+v, want the created item back", got)
	}
	if got.Bundle == nil || got.Bundle.BuyQuantity != 3 || got.Bundle.BundlePrice != 50000 {
		t.Errorf("bundle config lost on reopen: %+v", got.Bundle)
	}
	if got.Stock == nil || *got.Stock != 10 {
		t.Errorf("stock lost on reopen: %v", got.Stock)
	}
}

func TestOrdersSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	storage, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	orderRepo := NewOrderRepository(storage)

	order := &domain.Order{
		CustomerName: "Guest",
		Items: []domain.OrderLineItem{
			{MenuItemID: "croissant", Name: "Croissant", BasePrice: 20000, Quantity: 2},
		},
		Total:         40000,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if err := orderRepo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := NewOrderRepository(reopened).GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetByID after reopen: %v", err)
	}
	if got.Total != 40000 || got.Status != domain.StatusPending {
		t.Errorf("got %+v, want the created order back", got)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("line items lost on reopen: %+v", got.Items)
	}
}

func TestAdjustStockUntrackedIsNoop(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	menuRepo := NewMenuItemRepository(storage)

	item := &domain.MenuItem{
		Name:      "Latte",
		BasePrice: 25000,
		Category:  domain.CategoryCoffee,
	}
	if err := menuRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := menuRepo.AdjustStock(context.Background(), item.ID, -3); err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}

	got, err := menuRepo.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stock != nil {
		t.Errorf("untracked item must stay untracked, got stock %v", got.Stock)
	}
}

func TestDeleteMissingOrderReturnsNotFound(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	orderRepo := NewOrderRepository(storage)

	if err := orderRepo.Delete(context.Background(), "nope"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
