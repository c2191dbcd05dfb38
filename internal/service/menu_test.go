package service

import (
	"context"
	"errors"
	"testing"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"go.uber.org/zap"
)

func newMenuService(t *testing.T, menuRepo repo.MenuItemRepository, broker queue.Broker) *MenuService {
	t.Helper()

	s := NewMenuService(menuRepo, broker, zap.NewNop().Sugar())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func latteItem() domain.MenuItem {
	return domain.MenuItem{
		ID:        "latte",
		Name:      "Latte",
		BasePrice: 25000,
		Category:  domain.CategoryCoffee,
	}
}

func TestMenuCreateAssignsIDAndCaches(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	s := newMenuService(t, menuRepo, nil)

	item := latteItem()
	item.ID = ""
	if err := s.Create(context.Background(), &item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == "" {
		t.Fatal("backend must assign an id")
	}

	got, err := s.Get(item.ID)
	if err != nil {
		t.Fatalf("Get after Create: %v", err)
	}
	if got.Name != "Latte" {
		t.Errorf("cached name = %q, want Latte", got.Name)
	}
}

func TestMenuCreateRejectsInvalid(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	s := newMenuService(t, menuRepo, nil)

	item := latteItem()
	item.BasePrice = 0
	if err := s.Create(context.Background(), &item); err == nil {
		t.Fatal("expected validation error for zero base price")
	}
	if len(s.List()) != 0 {
		t.Error("invalid item must not enter the cache")
	}
}

func TestMenuUpdateRollsBackOnBackendFailure(t *testing.T) {
	menuRepo := newFakeMenuRepo(latteItem())
	s := newMenuService(t, menuRepo, nil)

	menuRepo.failUpdate = errors.New("write failed")

	edited := latteItem()
	edited.Name = "Flat White"
	if err := s.Update(context.Background(), &edited); err == nil {
		t.Fatal("expected backend failure")
	}

	got, err := s.Get("latte")
	if err != nil {
		t.Fatalf("Get after rollback: %v", err)
	}
	if got.Name != "Latte" {
		t.Errorf("name after rollback = %q, want the backend state Latte", got.Name)
	}
}

func TestMenuDeleteToleratesMissingOnBackend(t *testing.T) {
	menuRepo := newFakeMenuRepo(latteItem())
	s := newMenuService(t, menuRepo, nil)

	// simulate another client deleting it first
	if err := menuRepo.Delete(context.Background(), "latte"); err != nil {
		t.Fatalf("seed delete: %v", err)
	}

	if err := s.Delete(context.Background(), "latte"); err != nil {
		t.Fatalf("Delete must treat an already-missing item as success, got %v", err)
	}
	if _, err := s.Get("latte"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("item must be gone locally, got %v", err)
	}
}

func TestApplyStockDeltaZeroIsNoop(t *testing.T) {
	menuRepo := newFakeMenuRepo(latteItem())
	s := newMenuService(t, menuRepo, nil)

	if err := s.ApplyStockDelta(context.Background(), "latte", 0); err != nil {
		t.Fatalf("ApplyStockDelta(0): %v", err)
	}
	if len(menuRepo.stockDeltas) != 0 {
		t.Error("zero delta must not reach the backend")
	}
}

func TestApplyStockDeltaPublishesLowStockAlert(t *testing.T) {
	item := latteItem()
	item.Stock = intPtr(5)
	item.MinStock = intPtr(3)

	menuRepo := newFakeMenuRepo(item)
	broker := newFakeBroker()
	s := newMenuService(t, menuRepo, broker)

	if err := s.ApplyStockDelta(context.Background(), "latte", -1); err != nil {
		t.Fatalf("ApplyStockDelta: %v", err)
	}
	if broker.count(queue.QueueStockAlerts) != 0 {
		t.Error("stock 4 is above min 3, no alert expected")
	}

	if err := s.ApplyStockDelta(context.Background(), "latte", -1); err != nil {
		t.Fatalf("ApplyStockDelta: %v", err)
	}
	if broker.count(queue.QueueStockAlerts) != 1 {
		t.Errorf("stock 3 hit the threshold, want 1 alert, got %d", broker.count(queue.QueueStockAlerts))
	}

	low := s.LowStock()
	if len(low) != 1 || low[0].ID != "latte" {
		t.Errorf("LowStock = %v, want the latte", low)
	}
}

func TestMenuReadsReturnIsolatedCopies(t *testing.T) {
	item := latteItem()
	item.Bundle = &domain.BundleConfig{Enabled: true, BuyQuantity: 3, BundlePrice: 60000}
	item.Stock = intPtr(10)

	menuRepo := newFakeMenuRepo(item)
	s := newMenuService(t, menuRepo, nil)

	got, err := s.Get("latte")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// writing through the returned pointers must not reach the cache
	got.Bundle.BundlePrice = 1
	*got.Stock = -99

	again, err := s.Get("latte")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Bundle.BundlePrice != 60000 {
		t.Errorf("cached bundle price = %d, want 60000", again.Bundle.BundlePrice)
	}
	if *again.Stock != 10 {
		t.Errorf("cached stock = %d, want 10", *again.Stock)
	}

	listed := s.List()
	listed[0].Bundle.BundlePrice = 2

	final, err := s.Get("latte")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.Bundle.BundlePrice != 60000 {
		t.Errorf("cached bundle price after List mutation = %d, want 60000", final.Bundle.BundlePrice)
	}
}

func TestMenuHandleRemoteChange(t *testing.T) {
	menuRepo := newFakeMenuRepo(latteItem())
	s := newMenuService(t, menuRepo, nil)

	renamed := latteItem()
	renamed.Name = "Caffe Latte"
	s.HandleRemoteChange("update", "latte", &renamed)

	got, err := s.Get("latte")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Caffe Latte" {
		t.Errorf("remote update must win, got %q", got.Name)
	}

	s.HandleRemoteChange("delete", "latte", nil)
	if _, err := s.Get("latte"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("remote delete must remove the item, got %v", err)
	}
}
