package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"go.uber.org/zap"
)

// MenuService owns the in-memory menu collection the rest of the app reads
// from. Writes go through the backend with an optimistic local update first;
// on backend failure the local copy is rolled back by re-fetching the
// authoritative state.
type MenuService struct {
	menuRepo repo.MenuItemRepository
	broker   queue.Broker // nil when no broker is configured
	logger   *zap.SugaredLogger

	mu    sync.RWMutex
	items []domain.MenuItem
}

func NewMenuService(
	menuRepo repo.MenuItemRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		broker:   broker,
		logger:   logger,
	}
}

// Load replaces the in-memory collection with the backend's current state.
// Called once at startup and again whenever a rollback needs a full refresh.
func (s *MenuService) Load(ctx context.Context) error {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load menu items: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return nil
}

func (s *MenuService) List() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MenuItem, len(s.items))
	for i := range s.items {
		out[i] = *s.items[i].Clone()
	}
	return out
}

func (s *MenuService) Get(id string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
}

// LowStock lists tracked items at or below their alert threshold.
func (s *MenuService) LowStock() []domain.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.MenuItem
	for i := range s.items {
		if s.items[i].LowStock() {
			out = append(out, *s.items[i].Clone())
		}
	}
	return out
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	// the backend assigns the id, so the local insert happens after the write
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	s.mu.Lock()
	s.items = append(s.items, *item)
	s.mu.Unlock()

	s.logger.Infow("menu item created", "menu_item_id", item.ID, "name", item.Name)

	return nil
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = *item
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		return fmt.Errorf("menu item %s: %w", item.ID, repo.ErrNotFound)
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		s.rollbackItem(ctx, item.ID)
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	s.logger.Infow("menu item updated", "menu_item_id", item.ID)

	return nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// already gone on the backend, local removal stands
			return nil
		}
		s.rollbackItem(ctx, id)
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Infow("menu item deleted", "menu_item_id", id)

	return nil
}

// ApplyStockDelta adjusts one item's stock counter on the backend and in
// memory, and raises a stock.low event when the item lands at or below its
// threshold. Items that do not track stock are a no-op.
func (s *MenuService) ApplyStockDelta(ctx context.Context, id string, delta int64) error {
	if delta == 0 {
		return nil
	}

	if err := s.menuRepo.AdjustStock(ctx, id, delta); err != nil {
		return fmt.Errorf("failed to adjust stock for %s: %w", id, err)
	}

	var alert *domain.StockAlertEvent

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != id || s.items[i].Stock == nil {
			continue
		}
		next := *s.items[i].Stock + delta
		s.items[i].Stock = &next
		if s.items[i].LowStock() {
			alert = &domain.StockAlertEvent{
				EventType:  domain.EventStockLow,
				MenuItemID: id,
				Name:       s.items[i].Name,
				Stock:      next,
				Timestamp:  time.Now(),
			}
			if s.items[i].MinStock != nil {
				alert.MinStock = *s.items[i].MinStock
			}
		}
		break
	}
	s.mu.Unlock()

	if alert != nil {
		s.publishStockAlert(ctx, alert)
	}

	return nil
}

func (s *MenuService) publishStockAlert(ctx context.Context, alert *domain.StockAlertEvent) {
	if s.broker == nil {
		return
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		s.logger.Errorw("failed to marshal stock alert", "menu_item_id", alert.MenuItemID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueStockAlerts, payload); err != nil {
		s.logger.Errorw("failed to publish stock alert", "menu_item_id", alert.MenuItemID, "error", err)
		return
	}

	s.logger.Infow("stock alert published", "menu_item_id", alert.MenuItemID, "stock", alert.Stock)
}

// rollbackItem replaces the optimistic local copy with the backend's
// last-known-good state, or drops it when the backend no longer has it.
func (s *MenuService) rollbackItem(ctx context.Context, id string) {
	authoritative, err := s.menuRepo.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			for i := range s.items {
				if s.items[i].ID == id {
					s.items = append(s.items[:i], s.items[i+1:]...)
					break
				}
			}
			return
		}
		s.logger.Errorw("rollback re-fetch failed", "menu_item_id", id, "error", err)
		return
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = *authoritative
			return
		}
	}
	s.items = append(s.items, *authoritative)
}

// HandleRemoteChange applies a live-update notification to the in-memory
// collection. Last writer wins; no merging.
func (s *MenuService) HandleRemoteChange(op string, id string, item *domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op {
	case "delete":
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	case "insert", "update", "replace":
		if item == nil {
			return
		}
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i] = *item
				return
			}
		}
		s.items = append(s.items, *item)
	}
}
