package local

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
)

type MenuItemRepository struct {
	storage *Storage
}

func NewMenuItemRepository(storage *Storage) *MenuItemRepository {
	return &MenuItemRepository{storage: storage}
}

func cloneMenuItem(item domain.MenuItem) domain.MenuItem {
	return *item.Clone()
}

func (r *MenuItemRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.MenuItem, len(s.menuItems))
	for i, item := range s.menuItems {
		items[i] = cloneMenuItem(item)
	}
	return items, nil
}

func (r *MenuItemRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.menuItems {
		if item.ID == id {
			out := cloneMenuItem(item)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
}

func (r *MenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	s.menuItems = append(s.menuItems, cloneMenuItem(*item))
	if err := s.saveMenuItems(); err != nil {
		s.menuItems = s.menuItems[:len(s.menuItems)-1]
		return err
	}
	return nil
}

func (r *MenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.menuItems {
		if s.menuItems[i].ID == item.ID {
			item.UpdatedAt = time.Now()
			prev := s.menuItems[i]
			s.menuItems[i] = cloneMenuItem(*item)
			if err := s.saveMenuItems(); err != nil {
				s.menuItems[i] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("menu item %s: %w", item.ID, repo.ErrNotFound)
}

func (r *MenuItemRepository) AdjustStock(ctx context.Context, id string, delta int64) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.menuItems {
		if s.menuItems[i].ID != id {
			continue
		}
		if s.menuItems[i].Stock == nil {
			// untracked item, nothing to adjust
			return nil
		}
		next := *s.menuItems[i].Stock + delta
		s.menuItems[i].Stock = &next
		s.menuItems[i].UpdatedAt = time.Now()
		return s.saveMenuItems()
	}
	return nil
}

func (r *MenuItemRepository) Delete(ctx context.Context, id string) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.menuItems {
		if s.menuItems[i].ID == id {
			s.menuItems = append(s.menuItems[:i], s.menuItems[i+1:]...)
			return s.saveMenuItems()
		}
	}
	return fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
}
