package local

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
)

type OrderRepository struct {
	storage *Storage
}

func NewOrderRepository(storage *Storage) *OrderRepository {
	return &OrderRepository{storage: storage}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]domain.Order, len(s.orders))
	for i := range s.orders {
		orders[i] = *s.orders[i].Clone()
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			return s.orders[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, repo.ErrNotFound)
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	s.orders = append(s.orders, *order.Clone())
	if err := s.saveOrders(); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		return err
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			prev := s.orders[i]
			s.orders[i] = *order.Clone()
			if err := s.saveOrders(); err != nil {
				s.orders[i] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", order.ID, repo.ErrNotFound)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return s.saveOrders()
		}
	}
	return fmt.Errorf("order %s: %w", id, repo.ErrNotFound)
}
