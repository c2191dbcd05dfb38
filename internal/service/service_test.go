package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
)

// fakeMenuRepo is an in-memory MenuItemRepository with injectable failures.
type fakeMenuRepo struct {
	mu          sync.Mutex
	items       map[string]domain.MenuItem
	stockDeltas map[string]int64
	nextID      int

	failCreate error
	failUpdate error
	failDelete error
	failAdjust error
}

func newFakeMenuRepo(items ...domain.MenuItem) *fakeMenuRepo {
	r := &fakeMenuRepo{
		items:       make(map[string]domain.MenuItem),
		stockDeltas: make(map[string]int64),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeMenuRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeMenuRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
	}
	return &item, nil
}

func (r *fakeMenuRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		r.nextID++
		item.ID = fmt.Sprintf("item-%d", r.nextID)
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("menu item %s: %w", item.ID, repo.ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) AdjustStock(ctx context.Context, id string, delta int64) error {
	if r.failAdjust != nil {
		return r.failAdjust
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stockDeltas[id] += delta
	if item, ok := r.items[id]; ok && item.Stock != nil {
		next := *item.Stock + delta
		item.Stock = &next
		r.items[id] = item
	}
	return nil
}

func (r *fakeMenuRepo) Delete(ctx context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("menu item %s: %w", id, repo.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// fakeOrderRepo is an in-memory OrderRepository with injectable failures.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]domain.Order
	nextID int

	failCreate error
	failUpdate error
	failDelete error
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o.Clone())
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, repo.ErrNotFound)
	}
	return o.Clone(), nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.nextID++
		order.ID = fmt.Sprintf("order-%d", r.nextID)
	}
	r.orders[order.ID] = *order.Clone()
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order %s: %w", order.ID, repo.ErrNotFound)
	}
	r.orders[order.ID] = *order.Clone()
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, repo.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

// fakeLineItemRepo is an in-memory OrderLineItemRepository tracking the
// projection rows per order.
type fakeLineItemRepo struct {
	mu   sync.Mutex
	rows map[string][]domain.OrderLineItemRow
}

func newFakeLineItemRepo() *fakeLineItemRepo {
	return &fakeLineItemRepo{rows: make(map[string][]domain.OrderLineItemRow)}
}

func (r *fakeLineItemRepo) Rebuild(ctx context.Context, orderID string, items []domain.OrderLineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]domain.OrderLineItemRow, 0, len(items))
	for i, li := range items {
		rows = append(rows, domain.OrderLineItemRow{
			ID:         fmt.Sprintf("%s-%d", orderID, i),
			OrderID:    orderID,
			MenuItemID: li.MenuItemID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			BasePrice:  li.BasePrice,
			IsPrepared: li.IsPrepared,
			Note:       li.Note,
		})
	}
	r.rows[orderID] = rows
	return nil
}

func (r *fakeLineItemRepo) DeleteByOrderID(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, orderID)
	return nil
}

func (r *fakeLineItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]domain.OrderLineItemRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.OrderLineItemRow, len(r.rows[orderID]))
	copy(out, r.rows[orderID])
	return out, nil
}

// fakeBroker records published messages per queue.
type fakeBroker struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][][]byte)}
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func (b *fakeBroker) count(queueName string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published[queueName])
}

func intPtr(v int64) *int64 { return &v }
