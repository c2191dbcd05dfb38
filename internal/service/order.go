package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/cart"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/stock"
	"go.uber.org/zap"
)

// LineChange is one requested line of an order edit: the full desired state
// for that menu item. Lines omitted from an edit are removed.
type LineChange struct {
	MenuItemID string
	Quantity   int64
	Note       string
}

// OrderService owns the in-memory orders collection and is the single point
// of truth for order reads and writes. Mutations follow a two-phase
// optimistic pattern: apply the speculative local change, attempt the
// backend write, and on failure replace local state with a fresh
// authoritative read.
type OrderService struct {
	orderRepo    repo.OrderRepository
	lineItemRepo repo.OrderLineItemRepository // nil in local mode
	menu         *MenuService
	broker       queue.Broker // nil when no broker is configured
	logger       *zap.SugaredLogger

	mu     sync.RWMutex
	orders []domain.Order
}

func NewOrderService(
	orderRepo repo.OrderRepository,
	lineItemRepo repo.OrderLineItemRepository,
	menu *MenuService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		lineItemRepo: lineItemRepo,
		menu:         menu,
		broker:       broker,
		logger:       logger,
	}
}

func (s *OrderService) Load(ctx context.Context) error {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	return nil
}

func (s *OrderService) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.orders))
	for i := range s.orders {
		out[i] = *s.orders[i].Clone()
	}
	return out
}

func (s *OrderService) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			return s.orders[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, repo.ErrNotFound)
}

// CreateOrder commits a cashier draft. The fulfillment status always seeds
// Pending; payment status is its own axis. Stock is only consumed after the
// order write itself succeeded.
func (s *OrderService) CreateOrder(ctx context.Context, draft *cart.Draft, payment domain.PaymentStatus) (*domain.Order, error) {
	items := draft.Items()
	if err := domain.ValidateLineItems(items); err != nil {
		return nil, err
	}
	if !domain.ValidPaymentStatus(payment) {
		return nil, fmt.Errorf("unknown payment status %q", payment)
	}

	order := &domain.Order{
		CustomerName:  draft.CustomerName(),
		Items:         items,
		Total:         domain.OrderTotal(items),
		Status:        domain.InitialStatus(),
		PaymentStatus: payment,
		Note:          draft.OrderNote(),
		CreatedAt:     time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.mu.Lock()
	s.orders = append([]domain.Order{*order.Clone()}, s.orders...)
	s.mu.Unlock()

	s.rebuildProjection(ctx, order)
	s.applyStockAdjustments(ctx, order.ID, stock.ForCreation(order.Items))
	s.publishOrderEvent(ctx, domain.EventOrderCreated, order)

	s.logger.Infow("order created",
		"order_id", order.ID,
		"customer", order.CustomerName,
		"total", order.Total,
		"payment_status", order.PaymentStatus,
	)

	return order.Clone(), nil
}

// UpdateOrder edits an order's items, notes, or customer name. Requested
// lines are reconciled through an edit draft so quantity increases and
// re-adds clear the prepared flag; the stock delta is diffed against the
// pre-edit snapshot, never the optimistically updated copy.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, lines []LineChange, customerName, note *string, changeSummary string) (*domain.Order, error) {
	pre, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if pre.Status == domain.StatusCancelled {
		return nil, domain.ErrOrderCancelled
	}
	if pre.EditBlocked() {
		return nil, domain.ErrEditBlocked
	}

	updated := pre.Clone()

	if lines != nil {
		d := cart.FromOrder(pre)

		requested := make(map[string]bool, len(lines))
		for _, line := range lines {
			requested[line.MenuItemID] = true
		}
		for _, li := range pre.Items {
			if !requested[li.MenuItemID] {
				d.Remove(li.MenuItemID)
			}
		}

		for _, line := range lines {
			if line.Quantity < 1 {
				return nil, fmt.Errorf("quantity for %s must be at least 1", line.MenuItemID)
			}

			if existing := pre.FindItem(line.MenuItemID); existing != nil {
				if diff := line.Quantity - existing.Quantity; diff != 0 {
					if err := d.AdjustQuantity(line.MenuItemID, diff); err != nil {
						return nil, err
					}
				}
			} else {
				menuItem, err := s.menu.Get(line.MenuItemID)
				if err != nil {
					return nil, err
				}
				d.Add(*menuItem)
				if line.Quantity > 1 {
					if err := d.AdjustQuantity(line.MenuItemID, line.Quantity-1); err != nil {
						return nil, err
					}
				}
			}

			if err := d.SetItemNote(line.MenuItemID, line.Note); err != nil {
				return nil, err
			}
		}

		if d.Empty() {
			return nil, fmt.Errorf("order must contain at least one item")
		}

		updated.Items = d.Items()
		updated.Total = d.Total()
	}

	if customerName != nil {
		updated.CustomerName = *customerName
		if updated.CustomerName == "" {
			updated.CustomerName = domain.DefaultCustomerName
		}
	}
	if note != nil {
		updated.Note = *note
	}

	updated.Status = domain.DeriveStatus(updated.Status, updated.Items)

	if changeSummary != "" {
		updated.EditHistory = append(updated.EditHistory, domain.EditHistoryEntry{
			Timestamp: time.Now(),
			Changes:   changeSummary,
		})
	}

	s.replaceLocal(updated)

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		s.rollback(ctx, id)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if lines != nil {
		s.rebuildProjection(ctx, updated)
		s.applyStockAdjustments(ctx, updated.ID, stock.ForEdit(pre.Items, updated.Items))
	}

	s.publishOrderEvent(ctx, domain.EventOrderUpdated, updated)

	s.logger.Infow("order updated", "order_id", id, "total", updated.Total, "status", updated.Status)

	return updated.Clone(), nil
}

// UpdateStatus performs an explicit admin transition (mark picked up,
// cancel). Automatic progress-driven changes go through TogglePrepared.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !domain.ValidOrderStatus(to) {
		return nil, fmt.Errorf("unknown status %q", to)
	}
	if err := cur.CheckTransition(to); err != nil {
		return nil, fmt.Errorf("%w: %s to %s", err, cur.Status, to)
	}

	updated := cur.Clone()
	updated.Status = to

	s.replaceLocal(updated)

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		s.rollback(ctx, id)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.publishOrderEvent(ctx, domain.EventOrderStatusChanged, updated)

	s.logger.Infow("order status updated", "order_id", id, "from", cur.Status, "to", to)

	return updated.Clone(), nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, payment domain.PaymentStatus) (*domain.Order, error) {
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !domain.ValidPaymentStatus(payment) {
		return nil, fmt.Errorf("unknown payment status %q", payment)
	}

	updated := cur.Clone()
	updated.PaymentStatus = payment

	s.replaceLocal(updated)

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		s.rollback(ctx, id)
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.logger.Infow("payment status updated", "order_id", id, "payment_status", payment)

	return updated.Clone(), nil
}

// TogglePrepared flips one line item's checklist flag and re-derives the
// fulfillment status in the same write. This is the primary path status
// changes happen through.
func (s *OrderService) TogglePrepared(ctx context.Context, orderID, menuItemID string) (*domain.Order, error) {
	cur, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	if !cur.CanTogglePrepared() {
		return nil, domain.ErrOrderCancelled
	}

	updated := cur.Clone()
	li := updated.FindItem(menuItemID)
	if li == nil {
		return nil, fmt.Errorf("line item %s: %w", menuItemID, repo.ErrNotFound)
	}

	li.IsPrepared = !li.IsPrepared
	updated.Status = domain.DeriveStatus(cur.Status, updated.Items)

	s.replaceLocal(updated)

	if err := s.orderRepo.Update(ctx, updated); err != nil {
		s.rollback(ctx, orderID)
		return nil, fmt.Errorf("failed to toggle preparation: %w", err)
	}

	s.rebuildProjection(ctx, updated)

	if updated.Status != cur.Status {
		s.publishOrderEvent(ctx, domain.EventOrderStatusChanged, updated)
	}

	s.logger.Infow("preparation toggled",
		"order_id", orderID,
		"menu_item_id", menuItemID,
		"is_prepared", li.IsPrepared,
		"status", updated.Status,
	)

	return updated.Clone(), nil
}

// DeleteOrder removes the order everywhere. Not reversible.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	cur, err := s.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.rollback(ctx, id)
			return fmt.Errorf("failed to delete order: %w", err)
		}
	}

	if s.lineItemRepo != nil {
		if err := s.lineItemRepo.DeleteByOrderID(ctx, id); err != nil {
			s.logger.Errorw("failed to delete line item projection", "order_id", id, "error", err)
		}
	}

	s.publishOrderEvent(ctx, domain.EventOrderDeleted, cur)

	s.logger.Infow("order deleted", "order_id", id)

	return nil
}

// LineItemRows reads the denormalized per-line-item rows for one order. In
// local mode no projection is maintained, so the rows are synthesized from
// the embedded items instead.
func (s *OrderService) LineItemRows(ctx context.Context, orderID string) ([]domain.OrderLineItemRow, error) {
	if s.lineItemRepo != nil {
		rows, err := s.lineItemRepo.ListByOrderID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to list line items: %w", err)
		}
		return rows, nil
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.OrderLineItemRow, 0, len(order.Items))
	for _, li := range order.Items {
		rows = append(rows, domain.OrderLineItemRow{
			OrderID:    order.ID,
			MenuItemID: li.MenuItemID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			BasePrice:  li.BasePrice,
			IsPrepared: li.IsPrepared,
			Note:       li.Note,
			CreatedAt:  order.CreatedAt,
		})
	}
	return rows, nil
}

// replaceLocal installs the speculative copy of an order in memory.
func (s *OrderService) replaceLocal(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = *order.Clone()
			return
		}
	}
	s.orders = append(s.orders, *order.Clone())
}

// rollback is phase two of the optimistic pattern: after a confirmed backend
// failure, replace the local copy with a fresh authoritative read, or drop
// it when the backend no longer has the order.
func (s *OrderService) rollback(ctx context.Context, id string) {
	authoritative, err := s.orderRepo.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			for i := range s.orders {
				if s.orders[i].ID == id {
					s.orders = append(s.orders[:i], s.orders[i+1:]...)
					break
				}
			}
			return
		}
		s.logger.Errorw("rollback re-fetch failed", "order_id", id, "error", err)
		return
	}

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i] = *authoritative
			return
		}
	}
	s.orders = append(s.orders, *authoritative)
}

// rebuildProjection keeps the denormalized line-item rows in sync with the
// embedded items. Projection failures are logged, not fatal: the embedded
// array stays the source of truth.
func (s *OrderService) rebuildProjection(ctx context.Context, order *domain.Order) {
	if s.lineItemRepo == nil {
		return
	}

	if err := s.lineItemRepo.Rebuild(ctx, order.ID, order.Items); err != nil {
		s.logger.Errorw("failed to rebuild line item projection", "order_id", order.ID, "error", err)
	}
}

// applyStockAdjustments applies per-item deltas best-effort: each item is an
// independent write, and a partial failure is logged but neither blocks nor
// rolls back the order write. This is a known consistency gap.
func (s *OrderService) applyStockAdjustments(ctx context.Context, orderID string, adjustments []stock.Adjustment) {
	for _, adj := range adjustments {
		if err := s.menu.ApplyStockDelta(ctx, adj.MenuItemID, adj.Delta); err != nil {
			s.logger.Errorw("stock adjustment failed",
				"order_id", orderID,
				"menu_item_id", adj.MenuItemID,
				"delta", adj.Delta,
				"error", err,
			)
		}
	}
}

func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *domain.Order) {
	if s.broker == nil {
		return
	}

	event := domain.OrderEvent{
		EventType:     eventType,
		OrderID:       order.ID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Total:         order.Total,
		Timestamp:     time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "order_id", order.ID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderEvents, payload); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", order.ID, "event_type", eventType, "error", err)
	}
}

// HandleRemoteChange applies a live-update notification from another client.
// Last writer wins: the notification simply replaces the in-memory copy.
func (s *OrderService) HandleRemoteChange(op string, id string, order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op {
	case "delete":
		for i := range s.orders {
			if s.orders[i].ID == id {
				s.orders = append(s.orders[:i], s.orders[i+1:]...)
				return
			}
		}
	case "insert", "update", "replace":
		if order == nil {
			return
		}
		for i := range s.orders {
			if s.orders[i].ID == id {
				s.orders[i] = *order.Clone()
				return
			}
		}
		s.orders = append([]domain.Order{*order.Clone()}, s.orders...)
	}
}
