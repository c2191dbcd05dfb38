package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderLineItemRepository keeps the denormalized order_line_items rows in
// lockstep with each order's embedded items array.
type OrderLineItemRepository struct {
	collection *mongo.Collection
}

func NewOrderLineItemRepository(db *mongo.Database) *OrderLineItemRepository {
	return &OrderLineItemRepository{
		collection: db.Collection("order_line_items"),
	}
}

// Rebuild replaces the projection for one order: delete everything, then
// reinsert one row per current line item.
func (r *OrderLineItemRepository) Rebuild(ctx context.Context, orderID string, items []domain.OrderLineItem) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("failed to clear line item projection: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]interface{}, 0, len(items))
	for _, li := range items {
		rows = append(rows, domain.OrderLineItemRow{
			ID:         uuid.NewString(),
			OrderID:    orderID,
			MenuItemID: li.MenuItemID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			BasePrice:  li.BasePrice,
			IsPrepared: li.IsPrepared,
			Note:       li.Note,
			CreatedAt:  now,
		})
	}

	if _, err := r.collection.InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to rebuild line item projection: %w", err)
	}

	return nil
}

// DeleteByOrderID removes the projection rows when their order is deleted,
// mirroring a cascading delete.
func (r *OrderLineItemRepository) DeleteByOrderID(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"order_id": orderID}); err != nil {
		return fmt.Errorf("failed to delete line item projection: %w", err)
	}

	return nil
}

func (r *OrderLineItemRepository) ListByOrderID(ctx context.Context, orderID string) ([]domain.OrderLineItemRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list line item projection: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []domain.OrderLineItemRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode line item projection: %w", err)
	}

	return rows, nil
}
