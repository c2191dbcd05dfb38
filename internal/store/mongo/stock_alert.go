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

type StockAlertRepository struct {
	collection *mongo.Collection
}

func NewStockAlertRepository(db *mongo.Database) *StockAlertRepository {
	return &StockAlertRepository{
		collection: db.Collection("stock_alerts"),
	}
}

func (r *StockAlertRepository) Create(ctx context.Context, alert *domain.StockAlert) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create stock alert: %w", err)
	}

	return nil
}

func (r *StockAlertRepository) ListRecent(ctx context.Context, limit int) ([]domain.StockAlert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []domain.StockAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode stock alerts: %w", err)
	}

	return alerts, nil
}
