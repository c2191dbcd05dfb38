package mongo

import (
	"context"
	"fmt"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ChangeOp string

const (
	ChangeInsert  ChangeOp = "insert"
	ChangeUpdate  ChangeOp = "update"
	ChangeReplace ChangeOp = "replace"
	ChangeDelete  ChangeOp = "delete"
)

// changeEvent is the raw change stream document shape we care about.
type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw `bson:"fullDocument"`
}

type OrderChangeHandler func(op ChangeOp, id string, order *domain.Order)

type MenuChangeHandler func(op ChangeOp, id string, item *domain.MenuItem)

// WatchOrders subscribes to the orders change stream and dispatches every
// insert/update/replace/delete to the handler. The returned cancel function
// is the subscription's cancellation token. Handler dispatch is the only
// place remote changes enter the in-memory store.
func (s *Storage) WatchOrders(ctx context.Context, logger *zap.SugaredLogger, handler OrderChangeHandler) (func(), error) {
	return s.watch(ctx, logger, "orders", func(evt changeEvent) {
		var order *domain.Order
		if len(evt.FullDocument) > 0 {
			var decoded domain.Order
			if err := bson.Unmarshal(evt.FullDocument, &decoded); err != nil {
				logger.Errorw("failed to decode order change", "order_id", evt.DocumentKey.ID, "error", err)
				return
			}
			order = &decoded
		}
		handler(ChangeOp(evt.OperationType), evt.DocumentKey.ID, order)
	})
}

// WatchMenuItems subscribes to the menu_items change stream.
func (s *Storage) WatchMenuItems(ctx context.Context, logger *zap.SugaredLogger, handler MenuChangeHandler) (func(), error) {
	return s.watch(ctx, logger, "menu_items", func(evt changeEvent) {
		var item *domain.MenuItem
		if len(evt.FullDocument) > 0 {
			var decoded domain.MenuItem
			if err := bson.Unmarshal(evt.FullDocument, &decoded); err != nil {
				logger.Errorw("failed to decode menu item change", "menu_item_id", evt.DocumentKey.ID, "error", err)
				return
			}
			item = &decoded
		}
		handler(ChangeOp(evt.OperationType), evt.DocumentKey.ID, item)
	})
}

func (s *Storage) watch(ctx context.Context, logger *zap.SugaredLogger, collection string, dispatch func(changeEvent)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.database.Collection(collection).Watch(streamCtx, mongo.Pipeline{}, opts)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to watch %s: %w", collection, err)
	}

	go func() {
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			var evt changeEvent
			if err := stream.Decode(&evt); err != nil {
				logger.Errorw("failed to decode change event", "collection", collection, "error", err)
				continue
			}
			dispatch(evt)
		}

		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			logger.Errorw("change stream terminated", "collection", collection, "error", err)
		}
	}()

	return cancel, nil
}
