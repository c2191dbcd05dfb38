package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/env"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/parser"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/ratelimiter"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/service"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/store/local"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/store/mongo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/worker"
	"go.uber.org/zap"
)

const version = "0.0.0"

func main() {
	_ = godotenv.Load()

	cfg := config{
		addr:    env.GetString("ADDR", ":8080"),
		env:     env.GetString("ENV", "development"),
		dataDir: env.GetString("DATA_DIR", "./data"),
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: env.GetInt("RATELIMITER_REQUESTS_COUNT", 20),
			TimeFrame:            time.Second * 5,
			Enabled:              env.GetBool("RATE_LIMITER_ENABLED", true),
		},
		mongo: mongoConfig{
			URI:      env.GetString("MONGO_URI", ""),
			Database: env.GetString("MONGO_DATABASE", "cashier"),
			Timeout:  time.Second * 10,
		},
		rabbitMQ: rabbitMQConfig{
			URL:           env.GetString("RABBITMQ_URL", ""),
			MaxRetries:    env.GetInt("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay:    time.Second * 2,
			PrefetchCount: env.GetInt("RABBITMQ_PREFETCH_COUNT", 10),
		},
		googleCreds: env.GetString("GOOGLE_CREDENTIALS_PATH", ""),
	}

	// logger
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	// backend selection: MongoDB when configured and reachable, JSON files
	// on disk otherwise
	var (
		storage      *mongo.Storage
		menuRepo     repo.MenuItemRepository
		orderRepo    repo.OrderRepository
		lineItemRepo repo.OrderLineItemRepository
		alertRepo    repo.StockAlertRepository
		taskRepo     repo.ImportTaskRepository
	)

	cfg.mode = modeLocal

	if cfg.mongo.URI != "" {
		s, err := mongo.New(mongo.Config{
			URI:      cfg.mongo.URI,
			Database: cfg.mongo.Database,
			Timeout:  cfg.mongo.Timeout,
		})
		if err != nil {
			logger.Warnw("failed to connect to MongoDB, falling back to local storage", "error", err)
		} else {
			logger.Info("connected to MongoDB")
			storage = s
			cfg.mode = modeRemote

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := storage.CreateIndexes(ctx); err != nil {
				logger.Warnw("failed to create indexes", "error", err)
			} else {
				logger.Info("MongoDB indexes created successfully")
			}
			cancel()

			menuRepo = mongo.NewMenuItemRepository(storage.Database())
			orderRepo = mongo.NewOrderRepository(storage.Database())
			lineItemRepo = mongo.NewOrderLineItemRepository(storage.Database())
			alertRepo = mongo.NewStockAlertRepository(storage.Database())
			taskRepo = mongo.NewImportTaskRepository(storage.Database())
		}
	}

	if cfg.mode == modeLocal {
		localStorage, err := local.New(cfg.dataDir)
		if err != nil {
			logger.Fatalw("failed to open local storage", "error", err)
		}

		logger.Infow("using local storage", "dir", cfg.dataDir)

		menuRepo = local.NewMenuItemRepository(localStorage)
		orderRepo = local.NewOrderRepository(localStorage)
	}

	// rabbitmq broker, optional
	var broker queue.Broker
	if cfg.rabbitMQ.URL != "" {
		b, err := queue.NewRabbitMQBroker(queue.Config{
			URL:           cfg.rabbitMQ.URL,
			MaxRetries:    cfg.rabbitMQ.MaxRetries,
			RetryDelay:    cfg.rabbitMQ.RetryDelay,
			PrefetchCount: cfg.rabbitMQ.PrefetchCount,
		})
		if err != nil {
			logger.Fatalw("failed to connect to RabbitMQ", "error", err)
		}
		logger.Info("connected to RabbitMQ")
		broker = b
	} else {
		logger.Warn("RabbitMQ not configured, events will not be published")
	}

	var googleParser *parser.GoogleSheetsParser
	if cfg.googleCreds != "" {
		credsJSON, err := os.ReadFile(cfg.googleCreds)
		if err != nil {
			logger.Fatalw("failed to read Google credentials", "error", err)
		}

		googleParser, err = parser.New(parser.Config{
			CredentialsJSON: credsJSON,
		})
		if err != nil {
			logger.Fatalw("failed to create Google Sheets parser", "error", err)
		}
		logger.Info("Google Sheets parser initialized")
	} else {
		logger.Warn("Google credentials not provided, menu import will be disabled")
	}

	// services
	menuService := service.NewMenuService(menuRepo, broker, logger)
	orderService := service.NewOrderService(orderRepo, lineItemRepo, menuService, broker, logger)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := menuService.Load(startupCtx); err != nil {
		logger.Fatalw("failed to load menu", "error", err)
	}
	if err := orderService.Load(startupCtx); err != nil {
		logger.Fatalw("failed to load orders", "error", err)
	}
	startupCancel()

	var importService *service.ImportService
	if taskRepo != nil {
		importService = service.NewImportService(taskRepo, menuService, googleParser, broker, logger)
	}

	// workers
	var importWorker *worker.MenuImportWorker
	var alertWorker *worker.StockAlertWorker
	if broker != nil {
		if importService != nil && importService.Enabled() {
			importWorker = worker.NewMenuImportWorker(importService, broker, logger)
		}
		if alertRepo != nil {
			alertWorker = worker.NewStockAlertWorker(alertRepo, broker, logger)
		}
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		rateLimiter:   rateLimiter,
		storage:       storage,
		broker:        broker,
		menuService:   menuService,
		orderService:  orderService,
		importService: importService,
		alertRepo:     alertRepo,
		importWorker:  importWorker,
		alertWorker:   alertWorker,
	}

	// live change feed, remote mode only
	if storage != nil {
		watchCtx := context.Background()

		cancelOrders, err := storage.WatchOrders(watchCtx, logger, func(op mongo.ChangeOp, id string, order *domain.Order) {
			orderService.HandleRemoteChange(string(op), id, order)
		})
		if err != nil {
			logger.Warnw("order change feed unavailable", "error", err)
		} else {
			app.watcherCancels = append(app.watcherCancels, cancelOrders)
		}

		cancelMenu, err := storage.WatchMenuItems(watchCtx, logger, func(op mongo.ChangeOp, id string, item *domain.MenuItem) {
			menuService.HandleRemoteChange(string(op), id, item)
		})
		if err != nil {
			logger.Warnw("menu change feed unavailable", "error", err)
		} else {
			app.watcherCancels = append(app.watcherCancels, cancelMenu)
		}
	}

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
