package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/queue"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/ratelimiter"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/repo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/service"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/store/mongo"
	"github.com/satriapandu0417-art/cashier-epyepe/internal/worker"
	"go.uber.org/zap"
)

const (
	modeRemote = "remote"
	modeLocal  = "local"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
	storage     *mongo.Storage // nil in local mode
	broker      queue.Broker   // nil when RabbitMQ is not configured

	menuService   *service.MenuService
	orderService  *service.OrderService
	importService *service.ImportService // nil in local mode

	alertRepo repo.StockAlertRepository // nil in local mode

	importWorker *worker.MenuImportWorker
	alertWorker  *worker.StockAlertWorker

	watcherCancels []func()
}

type config struct {
	addr        string
	env         string
	mode        string
	dataDir     string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	googleCreds string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", app.listMenuHandler)
			r.Post("/", app.createMenuItemHandler)
			r.Get("/low-stock", app.lowStockHandler)
			r.Get("/alerts", app.listStockAlertsHandler)
			r.Post("/import", app.createImportTaskHandler)
			r.Get("/import/{task_id}", app.getImportTaskHandler)
			r.Put("/{item_id}", app.updateMenuItemHandler)
			r.Delete("/{item_id}", app.deleteMenuItemHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", app.listOrdersHandler)
			r.Post("/", app.createOrderHandler)
			r.Get("/{order_id}", app.getOrderHandler)
			r.Get("/{order_id}/items", app.listOrderItemsHandler)
			r.Put("/{order_id}", app.updateOrderHandler)
			r.Delete("/{order_id}", app.deleteOrderHandler)
			r.Patch("/{order_id}/status", app.updateOrderStatusHandler)
			r.Patch("/{order_id}/payment", app.updatePaymentStatusHandler)
			r.Patch("/{order_id}/items/{item_id}/prepared", app.togglePreparedHandler)
		})

		r.Get("/analytics/summary", app.analyticsSummaryHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// workers
	if app.importWorker != nil {
		if err := app.importWorker.Start(); err != nil {
			return fmt.Errorf("failed to start import worker: %w", err)
		}
	}
	if app.alertWorker != nil {
		if err := app.alertWorker.Start(); err != nil {
			return fmt.Errorf("failed to start stock alert worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.importWorker != nil {
			app.importWorker.Stop()
		}
		if app.alertWorker != nil {
			app.alertWorker.Stop()
		}

		for _, cancelWatcher := range app.watcherCancels {
			cancelWatcher()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env, "mode", app.config.mode)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
