package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"timeless_backend/internal/auth"
	"timeless_backend/internal/cart"
	"timeless_backend/internal/cart/snapshot"
	"timeless_backend/internal/catalog"
	"timeless_backend/internal/catalog/adapter"
	"timeless_backend/internal/events"
	apphttp "timeless_backend/internal/http"
	"timeless_backend/internal/http/router"
	"timeless_backend/internal/notification"
	"timeless_backend/internal/orders"
	"timeless_backend/internal/orders/receipt"
	"timeless_backend/internal/reviews"
	"timeless_backend/internal/scheduler"
	"timeless_backend/platform/config"
	"timeless_backend/platform/db"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	orderQueue, closeQueue := initOrderQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// Redis keeps cart and receipt snapshots across restarts. Without it the
	// storefront still works, snapshots just live in process memory.
	cartSnaps, receipts := initSnapshotStores(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(orderQueue, log)
	notificationModule.Subscribe(eventBus)

	catalogModule := catalog.NewModule(pool, val, log)

	// Cart resolves products through the catalog adapter so the two contexts
	// stay decoupled.
	productSource := adapter.NewProductSource(catalogModule.Repository())
	cartModule := cart.NewModule(cartSnaps, productSource, val, log)

	ordersModule := orders.NewModule(pool, receipts, cartModule.Service(), eventBus, cfg, val, log)
	reviewsModule := reviews.NewModule(pool, val, log)
	authModule := auth.NewModule(pool, cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			cartModule,
			ordersModule,
			reviewsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initOrderQueue returns a nil interface when no queue is configured; a typed
// nil *scheduler.Client would defeat the notification module's nil check.
func initOrderQueue(cfg config.SchedulerConfig, log *logger.Logger) (notification.TaskEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; order WhatsApp notifications disabled")
		return nil, nil
	}

	queueClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize order queue client", "error", err)
		return nil, nil
	}

	return queueClient, func() {
		_ = queueClient.Close()
	}
}

func initSnapshotStores(cfg *config.Config, log *logger.Logger) (snapshot.Store, receipt.Store) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; cart and receipt snapshots held in memory")
		return snapshot.NewMemory(), receipt.NewMemory()
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL, falling back to in-memory snapshots", "error", err)
		return snapshot.NewMemory(), receipt.NewMemory()
	}
	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig.InsecureSkipVerify = true
	}

	client := redis.NewClient(opt)
	return snapshot.NewRedis(client), receipt.NewRedis(client, cfg.GetReceiptTTL())
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
