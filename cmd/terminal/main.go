package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"exmo-trade-terminal/internal/config"
	"exmo-trade-terminal/internal/database"
	"exmo-trade-terminal/internal/exmo"
	"exmo-trade-terminal/internal/logger"
	"exmo-trade-terminal/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database (migrates schema and seeds configured records)
	db, err := database.NewDatabase(&cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Abandon in-flight exchange calls on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := exmo.NewDispatcher(&cfg.Exchange, log)
	client := exmo.NewClient(dispatcher, nil)
	if _, err := client.Currency(ctx); err != nil {
		log.Fatal("Failed to connect to exchange API", zap.Error(err))
	}
	log.Info("Successfully connected to exchange API.")

	if err := syncPairs(ctx, db, client, log); err != nil {
		log.Fatal("Pair settings sync failed", zap.Error(err))
	}

	if err := reconcileOrders(ctx, db, dispatcher, log); err != nil {
		log.Fatal("Order reconciliation failed", zap.Error(err))
	}

	log.Info("Terminal run complete.")
}

// syncPairs refreshes the exchange-enforced constraints of every tracked
// pair. A single unknown ticker aborts the run: the local catalog no longer
// matches the exchange and trading against stale limits is not safe.
func syncPairs(ctx context.Context, db *gorm.DB, client exmo.ClientInterface, log *zap.Logger) error {
	sync := exmo.NewPairSettingsSync(client, log)

	var pairs []models.Pair
	if err := db.Find(&pairs).Error; err != nil {
		return fmt.Errorf("load pairs: %w", err)
	}

	for i := range pairs {
		if err := sync.Sync(ctx, &pairs[i]); err != nil {
			return fmt.Errorf("sync pair %q: %w", pairs[i].Ticker, err)
		}
		if err := db.Save(&pairs[i]).Error; err != nil {
			return fmt.Errorf("save pair %q: %w", pairs[i].Ticker, err)
		}
		log.Info("Pair settings synced", zap.String("ticker", pairs[i].Ticker))
	}

	return nil
}

// reconcileOrders hydrates open orders that have not yet been matched in
// the exchange's open-orders snapshot. Orders that stay unmatched (already
// filled or cancelled remotely) are logged and left for the next run.
func reconcileOrders(ctx context.Context, db *gorm.DB, dispatcher *exmo.Dispatcher, log *zap.Logger) error {
	reconciler := exmo.NewOrderReconciler(dispatcher, log)

	var orders []models.Order
	err := db.Preload("Pair").
		Where("status = ?", models.OrderStatusOpen).
		Find(&orders).Error
	if err != nil {
		return fmt.Errorf("load open orders: %w", err)
	}

	for i := range orders {
		order := &orders[i]
		if order.Hydrated() {
			continue
		}

		var profile models.TradeProfile
		if err := db.First(&profile, order.TradeProfileID).Error; err != nil {
			return fmt.Errorf("load trade profile %d: %w", order.TradeProfileID, err)
		}

		matched, err := reconciler.Hydrate(ctx, order, &profile)
		if err != nil {
			return fmt.Errorf("hydrate order %q: %w", order.OrderID, err)
		}
		if !matched {
			log.Warn("Order not found in open-orders snapshot",
				zap.String("order_id", order.OrderID),
				zap.String("ticker", order.Pair.Ticker),
			)
			continue
		}

		if err := db.Save(order).Error; err != nil {
			return fmt.Errorf("save order %q: %w", order.OrderID, err)
		}
		log.Info("Order hydrated",
			zap.String("order_id", order.OrderID),
			zap.String("ticker", order.Pair.Ticker),
		)
	}

	return nil
}
