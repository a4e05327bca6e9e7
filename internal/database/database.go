package database

import (
	"fmt"

	"exmo-trade-terminal/internal/config"
	"exmo-trade-terminal/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase opens the database, migrates the schema and seeds the
// configured records.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Exchange{},
		&models.TradeProfile{},
		&models.Pair{},
		&models.Order{},
		&models.OrderTrade{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := Seed(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Seed creates the exchange row, one trade profile carrying the configured
// key pair, and a pair row per configured ticker. Seeding is idempotent:
// existing rows are left alone, so constraint fields already synced from the
// exchange survive restarts.
func Seed(db *gorm.DB, cfg *config.Config) error {
	exchange := models.Exchange{Name: cfg.Seed.ExchangeName}
	if err := db.FirstOrCreate(&exchange, models.Exchange{Name: cfg.Seed.ExchangeName}).Error; err != nil {
		return fmt.Errorf("failed to seed exchange %q: %w", cfg.Seed.ExchangeName, err)
	}

	if cfg.Seed.ProfileName != "" {
		profile := models.TradeProfile{
			UserID:     cfg.Seed.UserID,
			ExchangeID: exchange.ID,
			Name:       cfg.Seed.ProfileName,
			PublicKey:  cfg.Exchange.PublicKey,
			SecretKey:  cfg.Exchange.SecretKey,
		}
		lookup := models.TradeProfile{ExchangeID: exchange.ID, Name: cfg.Seed.ProfileName}
		if err := db.Where(lookup).FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed trade profile %q: %w", cfg.Seed.ProfileName, err)
		}
	}

	for _, ticker := range cfg.Seed.Pairs {
		pair := models.Pair{ExchangeID: exchange.ID, Ticker: ticker}
		lookup := models.Pair{ExchangeID: exchange.ID, Ticker: ticker}
		if err := db.Where(lookup).FirstOrCreate(&pair).Error; err != nil {
			return fmt.Errorf("failed to seed pair %q: %w", ticker, err)
		}
	}

	return nil
}
