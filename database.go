package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// defaultTrades seeds an example portfolio into an empty database.
var defaultTrades = []Trade{
	{Ticker: "NVDA", BuyDate: "2024-05-10", BuyPrice: 905.0, Qty: 2},
	{Ticker: "NVDA", BuyDate: "2024-07-02", BuyPrice: 125.0, Qty: 15},
	{Ticker: "NVDA", BuyDate: "2024-10-18", BuyPrice: 118.0, Qty: 8},
	{Ticker: "VU", BuyDate: "2024-06-14", BuyPrice: 95.0, Qty: 12},
	{Ticker: "VU", BuyDate: "2024-11-05", BuyPrice: 102.5, Qty: 10},
	{Ticker: "VGT", BuyDate: "2024-05-21", BuyPrice: 495.0, Qty: 1.3},
	{Ticker: "VGT", BuyDate: "2024-08-29", BuyPrice: 525.0, Qty: 1.5},
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Auto migrate tables
	if err := db.AutoMigrate(allModels...); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %v", err)
	}

	return &Database{db: db}, nil
}

// InsertTrade records a new buy and returns it with its assigned id.
func (d *Database) InsertTrade(ticker, buyDate string, buyPrice, qty float64) (*Trade, error) {
	trade := Trade{Ticker: ticker, BuyDate: buyDate, BuyPrice: buyPrice, Qty: qty}
	if err := d.db.Create(&trade).Error; err != nil {
		return nil, fmt.Errorf("failed to insert trade: %v", err)
	}
	return &trade, nil
}

// GetTrade looks up one trade by id. Returns (nil, nil) when the id is
// unknown.
func (d *Database) GetTrade(id uint) (*Trade, error) {
	var trade Trade
	result := d.db.First(&trade, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query trade %d: %v", id, result.Error)
	}
	return &trade, nil
}

// UpdateTrade rewrites all fields of an existing trade. Returns false
// when the id is unknown.
func (d *Database) UpdateTrade(id uint, ticker, buyDate string, buyPrice, qty float64) (bool, error) {
	result := d.db.Model(&Trade{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ticker":    ticker,
			"buy_date":  buyDate,
			"buy_price": buyPrice,
			"qty":       qty,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update trade %d: %v", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteTrade removes a trade and reports the ticker it belonged to so
// the caller can redirect to that ticker's page. Returns ("", false) for
// an unknown id.
func (d *Database) DeleteTrade(id uint) (string, bool, error) {
	var trade Trade
	result := d.db.First(&trade, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query trade %d: %v", id, result.Error)
	}
	if err := d.db.Delete(&Trade{}, id).Error; err != nil {
		return "", false, fmt.Errorf("failed to delete trade %d: %v", id, err)
	}
	return trade.Ticker, true, nil
}

// ListByTicker returns a ticker's trades ordered by buy date ascending.
func (d *Database) ListByTicker(ticker string) ([]Trade, error) {
	var trades []Trade
	result := d.db.Where("ticker = ?", ticker).Order("buy_date ASC").Find(&trades)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query trades: %v", result.Error)
	}
	return trades, nil
}

// AggregateByTicker groups all trades per ticker, ordered by ticker
// ascending. Tickers with no rows simply do not appear.
func (d *Database) AggregateByTicker() ([]TickerAggregate, error) {
	var rows []TickerAggregate
	result := d.db.Model(&Trade{}).
		Select("ticker, COUNT(*) AS trades, SUM(qty) AS total_qty, SUM(qty * buy_price) AS invested").
		Group("ticker").
		Order("ticker ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to aggregate trades: %v", result.Error)
	}
	return rows, nil
}

// MigrateAliases rewrites rows stored under an old alias to the
// canonical symbol. Runs once at startup, before any request is served.
// Idempotent: after the first pass no row matches an alias, so a second
// pass touches nothing, and rows already canonical are never altered.
func (d *Database) MigrateAliases(aliases map[string]string) error {
	if len(aliases) == 0 {
		return nil
	}
	return d.db.Transaction(func(tx *gorm.DB) error {
		for old, canonical := range aliases {
			if old == canonical {
				continue
			}
			result := tx.Model(&Trade{}).
				Where("ticker = ?", old).
				Update("ticker", canonical)
			if result.Error != nil {
				return fmt.Errorf("failed to migrate %s -> %s: %v", old, canonical, result.Error)
			}
			if result.RowsAffected > 0 {
				log.Printf("[Database] migrated %d trades from %s to %s", result.RowsAffected, old, canonical)
			}
		}
		return nil
	})
}

// SeedDefaultTrades inserts the example portfolio when the table is
// empty. A non-empty table is left untouched.
func (d *Database) SeedDefaultTrades() error {
	var count int64
	if err := d.db.Model(&Trade{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count trades: %v", err)
	}
	if count > 0 {
		return nil
	}
	seeds := make([]Trade, len(defaultTrades))
	copy(seeds, defaultTrades)
	if err := d.db.Create(&seeds).Error; err != nil {
		return fmt.Errorf("failed to seed trades: %v", err)
	}
	log.Printf("[Database] seeded %d default trades", len(seeds))
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %v", err)
	}
	return sqlDB.Close()
}
