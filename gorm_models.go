package main

// GORM models for the database

// Trade represents one recorded buy.
type Trade struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Ticker   string  `gorm:"index:idx_trades_ticker;not null" json:"ticker"`
	BuyDate  string  `gorm:"not null" json:"buyDate"` // YYYY-MM-DD
	BuyPrice float64 `gorm:"not null" json:"buyPrice"`
	Qty      float64 `gorm:"not null;default:1" json:"qty"`
}

// TableName specifies the table name for Trade
func (Trade) TableName() string {
	return "trades"
}

// Get all model types for auto migration
var allModels = []interface{}{
	&Trade{},
}
