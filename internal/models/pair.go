package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pair is a tradable instrument on an exchange. The min/max constraint
// fields mirror exchange-enforced limits and are populated exclusively by
// the pair-settings sync, never hand-entered.
type Pair struct {
	gorm.Model
	ExchangeID uint   `gorm:"uniqueIndex:idx_exchange_ticker;not null"`
	Ticker     string `gorm:"uniqueIndex:idx_exchange_ticker;size:24;not null"`

	MinQuantity decimal.Decimal `gorm:"type:decimal(32,16)"`
	MaxQuantity decimal.Decimal `gorm:"type:decimal(32,16)"`
	MinPrice    decimal.Decimal `gorm:"type:decimal(32,16)"`
	MaxPrice    decimal.Decimal `gorm:"type:decimal(32,16)"`
	MinAmount   decimal.Decimal `gorm:"type:decimal(32,16)"`
	MaxAmount   decimal.Decimal `gorm:"type:decimal(32,16)"`

	Orders []Order
}
