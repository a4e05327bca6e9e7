package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderTrade is one fill against an order. Rows are owned by their order
// and append-only; they are removed only when the order itself is deleted.
type OrderTrade struct {
	gorm.Model
	OrderID uint `gorm:"index;not null"`

	TradeID  string `gorm:"size:24"`
	Date     time.Time
	Quantity decimal.Decimal `gorm:"type:decimal(32,16)"`
	Price    decimal.Decimal `gorm:"type:decimal(32,16)"`
	Amount   decimal.Decimal `gorm:"type:decimal(32,16)"`
}
