package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status values.
const (
	OrderStatusStopLoss   = "stop-loss"
	OrderStatusTakeProfit = "take-profit"
	OrderStatusOpen       = "open"
	OrderStatusCancel     = "cancel"
)

// Order is a user's order against a pair, placed through one trade profile.
// It is created with only the status and the exchange-assigned identifier
// known; Created, OrderType, Price, Quantity and Amount stay unset until
// the reconciler matches the identifier in the profile's open orders.
type Order struct {
	gorm.Model
	TradeProfileID uint   `gorm:"index;not null"`
	PairID         uint   `gorm:"index;not null"`
	Pair           Pair   `json:"-"`
	Status         string `gorm:"size:24"`

	// OrderID is the exchange-assigned identifier. It is kept as an opaque
	// string: exchange identifiers may exceed safe-integer precision.
	OrderID   string `gorm:"size:24;index"`
	Created   time.Time
	OrderType string          `gorm:"size:24"`
	Price     decimal.Decimal `gorm:"type:decimal(32,16)"`
	Quantity  decimal.Decimal `gorm:"type:decimal(32,16)"`
	Amount    decimal.Decimal `gorm:"type:decimal(32,16)"`

	Trades []OrderTrade `gorm:"constraint:OnDelete:CASCADE"`
}

// Hydrated reports whether the order's detail fields were populated from
// the exchange.
func (o *Order) Hydrated() bool {
	return !o.Created.IsZero()
}
