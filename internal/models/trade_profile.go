package models

import (
	"fmt"

	"gorm.io/gorm"
)

// TradeProfile is a user's credential set for one exchange. Every
// authenticated call is scoped to exactly one profile.
type TradeProfile struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	ExchangeID uint   `gorm:"index;not null" json:"exchange_id"`
	Name       string `json:"name"`
	PublicKey  string `json:"public_key"`
	// The secret key must never leave the process: excluded from JSON and
	// from the String form used in logs.
	SecretKey string `gorm:"not null" json:"-"`
}

func (p TradeProfile) String() string {
	return fmt.Sprintf("TradeProfile(%d, %q, key=%s)", p.ID, p.Name, p.PublicKey)
}
