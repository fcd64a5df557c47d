package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type InsertExpense struct {
	Label      string          `validate:"required" json:"label"`
	Amount     decimal.Decimal `validate:"required" json:"amount"`
	IncurredAt time.Time       `validate:"required" json:"incurred_at"`
}

type BlockUser struct {
	Blocked bool `json:"blocked"`
}

type InsertSubscription struct {
	Plan      string    `validate:"required,oneof=monthly yearly" json:"plan"`
	ExpiresAt time.Time `validate:"required"                      json:"expires_at"`
}
