package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Dashboard struct {
	Users    int64           `json:"users"`
	Products int64           `json:"products"`
	Orders   int64           `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type Expense struct {
	ID         uuid.UUID       `json:"id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredAt time.Time       `json:"incurred_at"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

type ExpenseReport struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Total    decimal.Decimal `json:"total"`
	Revenue  decimal.Decimal `json:"revenue"`
	Net      decimal.Decimal `json:"net"`
	Expenses []Expense       `json:"expenses"`
}

type Subscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
