package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for persistence.
type TransactionType string

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
)

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	OwnerID         string          `db:"owner_id"`
	OriginAccountID string          `db:"origin_account_id"`
	TargetAccountID string          `db:"target_account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Type            TransactionType `db:"type"`
	CategoryID      string          `db:"category_id"`
	Notes           string          `db:"notes"`
	Interval        string          `db:"recurrence_interval"`
	OccurredAt      time.Time       `db:"occurred_at"`
	Pending         bool            `db:"pending"`
	ExpiresAt       *time.Time      `db:"expires_at"` // Nullable
	AuditFields
}
