package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the balance effect of a transaction.
type TransactionType string

const (
	Expense  TransactionType = "EXPENSE"
	Income   TransactionType = "INCOME"
	Transfer TransactionType = "TRANSFER"
)

// Transaction represents a single money movement recorded by a user.
// TargetAccountID equals OriginAccountID unless Type is TRANSFER.
// A pending transaction exists but has not been applied to any balance.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	OwnerID         string          `json:"ownerID"`       // FK -> users.user_id (NON-NULL)
	OriginAccountID string          `json:"originAccountID"`
	TargetAccountID string          `json:"targetAccountID"`
	Amount          decimal.Decimal `json:"amount"` // Positive integer, minor currency units
	Type            TransactionType `json:"type"`
	CategoryID      string          `json:"categoryID"`
	Notes           string          `json:"notes"`
	Interval        string          `json:"interval"` // Recurrence label, informational
	OccurredAt      time.Time       `json:"occurredAt"`
	Pending         bool            `json:"pending"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	AuditFields
}

// IsTransfer reports whether the transaction moves money between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.Type == Transfer
}

// BalanceEffects returns the per-account balance deltas this transaction
// applies when booked:
//
//	EXPENSE:  origin -= amount
//	INCOME:   origin += amount
//	TRANSFER: origin -= amount; target += amount
//
// Deltas accumulate if origin and target coincide, so a malformed transfer
// onto a single account nets out to zero rather than corrupting the balance.
func (t Transaction) BalanceEffects() map[string]decimal.Decimal {
	effects := make(map[string]decimal.Decimal, 2)
	switch t.Type {
	case Expense:
		effects[t.OriginAccountID] = t.Amount.Neg()
	case Income:
		effects[t.OriginAccountID] = t.Amount
	case Transfer:
		effects[t.OriginAccountID] = effects[t.OriginAccountID].Sub(t.Amount)
		effects[t.TargetAccountID] = effects[t.TargetAccountID].Add(t.Amount)
	}
	return effects
}

// ReversalEffects returns the deltas that undo a previously booked application
// of this transaction. It is the exact negation of BalanceEffects.
func (t Transaction) ReversalEffects() map[string]decimal.Decimal {
	effects := t.BalanceEffects()
	for accountID, delta := range effects {
		effects[accountID] = delta.Neg()
	}
	return effects
}
