package repositories

import (
	"context"
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for transactions.
//
// The three mutating operations each execute as a single database transaction:
// the row write and the account balance deltas commit or roll back together.
// Balance deltas are computed by the ledger service and passed in; the
// repository locks the affected account rows before applying them so that two
// concurrent operations on the same account cannot lose an update.
type TransactionRepository interface {
	// SaveTransaction inserts the transaction row and applies balanceChanges atomically.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction rewrites the transaction row and applies balanceChanges
	// (the net of reversing the old effect and applying the new one) atomically.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes the transaction row and applies balanceChanges
	// (the reversal of its booked effect, empty if it was pending) atomically.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// FindTransactionByID is NOT owner scoped; the service distinguishes a
	// missing transaction (404) from a foreign one (403).
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	ListTransactionsByAccount(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// Read-side queries for the balance/reporting surface.
	FindBookedTransactionsAfter(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error)
	FindPendingTransactionsThrough(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error)
	FindTransactionsByOwnerInPeriod(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]domain.Transaction, error)
}
