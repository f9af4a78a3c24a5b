package dto

import (
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a new transaction.
// Amount is in minor currency units and must be a positive integer; decimal
// keeps it exact through JSON (serialized as a string, never a binary float).
type CreateTransactionRequest struct {
	OriginAccountID string                 `json:"originAccountID" binding:"required"`
	TargetAccountID *string                `json:"targetAccountID"` // Required when type is TRANSFER
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Type            domain.TransactionType `json:"type" binding:"required,oneof=EXPENSE INCOME TRANSFER"`
	CategoryID      string                 `json:"categoryID" binding:"required"`
	Notes           string                 `json:"notes"`
	Interval        string                 `json:"interval"`
	OccurredAt      time.Time              `json:"occurredAt" binding:"required"`
	Pending         bool                   `json:"pending"`
	ExpiresAt       *time.Time             `json:"expiresAt"`
}

// UpdateTransactionRequest defines the patch for an existing transaction.
// Pointers distinguish "leave unchanged" from a zero-value update; the ledger
// service reconciles balances from the before/after states.
type UpdateTransactionRequest struct {
	OriginAccountID *string                 `json:"originAccountID"`
	TargetAccountID *string                 `json:"targetAccountID"`
	Amount          *decimal.Decimal        `json:"amount"`
	Type            *domain.TransactionType `json:"type" binding:"omitempty,oneof=EXPENSE INCOME TRANSFER"`
	CategoryID      *string                 `json:"categoryID"`
	Notes           *string                 `json:"notes"`
	Interval        *string                 `json:"interval"`
	OccurredAt      *time.Time              `json:"occurredAt"`
	Pending         *bool                   `json:"pending"`
	ExpiresAt       *time.Time              `json:"expiresAt"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	OriginAccountID string                 `json:"originAccountID"`
	TargetAccountID string                 `json:"targetAccountID"`
	Amount          decimal.Decimal        `json:"amount"`
	Type            domain.TransactionType `json:"type"`
	CategoryID      string                 `json:"categoryID"`
	Notes           string                 `json:"notes"`
	Interval        string                 `json:"interval"`
	OccurredAt      time.Time              `json:"occurredAt"`
	Pending         bool                   `json:"pending"`
	ExpiresAt       *time.Time             `json:"expiresAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		OriginAccountID: txn.OriginAccountID,
		TargetAccountID: txn.TargetAccountID,
		Amount:          txn.Amount,
		Type:            txn.Type,
		CategoryID:      txn.CategoryID,
		Notes:           txn.Notes,
		Interval:        txn.Interval,
		OccurredAt:      txn.OccurredAt,
		Pending:         txn.Pending,
		ExpiresAt:       txn.ExpiresAt,
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	AccountID *string `form:"accountID"` // Optional filter to a single account
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
