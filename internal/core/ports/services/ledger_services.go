package services

import (
	"context"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/dto"
)

// LedgerSvcFacade is the bookkeeping surface: every operation that can change
// an account balance goes through here and nowhere else. The owner id is
// threaded explicitly into every call; there is no ambient current user.
type LedgerSvcFacade interface {
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error

	GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
