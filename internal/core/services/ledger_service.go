package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/centbook/centbook_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositiveInteger = errors.New("amount must be a positive integer of minor currency units")
	ErrTransferTargetRequired   = errors.New("cannot change to TRANSFER without a valid target account")
	ErrTransferTargetSameAsOrig = errors.New("transfer target account must differ from origin account")
	ErrUnsupportedCurrency      = errors.New("only EUR accounts are currently supported")
)

// ledgerService is the bookkeeping core: the only code path that mutates
// account balances. Each mutating operation validates ownership and currency,
// computes per-account balance deltas, and hands the row write plus the deltas
// to the repository as one atomic unit.
type ledgerService struct {
	accountRepo  portsrepo.AccountRepository
	categoryRepo portsrepo.CategoryRepository
	ledgerRepo   portsrepo.TransactionRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository, categoryRepo portsrepo.CategoryRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAmount enforces that amounts are whole, positive minor currency units.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsInteger() || !amount.IsPositive() {
		return fmt.Errorf("%w: %s, got %s", apperrors.ErrValidation, ErrAmountNotPositiveInteger.Error(), amount.String())
	}
	return nil
}

// resolveTargetAccount applies the target rules: a TRANSFER requires a
// distinct target account; every other type has its target forced equal to
// the origin.
func resolveTargetAccount(txnType domain.TransactionType, originAccountID string, targetAccountID *string) (string, error) {
	if txnType != domain.Transfer {
		return originAccountID, nil
	}
	if targetAccountID == nil || *targetAccountID == "" {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferTargetRequired.Error())
	}
	if *targetAccountID == originAccountID {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferTargetSameAsOrig.Error())
	}
	return *targetAccountID, nil
}

// checkAccounts verifies that every account id resolves within the owner's
// scope and that each account uses the supported currency. Foreign accounts
// are indistinguishable from missing ones.
func (s *ledgerService) checkAccounts(ctx context.Context, ownerID string, accountIDs []string) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ownerID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if acc.CurrencyCode != domain.SupportedCurrencyCode {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnsupportedCurrency.Error())
		}
	}
	return nil
}

// checkCategory verifies the category exists within the owner's scope.
func (s *ledgerService) checkCategory(ctx context.Context, ownerID string, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return fmt.Errorf("failed to fetch category %s: %w", categoryID, err)
	}
	return nil
}

// involvedAccountIDs returns origin, plus target when distinct.
func involvedAccountIDs(txn domain.Transaction) []string {
	if txn.TargetAccountID != "" && txn.TargetAccountID != txn.OriginAccountID {
		return []string{txn.OriginAccountID, txn.TargetAccountID}
	}
	return []string{txn.OriginAccountID}
}

// mergeEffects sums two delta maps and drops entries that net to zero, so the
// repository does not lock accounts whose balance will not move.
func mergeEffects(a, b map[string]decimal.Decimal) map[string]decimal.Decimal {
	merged := make(map[string]decimal.Decimal, len(a)+len(b))
	for accountID, delta := range a {
		merged[accountID] = delta
	}
	for accountID, delta := range b {
		merged[accountID] = merged[accountID].Add(delta)
	}
	for accountID, delta := range merged {
		if delta.IsZero() {
			delete(merged, accountID)
		}
	}
	return merged
}

// CreateTransaction records a new transaction and, unless it is pending,
// applies its balance effect in the same atomic unit as the insert.
func (s *ledgerService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	targetAccountID, err := resolveTargetAccount(req.Type, req.OriginAccountID, req.TargetAccountID)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, ownerID, req.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		OwnerID:         ownerID,
		OriginAccountID: req.OriginAccountID,
		TargetAccountID: targetAccountID,
		Amount:          req.Amount,
		Type:            req.Type,
		CategoryID:      req.CategoryID,
		Notes:           req.Notes,
		Interval:        req.Interval,
		OccurredAt:      req.OccurredAt,
		Pending:         req.Pending,
		ExpiresAt:       req.ExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.checkAccounts(ctx, ownerID, involvedAccountIDs(txn)); err != nil {
		return nil, err
	}

	// Pending transactions exist but touch no balance until booked.
	balanceChanges := map[string]decimal.Decimal{}
	if !txn.Pending {
		balanceChanges = txn.BalanceEffects()
	}

	if err := s.ledgerRepo.SaveTransaction(ctx, txn, balanceChanges); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, err
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.Bool("pending", txn.Pending))
	return &txn, nil
}

// loadOwnedTransaction fetches a transaction and enforces ownership,
// distinguishing a foreign transaction (forbidden) from a missing one.
func (s *ledgerService) loadOwnedTransaction(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

// GetTransactionByID retrieves a single transaction owned by the caller.
func (s *ledgerService) GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	return s.loadOwnedTransaction(ctx, ownerID, transactionID)
}

// UpdateTransaction applies a partial update and reconciles balances by
// reversing the old effect (if it was booked) and applying the new effect (if
// it is booked after the update), all in one atomic unit.
func (s *ledgerService) UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.loadOwnedTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.OriginAccountID != nil {
		updated.OriginAccountID = *req.OriginAccountID
	}
	if req.TargetAccountID != nil {
		updated.TargetAccountID = *req.TargetAccountID
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		updated.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Interval != nil {
		updated.Interval = *req.Interval
	}
	if req.OccurredAt != nil {
		updated.OccurredAt = *req.OccurredAt
	}
	if req.Pending != nil {
		updated.Pending = *req.Pending
	}
	if req.ExpiresAt != nil {
		updated.ExpiresAt = req.ExpiresAt
	}

	if err := validateAmount(updated.Amount); err != nil {
		return nil, err
	}

	// Re-resolve the target under the post-patch type: a change to TRANSFER
	// needs a valid distinct target, a change away from it snaps the target
	// back to the origin.
	targetAccountID, err := resolveTargetAccount(updated.Type, updated.OriginAccountID, &updated.TargetAccountID)
	if err != nil {
		return nil, err
	}
	updated.TargetAccountID = targetAccountID

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, ownerID, updated.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := s.checkAccounts(ctx, ownerID, involvedAccountIDs(updated)); err != nil {
		return nil, err
	}

	now := time.Now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = ownerID

	// Reverse the old effect if it was booked, apply the new effect if it is
	// booked now. The merge nets out untouched accounts.
	oldEffects := map[string]decimal.Decimal{}
	if !existing.Pending {
		oldEffects = existing.ReversalEffects()
	}
	newEffects := map[string]decimal.Decimal{}
	if !updated.Pending {
		newEffects = updated.BalanceEffects()
	}
	balanceChanges := mergeEffects(oldEffects, newEffects)

	if err := s.ledgerRepo.UpdateTransaction(ctx, updated, balanceChanges); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Int("balance_changes", len(balanceChanges)))
	return &updated, nil
}

// DeleteTransaction removes a transaction, reversing its balance effect in the
// same atomic unit if it was booked. A second delete of the same id fails with
// not-found and reverses nothing.
func (s *ledgerService) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.loadOwnedTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}

	balanceChanges := map[string]decimal.Decimal{}
	if !txn.Pending {
		balanceChanges = txn.ReversalEffects()
	}

	if err := s.ledgerRepo.DeleteTransaction(ctx, *txn, balanceChanges); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.Bool("reversed", !txn.Pending))
	return nil
}

// ListTransactions returns a page of the caller's transactions, optionally
// filtered to a single account.
func (s *ledgerService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var (
		txns      []domain.Transaction
		nextToken *string
		err       error
	)
	if params.AccountID != nil && *params.AccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, ownerID, *params.AccountID); err != nil {
			return nil, err
		}
		txns, nextToken, err = s.ledgerRepo.ListTransactionsByAccount(ctx, ownerID, *params.AccountID, params.Limit, params.NextToken)
	} else {
		txns, nextToken, err = s.ledgerRepo.ListTransactionsByOwner(ctx, ownerID, params.Limit, params.NextToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
