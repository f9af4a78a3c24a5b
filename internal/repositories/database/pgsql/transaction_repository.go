package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	"github.com/centbook/centbook_backend/internal/models"
	"github.com/centbook/centbook_backend/internal/utils/mapping"
	"github.com/centbook/centbook_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions and keeps account balances in
// step with them. Every mutating method runs as one database transaction: the
// affected account rows are locked FOR UPDATE before the balance deltas are
// applied, so concurrent bookings on the same account serialize instead of
// losing updates.
type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, owner_id, origin_account_id, target_account_id, amount, type, category_id, notes, recurrence_interval, occurred_at, pending, expires_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var categoryID sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.OriginAccountID,
		&m.TargetAccountID,
		&m.Amount,
		&m.Type,
		&categoryID,
		&m.Notes,
		&m.Interval,
		&m.OccurredAt,
		&m.Pending,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if categoryID.Valid {
		m.CategoryID = categoryID.String
	}
	return m, err
}

// nullableCategoryID maps an unset category to NULL so the FK can be ON DELETE SET NULL.
func nullableCategoryID(categoryID string) sql.NullString {
	if categoryID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: categoryID, Valid: true}
}

// applyBalanceChanges locks the affected accounts and applies the deltas
// inside the given transaction.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, ownerID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ownerID, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for balance update: %w", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}

// SaveTransaction inserts the transaction row and applies its balance effect atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed.

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.OriginAccountID,
		m.TargetAccountID,
		m.Amount,
		m.Type,
		nullableCategoryID(m.CategoryID),
		m.Notes,
		m.Interval,
		m.OccurredAt,
		m.Pending,
		m.ExpiresAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := r.applyBalanceChanges(ctx, tx, txn.OwnerID, balanceChanges, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites the transaction row and applies balanceChanges
// (the net of reversing the old effect and applying the new one) atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET origin_account_id = $2, target_account_id = $3, amount = $4, type = $5,
			category_id = $6, notes = $7, recurrence_interval = $8, occurred_at = $9,
			pending = $10, expires_at = $11, last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OriginAccountID,
		m.TargetAccountID,
		m.Amount,
		m.Type,
		nullableCategoryID(m.CategoryID),
		m.Notes,
		m.Interval,
		m.OccurredAt,
		m.Pending,
		m.ExpiresAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, txn.OwnerID, balanceChanges, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the transaction row and applies balanceChanges
// (the reversal of its booked effect, empty if it was pending) atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, txn.OwnerID, balanceChanges, txn.LastUpdatedBy, time.Now()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction without owner scoping. The
// service compares OwnerID itself so it can answer forbidden rather than not
// found for foreign transactions.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// listTransactions runs a keyset paginated query. The extra row beyond limit
// decides whether a next token is issued.
func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args []any, limit int) ([]domain.Transaction, *string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var nextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.TransactionID)
		nextToken = &token
	}

	return mapping.ToDomainTransactionSlice(txns), nextToken, nil
}

// ListTransactionsByOwner retrieves a page of the user's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
	`
	args := []any{ownerID}

	if nextToken != nil && *nextToken != "" {
		occurredAt, rowID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, transaction_id) < ($2, $3)`
		args = append(args, occurredAt, rowID)
	}

	query += fmt.Sprintf(` ORDER BY occurred_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	return r.listTransactions(ctx, query, args, limit)
}

// ListTransactionsByAccount retrieves a page of transactions touching the
// given account as origin or target, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1 AND (origin_account_id = $2 OR target_account_id = $2)
	`
	args := []any{ownerID, accountID}

	if nextToken != nil && *nextToken != "" {
		occurredAt, rowID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, transaction_id) < ($3, $4)`
		args = append(args, occurredAt, rowID)
	}

	query += fmt.Sprintf(` ORDER BY occurred_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	return r.listTransactions(ctx, query, args, limit)
}

// findTransactions runs a non-paginated reporting query.
func (r *PgxTransactionRepository) findTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}

// FindBookedTransactionsAfter returns booked transactions touching the account
// that occurred strictly after the cutoff. Used to roll a live balance back to
// a point in time.
func (r *PgxTransactionRepository) FindBookedTransactionsAfter(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		  AND (origin_account_id = $2 OR target_account_id = $2)
		  AND pending = FALSE
		  AND occurred_at > $3;
	`
	return r.findTransactions(ctx, query, ownerID, accountID, cutoff)
}

// FindPendingTransactionsThrough returns pending transactions touching the
// account that occurred at or before the cutoff.
func (r *PgxTransactionRepository) FindPendingTransactionsThrough(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		  AND (origin_account_id = $2 OR target_account_id = $2)
		  AND pending = TRUE
		  AND occurred_at <= $3;
	`
	return r.findTransactions(ctx, query, ownerID, accountID, cutoff)
}

// FindTransactionsByOwnerInPeriod returns all of the user's transactions with
// occurred_at in [from, to), oldest first. Feeds the dashboard summary.
func (r *PgxTransactionRepository) FindTransactionsByOwnerInPeriod(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		  AND occurred_at >= $2
		  AND occurred_at < $3
		ORDER BY occurred_at;
	`
	return r.findTransactions(ctx, query, ownerID, from, to)
}
