package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService computes read-side balance views. It never writes: every
// answer is a reduction over the stored balance and a fetched transaction
// list, scoped to one request.
type reportingService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.TransactionRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.TransactionRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// effectOn extracts the delta a transaction applies to one account when booked.
func effectOn(txn domain.Transaction, accountID string) decimal.Decimal {
	return txn.BalanceEffects()[accountID]
}

// GetAccountBalanceAt computes the account balance at a point in time. The
// stored balance reflects all booked transactions, so booked transactions
// occurring after the cutoff are rolled back from it. With bookPending set,
// pending transactions up to the cutoff are counted as if booked.
func (s *reportingService) GetAccountBalanceAt(ctx context.Context, ownerID string, accountID string, params dto.AccountBalanceParams) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	balance := account.Balance

	bookedAfter, err := s.ledgerRepo.FindBookedTransactionsAfter(ctx, ownerID, accountID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked transactions after cutoff: %w", err)
	}
	for _, txn := range bookedAfter {
		balance = balance.Sub(effectOn(txn, accountID))
	}

	if params.BookPending {
		pending, err := s.ledgerRepo.FindPendingTransactionsThrough(ctx, ownerID, accountID, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pending transactions: %w", err)
		}
		for _, txn := range pending {
			balance = balance.Add(effectOn(txn, accountID))
		}
	}

	return &dto.AccountBalanceResponse{
		AccountID:   accountID,
		Balance:     balance,
		AsOf:        asOf,
		BookPending: params.BookPending,
	}, nil
}

// GetDashboardSummary aggregates booked transactions over [from, to): totals
// per type and a per-category breakdown. Transfers move money between the
// user's own accounts and count toward neither side.
func (s *reportingService) GetDashboardSummary(ctx context.Context, ownerID string, params dto.DashboardSummaryParams) (*dto.DashboardSummaryResponse, error) {
	txns, err := s.ledgerRepo.FindTransactionsByOwnerInPeriod(ctx, ownerID, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for summary: %w", err)
	}

	totalExpenses := decimal.Zero
	totalIncome := decimal.Zero
	type categoryTotals struct {
		expenses decimal.Decimal
		income   decimal.Decimal
	}
	perCategory := map[string]categoryTotals{}

	for _, txn := range txns {
		if txn.Pending {
			continue
		}
		totals := perCategory[txn.CategoryID]
		switch txn.Type {
		case domain.Expense:
			totalExpenses = totalExpenses.Add(txn.Amount)
			totals.expenses = totals.expenses.Add(txn.Amount)
		case domain.Income:
			totalIncome = totalIncome.Add(txn.Amount)
			totals.income = totals.income.Add(txn.Amount)
		default:
			continue
		}
		perCategory[txn.CategoryID] = totals
	}

	categories := make([]dto.CategorySummary, 0, len(perCategory))
	for categoryID, totals := range perCategory {
		categories = append(categories, dto.CategorySummary{
			CategoryID: categoryID,
			Expenses:   totals.expenses,
			Income:     totals.income,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CategoryID < categories[j].CategoryID
	})

	return &dto.DashboardSummaryResponse{
		From:          params.From,
		To:            params.To,
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
		Net:           totalIncome.Sub(totalExpenses),
		Categories:    categories,
	}, nil
}
