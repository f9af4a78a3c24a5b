package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/core/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReportingSvcFacade

	ownerID string
	account domain.Account
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewReportingService(s.mockAccountRepo, s.mockLedgerRepo)

	s.ownerID = uuid.NewString()
	s.account = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      s.ownerID,
		Name:         "Checking",
		CurrencyCode: "EUR",
		Balance:      decimal.NewFromInt(850),
	}
}

func (s *ReportingServiceTestSuite) txn(txnType domain.TransactionType, amount int64, occurredAt time.Time, pending bool) domain.Transaction {
	return domain.Transaction{
		TransactionID:   uuid.NewString(),
		OwnerID:         s.ownerID,
		OriginAccountID: s.account.AccountID,
		TargetAccountID: s.account.AccountID,
		Amount:          decimal.NewFromInt(amount),
		Type:            txnType,
		OccurredAt:      occurredAt,
		Pending:         pending,
	}
}

func (s *ReportingServiceTestSuite) TestBalanceAtRollsBackLaterBookings() {
	ctx := context.Background()
	cutoff := time.Now().Add(-24 * time.Hour)

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, s.ownerID, s.account.AccountID).Return(&s.account, nil).Once()
	// A 150 expense was booked after the cutoff; rolling it back restores 1000.
	s.mockLedgerRepo.On("FindBookedTransactionsAfter", mock.Anything, s.ownerID, s.account.AccountID, cutoff).
		Return([]domain.Transaction{s.txn(domain.Expense, 150, time.Now(), false)}, nil).Once()

	resp, err := s.service.GetAccountBalanceAt(ctx, s.ownerID, s.account.AccountID, dto.AccountBalanceParams{AsOf: &cutoff})

	s.Require().NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(1000)))
	s.Equal(cutoff, resp.AsOf)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "FindPendingTransactionsThrough", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestBalanceAtBooksPendingWhenRequested() {
	ctx := context.Background()
	cutoff := time.Now()

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, s.ownerID, s.account.AccountID).Return(&s.account, nil).Once()
	s.mockLedgerRepo.On("FindBookedTransactionsAfter", mock.Anything, s.ownerID, s.account.AccountID, cutoff).
		Return([]domain.Transaction{}, nil).Once()
	// A pending 50 income counts under the book-all-transactions preference.
	s.mockLedgerRepo.On("FindPendingTransactionsThrough", mock.Anything, s.ownerID, s.account.AccountID, cutoff).
		Return([]domain.Transaction{s.txn(domain.Income, 50, cutoff.Add(-time.Hour), true)}, nil).Once()

	resp, err := s.service.GetAccountBalanceAt(ctx, s.ownerID, s.account.AccountID, dto.AccountBalanceParams{AsOf: &cutoff, BookPending: true})

	s.Require().NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(900)))
	s.True(resp.BookPending)
}

func (s *ReportingServiceTestSuite) TestDashboardSummaryAggregatesBookedOnly() {
	ctx := context.Background()
	from := time.Now().Add(-30 * 24 * time.Hour)
	to := time.Now()

	groceries := uuid.NewString()
	salary := uuid.NewString()

	expense1 := s.txn(domain.Expense, 120, from.Add(time.Hour), false)
	expense1.CategoryID = groceries
	expense2 := s.txn(domain.Expense, 80, from.Add(2*time.Hour), false)
	expense2.CategoryID = groceries
	income := s.txn(domain.Income, 2000, from.Add(3*time.Hour), false)
	income.CategoryID = salary
	pendingExpense := s.txn(domain.Expense, 999, from.Add(4*time.Hour), true)
	pendingExpense.CategoryID = groceries
	transfer := s.txn(domain.Transfer, 500, from.Add(5*time.Hour), false)

	s.mockLedgerRepo.On("FindTransactionsByOwnerInPeriod", mock.Anything, s.ownerID, from, to).
		Return([]domain.Transaction{expense1, expense2, income, pendingExpense, transfer}, nil).Once()

	resp, err := s.service.GetDashboardSummary(ctx, s.ownerID, dto.DashboardSummaryParams{From: from, To: to})

	s.Require().NoError(err)
	s.True(resp.TotalExpenses.Equal(decimal.NewFromInt(200)), "pending and transfers must not count")
	s.True(resp.TotalIncome.Equal(decimal.NewFromInt(2000)))
	s.True(resp.Net.Equal(decimal.NewFromInt(1800)))

	s.Require().Len(resp.Categories, 2)
	byCategory := map[string]dto.CategorySummary{}
	for _, c := range resp.Categories {
		byCategory[c.CategoryID] = c
	}
	s.True(byCategory[groceries].Expenses.Equal(decimal.NewFromInt(200)))
	s.True(byCategory[salary].Income.Equal(decimal.NewFromInt(2000)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
