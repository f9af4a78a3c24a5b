package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/core/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) FindBookedTransactionsAfter(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, accountID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindPendingTransactionsThrough(ctx context.Context, ownerID string, accountID string, cutoff time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, accountID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByOwnerInPeriod(ctx context.Context, ownerID string, from time.Time, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, ownerID string, accountID string) error {
	args := m.Called(ctx, ownerID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, ownerID string, categoryID string) error {
	args := m.Called(ctx, ownerID, categoryID)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.LedgerSvcFacade

	ownerID    string
	category   domain.Category
	accountA   domain.Account
	accountB   domain.Account
	usdAccount domain.Account
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockTransactionRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.service = services.NewLedgerService(s.mockLedgerRepo, s.mockAccountRepo, s.mockCategoryRepo)

	s.ownerID = uuid.NewString()
	s.category = domain.Category{CategoryID: uuid.NewString(), OwnerID: s.ownerID, Name: "Groceries"}
	s.accountA = domain.Account{AccountID: uuid.NewString(), OwnerID: s.ownerID, Name: "Checking", CurrencyCode: "EUR", Balance: decimal.NewFromInt(1000)}
	s.accountB = domain.Account{AccountID: uuid.NewString(), OwnerID: s.ownerID, Name: "Savings", CurrencyCode: "EUR", Balance: decimal.NewFromInt(200)}
	s.usdAccount = domain.Account{AccountID: uuid.NewString(), OwnerID: s.ownerID, Name: "Travel", CurrencyCode: "USD", Balance: decimal.Zero}
}

func (s *LedgerServiceTestSuite) expectCategoryLookup() {
	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, s.ownerID, s.category.CategoryID).Return(&s.category, nil).Once()
}

func (s *LedgerServiceTestSuite) expectAccountLookup(accounts ...domain.Account) {
	result := make(map[string]domain.Account, len(accounts))
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
		ids = append(ids, acc.AccountID)
	}
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, s.ownerID, ids).Return(result, nil).Once()
}

func (s *LedgerServiceTestSuite) createRequest(txnType domain.TransactionType, amount int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		OriginAccountID: s.accountA.AccountID,
		Amount:          decimal.NewFromInt(amount),
		Type:            txnType,
		CategoryID:      s.category.CategoryID,
		OccurredAt:      time.Now(),
	}
}

func (s *LedgerServiceTestSuite) TestCreateExpenseDebitsOrigin() {
	ctx := context.Background()
	req := s.createRequest(domain.Expense, 150)

	s.expectCategoryLookup()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.NotEmpty(txn.TransactionID)
	s.Equal(s.ownerID, txn.OwnerID)
	s.Equal(s.accountA.AccountID, txn.TargetAccountID, "non-transfer target is forced to origin")
	s.Require().Len(capturedChanges, 1)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(-150)))

	s.mockLedgerRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockCategoryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateIncomeCreditsOrigin() {
	ctx := context.Background()
	req := s.createRequest(domain.Income, 50)

	s.expectCategoryLookup()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(50)))
}

func (s *LedgerServiceTestSuite) TestCreateTransferIsZeroSum() {
	ctx := context.Background()
	req := s.createRequest(domain.Transfer, 300)
	req.TargetAccountID = &s.accountB.AccountID

	s.expectCategoryLookup()
	s.expectAccountLookup(s.accountA, s.accountB)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.Equal(s.accountB.AccountID, txn.TargetAccountID)
	s.Require().Len(capturedChanges, 2)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(-300)))
	s.True(capturedChanges[s.accountB.AccountID].Equal(decimal.NewFromInt(300)))

	sum := capturedChanges[s.accountA.AccountID].Add(capturedChanges[s.accountB.AccountID])
	s.True(sum.IsZero(), "transfer deltas must sum to zero")
}

func (s *LedgerServiceTestSuite) TestCreatePendingTouchesNoBalance() {
	ctx := context.Background()
	req := s.createRequest(domain.Income, 50)
	req.Pending = true

	s.expectCategoryLookup()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.True(txn.Pending)
	s.Empty(capturedChanges, "pending transactions must not move any balance")
}

func (s *LedgerServiceTestSuite) TestCreateRejectsNonIntegerAmount() {
	ctx := context.Background()
	req := s.createRequest(domain.Expense, 0)
	req.Amount = decimal.NewFromFloat(10.5)

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsNegativeAmount() {
	ctx := context.Background()
	req := s.createRequest(domain.Expense, -5)

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestCreateTransferRequiresTarget() {
	ctx := context.Background()
	req := s.createRequest(domain.Transfer, 100)

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateTransferRejectsSameAccount() {
	ctx := context.Background()
	req := s.createRequest(domain.Transfer, 100)
	req.TargetAccountID = &s.accountA.AccountID

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsForeignAccount() {
	ctx := context.Background()
	req := s.createRequest(domain.Expense, 100)

	s.expectCategoryLookup()
	// Owner-scoped lookup does not resolve the foreign account.
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, s.ownerID, []string{s.accountA.AccountID}).
		Return(map[string]domain.Account{}, nil).Once()

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsForeignCategory() {
	ctx := context.Background()
	req := s.createRequest(domain.Expense, 100)

	s.mockCategoryRepo.On("FindCategoryByID", mock.Anything, s.ownerID, s.category.CategoryID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateRejectsNonEURAccount() {
	ctx := context.Background()
	req := s.createRequest(domain.Transfer, 100)
	req.TargetAccountID = &s.usdAccount.AccountID

	s.expectCategoryLookup()
	s.expectAccountLookup(s.accountA, s.usdAccount)

	_, err := s.service.CreateTransaction(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorContains(err, "only EUR accounts are currently supported")
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) bookedTransaction(txnType domain.TransactionType, amount int64) domain.Transaction {
	target := s.accountA.AccountID
	if txnType == domain.Transfer {
		target = s.accountB.AccountID
	}
	return domain.Transaction{
		TransactionID:   uuid.NewString(),
		OwnerID:         s.ownerID,
		OriginAccountID: s.accountA.AccountID,
		TargetAccountID: target,
		Amount:          decimal.NewFromInt(amount),
		Type:            txnType,
		CategoryID:      s.category.CategoryID,
		OccurredAt:      time.Now().Add(-time.Hour),
		Pending:         false,
	}
}

func (s *LedgerServiceTestSuite) TestDeleteBookedExpenseReversesEffect() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 150)

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("DeleteTransaction", mock.Anything, existing, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	s.Require().NoError(err)
	s.Require().Len(capturedChanges, 1)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(150)), "delete must credit back the expense")
}

func (s *LedgerServiceTestSuite) TestDeletePendingReversesNothing() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Income, 75)
	existing.Pending = true

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("DeleteTransaction", mock.Anything, existing, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	s.Require().NoError(err)
	s.Empty(capturedChanges)
}

func (s *LedgerServiceTestSuite) TestDeleteTwiceFailsSecondTime() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 150)

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.mockLedgerRepo.On("DeleteTransaction", mock.Anything, existing, mock.Anything).Return(nil).Once()

	s.Require().NoError(s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID))

	// Row is gone now; the second delete must fail and reverse nothing.
	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNumberOfCalls(s.T(), "DeleteTransaction", 1)
}

func (s *LedgerServiceTestSuite) TestDeleteForeignTransactionForbidden() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 150)
	existing.OwnerID = uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()

	err := s.service.DeleteTransaction(ctx, s.ownerID, existing.TransactionID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestUpdateAmountReversesOldAppliesNew() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Transfer, 300)
	newAmount := decimal.NewFromInt(100)

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.expectAccountLookup(s.accountA, s.accountB)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("UpdateTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	s.Require().NoError(err)
	s.True(updated.Amount.Equal(newAmount))
	// Reverse old 300, apply new 100: origin +200, target -200.
	s.Require().Len(capturedChanges, 2)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(200)))
	s.True(capturedChanges[s.accountB.AccountID].Equal(decimal.NewFromInt(-200)))
}

func (s *LedgerServiceTestSuite) TestUpdateBookingPendingAppliesFullEffect() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Income, 50)
	existing.Pending = true
	booked := false

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("UpdateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Pending: &booked,
	})

	s.Require().NoError(err)
	s.False(updated.Pending)
	s.Require().Len(capturedChanges, 1)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(50)), "booking a pending income must apply the same delta as creating it booked")
}

func (s *LedgerServiceTestSuite) TestUpdateUnbookingReversesEffect() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 80)
	pending := true

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("UpdateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Pending: &pending,
	})

	s.Require().NoError(err)
	s.Require().Len(capturedChanges, 1)
	s.True(capturedChanges[s.accountA.AccountID].Equal(decimal.NewFromInt(80)), "unbooking an expense must credit the amount back")
}

func (s *LedgerServiceTestSuite) TestUpdateNoEffectiveChangeSendsNoDeltas() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 150)
	notes := "groceries at the market"

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("UpdateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	_, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Notes: &notes,
	})

	s.Require().NoError(err)
	s.Empty(capturedChanges, "reversal and reapplication of an unchanged effect must net to zero")
}

func (s *LedgerServiceTestSuite) TestUpdateToTransferWithoutTargetFails() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 150)
	transfer := domain.Transfer

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()

	// Target still equals origin after the patch, which is invalid for a transfer.
	_, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Type: &transfer,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestUpdateAwayFromTransferSnapsTargetToOrigin() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Transfer, 300)
	expense := domain.Expense

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()
	s.expectAccountLookup(s.accountA)

	var capturedChanges map[string]decimal.Decimal
	s.mockLedgerRepo.On("UpdateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(ctx, s.ownerID, existing.TransactionID, dto.UpdateTransactionRequest{
		Type: &expense,
	})

	s.Require().NoError(err)
	s.Equal(s.accountA.AccountID, updated.TargetAccountID)
	// Old transfer reversed (+300 A, -300 B), new expense applied (-300 A):
	// A nets to zero, B gets its 300 back.
	s.Require().Len(capturedChanges, 1)
	s.True(capturedChanges[s.accountB.AccountID].Equal(decimal.NewFromInt(-300)))
}

func (s *LedgerServiceTestSuite) TestGetForeignTransactionForbidden() {
	ctx := context.Background()
	existing := s.bookedTransaction(domain.Expense, 10)
	existing.OwnerID = uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", mock.Anything, existing.TransactionID).Return(&existing, nil).Once()

	_, err := s.service.GetTransactionByID(ctx, s.ownerID, existing.TransactionID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerServiceTestSuite) TestListTransactionsByAccountChecksOwnership() {
	ctx := context.Background()

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, s.ownerID, s.accountA.AccountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListTransactions(ctx, s.ownerID, dto.ListTransactionsParams{
		Limit:     20,
		AccountID: &s.accountA.AccountID,
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "ListTransactionsByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
