package services_test

import (
	"context"
	"testing"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/core/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade

	ownerID string
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)
	s.ownerID = uuid.NewString()
}

func (s *AccountServiceTestSuite) TestCreateAccountSeedsBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Checking",
		CurrencyCode:   "eur",
		InitialBalance: decimal.NewFromInt(1000),
	}

	var saved domain.Account
	s.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(s.ownerID, account.OwnerID)
	s.Equal("EUR", account.CurrencyCode, "currency code is normalized to upper case")
	s.True(saved.Balance.Equal(decimal.NewFromInt(1000)))
}

func (s *AccountServiceTestSuite) TestCreateAccountRejectsNonEUR() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Travel", CurrencyCode: "USD"}

	_, err := s.service.CreateAccount(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccountRejectsFractionalInitialBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Checking",
		CurrencyCode:   "EUR",
		InitialBalance: decimal.NewFromFloat(10.5),
	}

	_, err := s.service.CreateAccount(ctx, s.ownerID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestUpdateAccountPatchesOnlyProvidedFields() {
	ctx := context.Background()
	existing := domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      s.ownerID,
		Name:         "Checking",
		Color:        "#00ff00",
		CurrencyCode: "EUR",
		Balance:      decimal.NewFromInt(500),
	}
	newName := "Main checking"

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, s.ownerID, existing.AccountID).Return(&existing, nil).Once()

	var saved domain.Account
	s.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	updated, err := s.service.UpdateAccount(ctx, s.ownerID, existing.AccountID, dto.UpdateAccountRequest{Name: &newName})

	s.Require().NoError(err)
	s.Equal(newName, updated.Name)
	s.Equal("#00ff00", saved.Color, "unset fields stay untouched")
	s.True(saved.Balance.Equal(decimal.NewFromInt(500)), "balance is never updated through this path")
}

func (s *AccountServiceTestSuite) TestGetForeignAccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockAccountRepo.On("FindAccountByID", mock.Anything, s.ownerID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetAccountByID(ctx, s.ownerID, accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
