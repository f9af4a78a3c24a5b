package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/centbook/centbook_backend/internal/middleware"
)

// accountService provides account CRUD scoped to the owning user. Balances
// are set once at creation; afterwards only the ledger service moves them.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account for the user. The initial balance seeds
// the running balance; only EUR accounts are accepted.
func (s *accountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currencyCode := strings.ToUpper(req.CurrencyCode)
	if currencyCode != domain.SupportedCurrencyCode {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnsupportedCurrency.Error())
	}
	if !req.InitialBalance.IsInteger() {
		return nil, fmt.Errorf("%w: initial balance must be an integer of minor currency units", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       ownerID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		Color:         req.Color,
		Icon:          req.Icon,
		CurrencyCode:  currencyCode,
		Balance:       req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves a single account owned by the caller.
func (s *accountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
}

// ListAccounts retrieves all of the caller's accounts.
func (s *accountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, ownerID)
}

// UpdateAccount applies a partial update to the account's presentation fields.
// Balance and currency are deliberately not updatable here.
func (s *accountService) UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = ownerID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account. Accounts with remaining transactions are
// refused by the store and surface as a conflict.
func (s *accountService) DeleteAccount(ctx context.Context, ownerID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, ownerID, accountID); err != nil {
		logger.Warn("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
