package services

import (
	"context"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/dto"
)

// AccountSvcFacade defines account CRUD, scoped to the owning user.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, ownerID string, accountID string) error
}
