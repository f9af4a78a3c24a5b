package services

import (
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.User = NewUserService(repos.UserRepo)

	// The ledger is the only writer of account balances; everything that
	// reads or references transactions goes through it.
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.TransactionRepo)
	container.Document = NewDocumentService(repos.DocumentRepo, container.Ledger)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
