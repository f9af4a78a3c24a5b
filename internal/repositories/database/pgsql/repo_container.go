package pgsql

import (
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		TransactionRepo: transactionRepo,
		UserRepo:        userRepo,
		DocumentRepo:    documentRepo,
	}
}
