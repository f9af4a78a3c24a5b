package repositories

import (
	"context"

	"github.com/centbook/centbook_backend/internal/core/domain"
)

// DocumentRepository defines persistence operations for document metadata and
// the transaction/document many-to-many join.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	FindDocumentByID(ctx context.Context, ownerID string, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, ownerID string, documentID string) error

	LinkDocumentToTransaction(ctx context.Context, documentID string, transactionID string) error
	UnlinkDocumentFromTransaction(ctx context.Context, documentID string, transactionID string) error
	FindDocumentsByTransactionID(ctx context.Context, ownerID string, transactionID string) ([]domain.Document, error)
}
