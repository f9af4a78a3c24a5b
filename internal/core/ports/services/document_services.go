package services

import (
	"context"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/centbook/centbook_backend/internal/dto"
)

// DocumentSvcFacade defines document metadata operations. Binary content is
// stored externally; this service only books the metadata and the links to
// transactions.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, ownerID string, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error)
	DeleteDocument(ctx context.Context, ownerID string, documentID string) error

	// AttachToTransaction links an existing document to an existing transaction.
	// Both must belong to ownerID.
	AttachToTransaction(ctx context.Context, ownerID string, documentID string, transactionID string) error
	DetachFromTransaction(ctx context.Context, ownerID string, documentID string, transactionID string) error
	ListTransactionDocuments(ctx context.Context, ownerID string, transactionID string) ([]domain.Document, error)
}
