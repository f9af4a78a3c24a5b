package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/centbook/centbook_backend/internal/middleware"
)

// documentService books document metadata and links documents to
// transactions. The document binary lives in an external storage service and
// is identified by an opaque storage key.
type documentService struct {
	documentRepo portsrepo.DocumentRepository
	ledgerSvc    portssvc.LedgerSvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepository, ledgerSvc portssvc.LedgerSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		ledgerSvc:    ledgerSvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument registers metadata for an externally stored file.
func (s *documentService) CreateDocument(ctx context.Context, ownerID string, req dto.CreateDocumentRequest) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		OwnerID:     ownerID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		return nil, err
	}

	logger.Info("Document registered", slog.String("document_id", doc.DocumentID))
	return &doc, nil
}

// GetDocumentByID retrieves a single document owned by the caller.
func (s *documentService) GetDocumentByID(ctx context.Context, ownerID string, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, ownerID, documentID)
}

// ListDocuments retrieves all of the caller's documents.
func (s *documentService) ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return s.documentRepo.ListDocuments(ctx, ownerID)
}

// DeleteDocument removes the metadata row and its transaction links. The
// external binary is cleaned up out of band.
func (s *documentService) DeleteDocument(ctx context.Context, ownerID string, documentID string) error {
	return s.documentRepo.DeleteDocument(ctx, ownerID, documentID)
}

// AttachToTransaction links a document to a transaction. Both must resolve
// within the caller's scope first; the transaction lookup carries the same
// forbidden/not-found distinction as the ledger surface.
func (s *documentService) AttachToTransaction(ctx context.Context, ownerID string, documentID string, transactionID string) error {
	if _, err := s.documentRepo.FindDocumentByID(ctx, ownerID, documentID); err != nil {
		return err
	}
	if _, err := s.ledgerSvc.GetTransactionByID(ctx, ownerID, transactionID); err != nil {
		return err
	}
	return s.documentRepo.LinkDocumentToTransaction(ctx, documentID, transactionID)
}

// DetachFromTransaction removes the link between a document and a transaction.
func (s *documentService) DetachFromTransaction(ctx context.Context, ownerID string, documentID string, transactionID string) error {
	if _, err := s.documentRepo.FindDocumentByID(ctx, ownerID, documentID); err != nil {
		return err
	}
	if _, err := s.ledgerSvc.GetTransactionByID(ctx, ownerID, transactionID); err != nil {
		return err
	}
	return s.documentRepo.UnlinkDocumentFromTransaction(ctx, documentID, transactionID)
}

// ListTransactionDocuments retrieves the documents linked to a transaction.
func (s *documentService) ListTransactionDocuments(ctx context.Context, ownerID string, transactionID string) ([]domain.Document, error) {
	if _, err := s.ledgerSvc.GetTransactionByID(ctx, ownerID, transactionID); err != nil {
		return nil, err
	}
	return s.documentRepo.FindDocumentsByTransactionID(ctx, ownerID, transactionID)
}
