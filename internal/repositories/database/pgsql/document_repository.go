package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	"github.com/centbook/centbook_backend/internal/models"
	"github.com/centbook/centbook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{pool: pool}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, owner_id, file_name, content_type, size_bytes, storage_key, created_at, created_by, last_updated_at, last_updated_by`

func scanDocumentRow(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.OwnerID,
		&m.FileName,
		&m.ContentType,
		&m.SizeBytes,
		&m.StorageKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDocument inserts a new document metadata row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.DocumentID,
		m.OwnerID,
		m.FileName,
		m.ContentType,
		m.SizeBytes,
		m.StorageKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document with ID %s already exists", apperrors.ErrDuplicate, m.DocumentID)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document by ID, scoped to its owner.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, ownerID string, documentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $1 AND owner_id = $2;
	`
	m, err := scanDocumentRow(r.pool.QueryRow(ctx, query, documentID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}

	d := mapping.ToDomainDocument(m)
	return &d, nil
}

// ListDocuments retrieves all documents belonging to a user, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC;
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		m, err := scanDocumentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row for owner %s: %w", ownerID, err)
		}
		docs = append(docs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows for owner %s: %w", ownerID, rows.Err())
	}

	return mapping.ToDomainDocumentSlice(docs), nil
}

// DeleteDocument removes a document row. The join rows disappear with it via
// ON DELETE CASCADE.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, ownerID string, documentID string) error {
	query := `
		DELETE FROM documents
		WHERE document_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, documentID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LinkDocumentToTransaction inserts a row into the transaction/document join table.
func (r *PgxDocumentRepository) LinkDocumentToTransaction(ctx context.Context, documentID string, transactionID string) error {
	query := `
		INSERT INTO transaction_documents (transaction_id, document_id)
		VALUES ($1, $2);
	`
	_, err := r.pool.Exec(ctx, query, transactionID, documentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: document %s already linked to transaction %s", apperrors.ErrDuplicate, documentID, transactionID)
			case "23503":
				return fmt.Errorf("%w: document or transaction does not exist", apperrors.ErrNotFound)
			}
		}
		return fmt.Errorf("failed to link document %s to transaction %s: %w", documentID, transactionID, err)
	}
	return nil
}

// UnlinkDocumentFromTransaction removes a row from the join table.
func (r *PgxDocumentRepository) UnlinkDocumentFromTransaction(ctx context.Context, documentID string, transactionID string) error {
	query := `
		DELETE FROM transaction_documents
		WHERE transaction_id = $1 AND document_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, transactionID, documentID)
	if err != nil {
		return fmt.Errorf("failed to unlink document %s from transaction %s: %w", documentID, transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDocumentsByTransactionID retrieves the documents linked to a transaction,
// scoped to the owner.
func (r *PgxDocumentRepository) FindDocumentsByTransactionID(ctx context.Context, ownerID string, transactionID string) ([]domain.Document, error) {
	query := `
		SELECT d.document_id, d.owner_id, d.file_name, d.content_type, d.size_bytes, d.storage_key, d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
		FROM documents d
		JOIN transaction_documents td ON td.document_id = d.document_id
		WHERE td.transaction_id = $1 AND d.owner_id = $2
		ORDER BY d.created_at;
	`

	rows, err := r.pool.Query(ctx, query, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		m, err := scanDocumentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row for transaction %s: %w", transactionID, err)
		}
		docs = append(docs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows for transaction %s: %w", transactionID, rows.Err())
	}

	return mapping.ToDomainDocumentSlice(docs), nil
}
