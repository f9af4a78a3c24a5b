package dto

import (
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
)

// CreateDocumentRequest registers metadata for a file uploaded to the external
// storage service. The binary itself never passes through this API.
type CreateDocumentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	SizeBytes   int64  `json:"sizeBytes" binding:"required,gt=0"`
	StorageKey  string `json:"storageKey" binding:"required"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentID"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StorageKey  string    `json:"storageKey"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.DocumentID,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		StorageKey:  doc.StorageKey,
		CreatedAt:   doc.CreatedAt,
	}
}

// ToListDocumentResponse converts a slice of domain.Document to DocumentResponse DTOs
func ToListDocumentResponse(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		res[i] = ToDocumentResponse(&doc)
	}
	return res
}
