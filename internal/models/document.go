package models

// Document represents a row in the documents table.
type Document struct {
	DocumentID  string `db:"document_id"`
	OwnerID     string `db:"owner_id"`
	FileName    string `db:"file_name"`
	ContentType string `db:"content_type"`
	SizeBytes   int64  `db:"size_bytes"`
	StorageKey  string `db:"storage_key"`
	AuditFields
}
