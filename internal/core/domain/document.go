package domain

// Document holds metadata for an uploaded file. Binary content lives in an
// external storage service; StorageKey is its opaque handle. Documents link to
// transactions through a many-to-many join.
type Document struct {
	DocumentID  string `json:"documentID"` // Primary Key (UUID)
	OwnerID     string `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	StorageKey  string `json:"storageKey"`
	AuditFields
}
