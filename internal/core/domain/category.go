package domain

// Category labels transactions; it carries no numeric invariants.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	OwnerID    string `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	Name       string `json:"name"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	AuditFields
}
