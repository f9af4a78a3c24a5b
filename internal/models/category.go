package models

// Category represents a row in the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	OwnerID    string `db:"owner_id"`
	Name       string `db:"name"`
	Color      string `db:"color"`
	Icon       string `db:"icon"`
	AuditFields
}
