package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	OwnerID       string          `db:"owner_id"`
	Name          string          `db:"name"`
	AccountNumber string          `db:"account_number"`
	Color         string          `db:"color"`
	Icon          string          `db:"icon"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
