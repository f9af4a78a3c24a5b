package domain

import (
	"github.com/shopspring/decimal"
)

// SupportedCurrencyCode is the only currency accepted by business rules at present.
// Multi-currency support requires per-transaction FX handling and is deliberately
// rejected at validation time until then.
const SupportedCurrencyCode = "EUR"

// Account represents a financial account owned by a single user.
// Balance is held in minor currency units (cents) and is mutated only by the
// ledger service as a side effect of transaction create/update/delete.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`   // FK -> users.user_id (NON-NULL)
	Name          string          `json:"name"`
	AccountNumber string          `json:"accountNumber"` // External account number, informational
	Color         string          `json:"color"`         // Presentation only
	Icon          string          `json:"icon"`          // Presentation only
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"` // Sum of all booked transaction effects plus initial value
	AuditFields
}
