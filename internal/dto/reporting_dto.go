package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalanceParams defines query parameters for the point-in-time balance query.
type AccountBalanceParams struct {
	// AsOf defaults to now when absent.
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
	// BookPending counts pending transactions as if they were booked
	// (the "book all transactions" user preference).
	BookPending bool `form:"bookPending"`
}

// AccountBalanceResponse is the point-in-time balance of a single account.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	Balance     decimal.Decimal `json:"balance"`
	AsOf        time.Time       `json:"asOf"`
	BookPending bool            `json:"bookPending"`
}

// DashboardSummaryParams defines query parameters for the dashboard summary.
type DashboardSummaryParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// CategorySummary aggregates booked spending per category in the summary period.
type CategorySummary struct {
	CategoryID string          `json:"categoryID"`
	Expenses   decimal.Decimal `json:"expenses"`
	Income     decimal.Decimal `json:"income"`
}

// DashboardSummaryResponse aggregates booked transactions over a period.
type DashboardSummaryResponse struct {
	From          time.Time         `json:"from"`
	To            time.Time         `json:"to"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	TotalIncome   decimal.Decimal   `json:"totalIncome"`
	Net           decimal.Decimal   `json:"net"`
	Categories    []CategorySummary `json:"categories"`
}
