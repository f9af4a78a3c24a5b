package dto

import (
	"time"

	"github.com/centbook/centbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	AccountNumber  string          `json:"accountNumber"`
	Color          string          `json:"color"`
	Icon           string          `json:"icon"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,len=3"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Optional, defaults to zero
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"accountNumber"`
	Color         *string `json:"color"`
	Icon          *string `json:"icon"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"accountNumber"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountNumber: acc.AccountNumber,
		Color:         acc.Color,
		Icon:          acc.Icon,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
