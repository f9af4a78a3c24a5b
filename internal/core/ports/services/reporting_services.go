package services

import (
	"context"

	"github.com/centbook/centbook_backend/internal/dto"
)

// ReportingSvcFacade is the read-side balance query surface. It never mutates
// balances; it reduces over fetched transactions per request.
type ReportingSvcFacade interface {
	GetAccountBalanceAt(ctx context.Context, ownerID string, accountID string, params dto.AccountBalanceParams) (*dto.AccountBalanceResponse, error)
	GetDashboardSummary(ctx context.Context, ownerID string, params dto.DashboardSummaryParams) (*dto.DashboardSummaryResponse, error)
}
