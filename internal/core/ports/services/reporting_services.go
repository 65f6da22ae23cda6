package services

import (
	"context"
	"time"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// ReportingService defines operations for generating reports
type ReportingService interface {
	// DashboardSummary aggregates period totals and account balances.
	DashboardSummary(ctx context.Context, from, to time.Time) (*domain.DashboardSummary, error)

	// SalesByDay retrieves per-day sale totals for charting.
	SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesPoint, error)

	// TopProducts ranks products by revenue over a window.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error)

	// StockValuation retrieves remaining inventory and its cost value.
	StockValuation(ctx context.Context) ([]domain.StockRow, error)

	// AccountBalances retrieves every active account with its per-currency
	// balances and current balance.
	AccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error)
}
