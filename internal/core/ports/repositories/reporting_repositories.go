package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// GetPeriodTotals aggregates sale, purchase, expense and salary totals
	// (base-currency) over [from, to].
	GetPeriodTotals(ctx context.Context, from, to time.Time) (*domain.PeriodTotals, error)

	// GetAccountsTotal sums current_balance across active accounts.
	GetAccountsTotal(ctx context.Context) (decimal.Decimal, error)

	// GetSalesByDay retrieves per-day sale totals over [from, to].
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesPoint, error)

	// GetTopProducts ranks products by revenue over [from, to].
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error)

	// GetStockValuation retrieves remaining quantity and cost value per product.
	GetStockValuation(ctx context.Context) ([]domain.StockRow, error)

	// GetAccountBalances retrieves every active account with its per-currency
	// balances and cached current balance.
	GetAccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error)
}
