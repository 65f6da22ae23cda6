package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
)

// reportingService serves read-only aggregates for the dashboard.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func validateWindowBounds(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: report window end is before its start", apperrors.ErrValidation)
	}
	return nil
}

// DashboardSummary aggregates period totals and account balances.
func (s *reportingService) DashboardSummary(ctx context.Context, from, to time.Time) (*domain.DashboardSummary, error) {
	if err := validateWindowBounds(from, to); err != nil {
		return nil, err
	}
	totals, err := s.reportingRepo.GetPeriodTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	accountsTotal, err := s.reportingRepo.GetAccountsTotal(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.DashboardSummary{
		PeriodTotals:  *totals,
		AccountsTotal: accountsTotal,
		From:          from,
		To:            to,
	}, nil
}

// SalesByDay retrieves per-day sale totals for charting.
func (s *reportingService) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesPoint, error) {
	if err := validateWindowBounds(from, to); err != nil {
		return nil, err
	}
	points, err := s.reportingRepo.GetSalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if points == nil {
		return []domain.SalesPoint{}, nil
	}
	return points, nil
}

// TopProducts ranks products by revenue over a window.
func (s *reportingService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error) {
	if err := validateWindowBounds(from, to); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	products, err := s.reportingRepo.GetTopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		return []domain.TopProduct{}, nil
	}
	return products, nil
}

// AccountBalances retrieves every active account with its per-currency
// balances and current balance.
func (s *reportingService) AccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error) {
	rows, err := s.reportingRepo.GetAccountBalances(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []domain.AccountBalanceRow{}, nil
	}
	return rows, nil
}

// StockValuation retrieves remaining inventory and its cost value.
func (s *reportingService) StockValuation(ctx context.Context) ([]domain.StockRow, error) {
	rows, err := s.reportingRepo.GetStockValuation(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return []domain.StockRow{}, nil
	}
	return rows, nil
}
