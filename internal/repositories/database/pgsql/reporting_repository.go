package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregates.
// All money figures are converted to base currency in SQL.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetPeriodTotals aggregates sale, purchase, expense and salary totals
// (base-currency) over [from, to].
func (r *PgxReportingRepository) GetPeriodTotals(ctx context.Context, from, to time.Time) (*domain.PeriodTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(base_amount) FROM sales WHERE sale_date BETWEEN $1 AND $2), 0),
			COALESCE((SELECT SUM(total_amount * exchange_rate) FROM purchases WHERE purchase_date BETWEEN $1 AND $2), 0),
			COALESCE((SELECT SUM(amount * rate) FROM expenses WHERE expense_date BETWEEN $1 AND $2), 0),
			COALESCE((SELECT SUM(net_amount * rate) FROM salaries WHERE paid_at BETWEEN $1 AND $2), 0);
	`
	var t domain.PeriodTotals
	err := r.Pool.QueryRow(ctx, query, from, to).Scan(
		&t.SalesTotal, &t.PurchaseTotal, &t.ExpenseTotal, &t.SalaryTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute period totals: %w", err)
	}
	return &t, nil
}

// GetAccountsTotal sums current_balance across active accounts.
func (r *PgxReportingRepository) GetAccountsTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(current_balance), 0) FROM accounts WHERE is_active;`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, nil
}

// GetSalesByDay retrieves per-day sale totals over [from, to]. Days with no
// sales produce no row.
func (r *PgxReportingRepository) GetSalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesPoint, error) {
	query := `
		SELECT date_trunc('day', sale_date) AS day, SUM(base_amount), COUNT(*)
		FROM sales
		WHERE sale_date BETWEEN $1 AND $2
		GROUP BY day
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by day: %w", err)
	}
	defer rows.Close()

	var result []domain.SalesPoint
	for rows.Next() {
		var p domain.SalesPoint
		if err := rows.Scan(&p.Date, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sales point: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetTopProducts ranks products by revenue over [from, to].
func (r *PgxReportingRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProduct, error) {
	query := `
		SELECT p.product_id, p.name,
		       SUM(si.amount * u.ratio) AS quantity_sold,
		       SUM(si.total * s.exchange_rate) AS revenue
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		JOIN products p ON p.product_id = si.product_id
		JOIN units u ON u.unit_id = si.unit_id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY p.product_id, p.name
		ORDER BY revenue DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var result []domain.TopProduct
	for rows.Next() {
		var t domain.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		t.QuantitySold = t.QuantitySold.Round(accounting.QuantityScale)
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetStockValuation retrieves remaining quantity and cost value per product.
// Valuation is per-batch: remaining base units times the batch's base-unit
// purchase price.
func (r *PgxReportingRepository) GetStockValuation(ctx context.Context) ([]domain.StockRow, error) {
	query := `
		SELECT p.product_id, p.name,
		       COALESCE(SUM(b.remaining), 0) AS quantity,
		       COALESCE(SUM(b.remaining * b.unit_cost), 0) AS cost_value
		FROM products p
		LEFT JOIN (
			SELECT pi.product_id,
			       pi.amount * u.ratio - COALESCE(s.sold, 0) AS remaining,
			       pi.per_price / u.ratio AS unit_cost
			FROM purchase_items pi
			JOIN units u ON u.unit_id = pi.unit_id
			LEFT JOIN LATERAL (
				SELECT SUM(si.amount * su.ratio) AS sold
				FROM sale_items si
				JOIN units su ON su.unit_id = si.unit_id
				WHERE si.purchase_item_id = pi.purchase_item_id
			) s ON TRUE
		) b ON b.product_id = p.product_id
		GROUP BY p.product_id, p.name
		ORDER BY p.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock valuation: %w", err)
	}
	defer rows.Close()

	var result []domain.StockRow
	for rows.Next() {
		var s domain.StockRow
		if err := rows.Scan(&s.ProductID, &s.Name, &s.Quantity, &s.CostValue); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		s.Quantity = s.Quantity.Round(accounting.QuantityScale)
		s.CostValue = accounting.Round2(s.CostValue)
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetAccountBalances retrieves every active account with its per-currency
// balances and cached current balance. Accounts with no currency rows still
// produce one row with an empty balance list.
func (r *PgxReportingRepository) GetAccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.current_balance,
		       b.currency_id, c.name, b.balance
		FROM accounts a
		LEFT JOIN account_currency_balances b ON b.account_id = a.account_id
		LEFT JOIN currencies c ON c.currency_id = b.currency_id
		WHERE a.is_active
		ORDER BY a.name, a.account_id, c.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account balances: %w", err)
	}
	defer rows.Close()

	var result []domain.AccountBalanceRow
	for rows.Next() {
		var (
			accountID      string
			accountName    string
			currentBalance decimal.Decimal
			currencyID     *string
			currencyName   *string
			balance        *decimal.Decimal
		)
		if err := rows.Scan(&accountID, &accountName, &currentBalance, &currencyID, &currencyName, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan account balance: %w", err)
		}
		if len(result) == 0 || result[len(result)-1].AccountID != accountID {
			result = append(result, domain.AccountBalanceRow{
				AccountID:      accountID,
				Name:           accountName,
				CurrentBalance: currentBalance,
				Balances:       []domain.AccountBalanceLine{},
			})
		}
		if currencyID == nil {
			continue
		}
		row := &result[len(result)-1]
		line := domain.AccountBalanceLine{CurrencyID: *currencyID, Balance: *balance}
		if currencyName != nil {
			line.Name = *currencyName
		}
		row.Balances = append(row.Balances, line)
	}
	return result, rows.Err()
}
