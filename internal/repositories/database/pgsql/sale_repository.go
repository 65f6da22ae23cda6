package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/models"
	"github.com/hesabix/hesabix_backend/internal/utils/mapping"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, customer_id, sale_date, currency_id, exchange_rate, discount_type, discount_value, discount_amount, discount_code, total_amount, base_amount, paid_amount, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.CustomerID,
		&m.SaleDate,
		&m.CurrencyID,
		&m.ExchangeRate,
		&m.DiscountType,
		&m.DiscountValue,
		&m.DiscountAmount,
		&m.DiscountCode,
		&m.TotalAmount,
		&m.BaseAmount,
		&m.PaidAmount,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const saleItemColumns = `sale_item_id, sale_id, product_id, unit_id, purchase_item_id, per_price, amount, discount_type, discount_value, total`

func scanSaleItem(row pgx.Row) (models.SaleItem, error) {
	var m models.SaleItem
	err := row.Scan(
		&m.SaleItemID,
		&m.SaleID,
		&m.ProductID,
		&m.UnitID,
		&m.PurchaseItemID,
		&m.PerPrice,
		&m.Amount,
		&m.DiscountType,
		&m.DiscountValue,
		&m.Total,
	)
	return m, err
}

func (r *PgxSaleRepository) insertSaleChildren(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	for _, item := range sale.Items {
		m := mapping.ToModelSaleItem(item)
		_, err := tx.Exec(ctx, `
			INSERT INTO sale_items (`+saleItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`, m.SaleItemID, m.SaleID, m.ProductID, m.UnitID, m.PurchaseItemID,
			m.PerPrice, m.Amount, m.DiscountType, m.DiscountValue, m.Total)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: product, unit or batch does not exist", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to save sale item %s: %w", m.SaleItemID, err)
		}
	}
	for _, svc := range sale.ServiceItems {
		m := mapping.ToModelSaleServiceItem(svc)
		_, err := tx.Exec(ctx, `
			INSERT INTO sale_service_items (service_item_id, sale_id, title, per_price, amount, discount_type, discount_value, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, m.ServiceItemID, m.SaleID, m.Title, m.PerPrice, m.Amount, m.DiscountType, m.DiscountValue, m.Total)
		if err != nil {
			return fmt.Errorf("failed to save sale service item %s: %w", m.ServiceItemID, err)
		}
	}
	for _, cost := range sale.AdditionalCosts {
		_, err := tx.Exec(ctx, `
			INSERT INTO sale_additional_costs (cost_id, sale_id, title, amount)
			VALUES ($1, $2, $3, $4);
		`, cost.CostID, cost.SaleID, cost.Title, cost.Amount)
		if err != nil {
			return fmt.Errorf("failed to save sale cost %s: %w", cost.CostID, err)
		}
	}
	return nil
}

// SaveSaleInTx persists a sale header with its items, services and costs.
func (r *PgxSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, query,
		m.SaleID, m.CustomerID, m.SaleDate, m.CurrencyID, m.ExchangeRate,
		m.DiscountType, m.DiscountValue, m.DiscountAmount, m.DiscountCode,
		m.TotalAmount, m.BaseAmount, m.PaidAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save sale %s: %w", m.SaleID, err)
	}
	return r.insertSaleChildren(ctx, tx, sale)
}

// UpdateSaleInTx rewrites the header and replaces items, services and costs.
func (r *PgxSaleRepository) UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	query := `
		UPDATE sales
		SET customer_id = $2, sale_date = $3, currency_id = $4, exchange_rate = $5,
		    discount_type = $6, discount_value = $7, discount_amount = $8, discount_code = $9,
		    total_amount = $10, base_amount = $11, notes = $12, last_updated_at = $13, last_updated_by = $14
		WHERE sale_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.SaleID, m.CustomerID, m.SaleDate, m.CurrencyID, m.ExchangeRate,
		m.DiscountType, m.DiscountValue, m.DiscountAmount, m.DiscountCode,
		m.TotalAmount, m.BaseAmount, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1;`, m.SaleID); err != nil {
		return fmt.Errorf("failed to clear sale items for %s: %w", m.SaleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_service_items WHERE sale_id = $1;`, m.SaleID); err != nil {
		return fmt.Errorf("failed to clear sale service items for %s: %w", m.SaleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_additional_costs WHERE sale_id = $1;`, m.SaleID); err != nil {
		return fmt.Errorf("failed to clear sale costs for %s: %w", m.SaleID, err)
	}
	return r.insertSaleChildren(ctx, tx, sale)
}

// DeleteSaleInTx removes the sale and its children. Dropping the sale lines
// implicitly restores batch stock, since remaining quantity is derived.
func (r *PgxSaleRepository) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale items for %s: %w", saleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_service_items WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale service items for %s: %w", saleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_additional_costs WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale costs for %s: %w", saleID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_payments WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete sale payments for %s: %w", saleID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindSaleByID retrieves a sale with its items, service items and costs.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	sale := mapping.ToDomainSale(m)

	itemRows, err := r.Pool.Query(ctx,
		`SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY sale_item_id;`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		im, err := scanSaleItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, mapping.ToDomainSaleItem(im))
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	svcRows, err := r.Pool.Query(ctx, `
		SELECT service_item_id, sale_id, title, per_price, amount, discount_type, discount_value, total
		FROM sale_service_items WHERE sale_id = $1 ORDER BY service_item_id;
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale service items: %w", err)
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var sm models.SaleServiceItem
		if err := svcRows.Scan(
			&sm.ServiceItemID, &sm.SaleID, &sm.Title, &sm.PerPrice, &sm.Amount,
			&sm.DiscountType, &sm.DiscountValue, &sm.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale service item: %w", err)
		}
		sale.ServiceItems = append(sale.ServiceItems, mapping.ToDomainSaleServiceItem(sm))
	}
	if err := svcRows.Err(); err != nil {
		return nil, err
	}

	costRows, err := r.Pool.Query(ctx,
		`SELECT cost_id, sale_id, title, amount FROM sale_additional_costs WHERE sale_id = $1 ORDER BY cost_id;`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale costs: %w", err)
	}
	defer costRows.Close()
	for costRows.Next() {
		var c domain.SaleAdditionalCost
		if err := costRows.Scan(&c.CostID, &c.SaleID, &c.Title, &c.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan sale cost: %w", err)
		}
		sale.AdditionalCosts = append(sale.AdditionalCosts, c)
	}
	if err := costRows.Err(); err != nil {
		return nil, err
	}

	return &sale, nil
}

// ListSales retrieves sales ordered by (sale_date, created_at) descending,
// starting after the given cursor when non-zero.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($2::timestamptz = 'epoch'::timestamptz OR (sale_date, created_at) < ($2, $3))
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $1;
	`
	cursorDate := afterDate
	if afterDate.IsZero() {
		cursorDate = time.Unix(0, 0).UTC()
	}
	rows, err := r.Pool.Query(ctx, query, limit, cursorDate, afterCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	modelSales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sale, error) {
		return scanSale(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}

	result := make([]domain.Sale, len(modelSales))
	for i, m := range modelSales {
		result[i] = mapping.ToDomainSale(m)
	}
	return result, nil
}

// UpdatePaidAmountInTx rewrites the cached paid_amount on the header.
func (r *PgxSaleRepository) UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET paid_amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	tag, err := tx.Exec(ctx, query, saleID, paidAmount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update paid amount for sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveSaleItemInTx appends a single product line to an existing sale.
func (r *PgxSaleRepository) SaveSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error {
	m := mapping.ToModelSaleItem(item)
	_, err := tx.Exec(ctx, `
		INSERT INTO sale_items (`+saleItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.SaleItemID, m.SaleID, m.ProductID, m.UnitID, m.PurchaseItemID,
		m.PerPrice, m.Amount, m.DiscountType, m.DiscountValue, m.Total)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product, unit or batch does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save sale item %s: %w", m.SaleItemID, err)
	}
	return nil
}

// UpdateSaleItemInTx rewrites a single product line in place.
func (r *PgxSaleRepository) UpdateSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error {
	m := mapping.ToModelSaleItem(item)
	query := `
		UPDATE sale_items
		SET product_id = $3, unit_id = $4, purchase_item_id = $5,
		    per_price = $6, amount = $7, discount_type = $8, discount_value = $9, total = $10
		WHERE sale_item_id = $1 AND sale_id = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.SaleItemID, m.SaleID, m.ProductID, m.UnitID, m.PurchaseItemID,
		m.PerPrice, m.Amount, m.DiscountType, m.DiscountValue, m.Total)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product, unit or batch does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to update sale item %s: %w", m.SaleItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSaleItemInTx removes a single product line.
func (r *PgxSaleRepository) DeleteSaleItemInTx(ctx context.Context, tx pgx.Tx, saleID string, saleItemID string) error {
	tag, err := tx.Exec(ctx,
		`DELETE FROM sale_items WHERE sale_item_id = $1 AND sale_id = $2;`, saleItemID, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale item %s: %w", saleItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSaleTotalsInTx rewrites the derived discount and total columns on the
// header after an item-level change.
func (r *PgxSaleRepository) UpdateSaleTotalsInTx(ctx context.Context, tx pgx.Tx, saleID string, discountAmount, totalAmount, baseAmount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET discount_amount = $2, total_amount = $3, base_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $1;
	`
	tag, err := tx.Exec(ctx, query, saleID, discountAmount, totalAmount, baseAmount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update totals for sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx persists a payment row.
func (r *PgxSaleRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SalePayment) error {
	m := mapping.ToModelSalePayment(payment)
	query := `
		INSERT INTO sale_payments (payment_id, sale_id, account_id, amount, currency_id, rate, base_amount, payment_date, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID, m.SaleID, m.AccountID, m.Amount, m.CurrencyID, m.Rate, m.BaseAmount,
		m.PaymentDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save sale payment %s: %w", m.PaymentID, err)
	}
	return nil
}

const salePaymentColumns = `payment_id, sale_id, account_id, amount, currency_id, rate, base_amount, payment_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSalePayment(row pgx.Row) (models.SalePayment, error) {
	var m models.SalePayment
	err := row.Scan(
		&m.PaymentID,
		&m.SaleID,
		&m.AccountID,
		&m.Amount,
		&m.CurrencyID,
		&m.Rate,
		&m.BaseAmount,
		&m.PaymentDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPaymentByID retrieves a single payment.
func (r *PgxSaleRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error) {
	query := `SELECT ` + salePaymentColumns + ` FROM sale_payments WHERE payment_id = $1;`
	m, err := scanSalePayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainSalePayment(m)
	return &d, nil
}

// ListPaymentsBySale retrieves payments for a sale, oldest first.
func (r *PgxSaleRepository) ListPaymentsBySale(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	query := `
		SELECT ` + salePaymentColumns + `
		FROM sale_payments
		WHERE sale_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale payments: %w", err)
	}
	defer rows.Close()

	var result []domain.SalePayment
	for rows.Next() {
		m, err := scanSalePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale payment: %w", err)
		}
		result = append(result, mapping.ToDomainSalePayment(m))
	}
	return result, rows.Err()
}

// DeletePaymentInTx removes a payment row.
func (r *PgxSaleRepository) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM sale_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete sale payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumPaymentsInTx returns the sum of payment amounts for a sale.
func (r *PgxSaleRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, saleID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = $1;`, saleID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for sale %s: %w", saleID, err)
	}
	return total, nil
}
