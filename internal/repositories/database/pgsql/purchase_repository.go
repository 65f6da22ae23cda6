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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryWithTx {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepositoryWithTx = (*PgxPurchaseRepository)(nil)

const purchaseColumns = `purchase_id, supplier_id, batch_number, purchase_date, currency_id, exchange_rate, total_amount, paid_amount, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchase(row pgx.Row) (models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.BatchNumber,
		&m.PurchaseDate,
		&m.CurrencyID,
		&m.ExchangeRate,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const purchaseItemColumns = `purchase_item_id, purchase_id, product_id, unit_id, per_price, amount, total, cost_price, wholesale_price, retail_price, expiry_date`

func scanPurchaseItem(row pgx.Row) (models.PurchaseItem, error) {
	var m models.PurchaseItem
	err := row.Scan(
		&m.PurchaseItemID,
		&m.PurchaseID,
		&m.ProductID,
		&m.UnitID,
		&m.PerPrice,
		&m.Amount,
		&m.Total,
		&m.CostPrice,
		&m.WholesalePrice,
		&m.RetailPrice,
		&m.ExpiryDate,
	)
	return m, err
}

func (r *PgxPurchaseRepository) insertPurchaseChildren(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	for _, item := range purchase.Items {
		m := mapping.ToModelPurchaseItem(item)
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_items (`+purchaseItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`, m.PurchaseItemID, m.PurchaseID, m.ProductID, m.UnitID, m.PerPrice, m.Amount, m.Total,
			m.CostPrice, m.WholesalePrice, m.RetailPrice, m.ExpiryDate)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: product or unit does not exist", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to save purchase item %s: %w", m.PurchaseItemID, err)
		}
	}
	for _, cost := range purchase.AdditionalCosts {
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_additional_costs (cost_id, purchase_id, title, amount)
			VALUES ($1, $2, $3, $4);
		`, cost.CostID, cost.PurchaseID, cost.Title, cost.Amount)
		if err != nil {
			return fmt.Errorf("failed to save purchase cost %s: %w", cost.CostID, err)
		}
	}
	return nil
}

// SavePurchaseInTx persists a purchase header with its items and costs.
func (r *PgxPurchaseRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.PurchaseID, m.SupplierID, m.BatchNumber, m.PurchaseDate, m.CurrencyID, m.ExchangeRate,
		m.TotalAmount, m.PaidAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: batch number %s already exists", apperrors.ErrDuplicate, m.BatchNumber)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: supplier or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save purchase %s: %w", m.PurchaseID, err)
	}
	return r.insertPurchaseChildren(ctx, tx, purchase)
}

// UpdatePurchaseInTx rewrites the header and replaces items and costs.
// Item replacement is delete-then-insert; the service layer guarantees no
// sold batch disappears before calling this.
func (r *PgxPurchaseRepository) UpdatePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	m := mapping.ToModelPurchase(purchase)
	query := `
		UPDATE purchases
		SET supplier_id = $2, purchase_date = $3, currency_id = $4, exchange_rate = $5,
		    total_amount = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE purchase_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.PurchaseID, m.SupplierID, m.PurchaseDate, m.CurrencyID, m.ExchangeRate,
		m.TotalAmount, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase %s: %w", m.PurchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1;`, m.PurchaseID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: purchase items are referenced by sales", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to clear purchase items for %s: %w", m.PurchaseID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM purchase_additional_costs WHERE purchase_id = $1;`, m.PurchaseID); err != nil {
		return fmt.Errorf("failed to clear purchase costs for %s: %w", m.PurchaseID, err)
	}
	return r.insertPurchaseChildren(ctx, tx, purchase)
}

// DeletePurchaseInTx removes the purchase and its children.
func (r *PgxPurchaseRepository) DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM purchase_additional_costs WHERE purchase_id = $1;`, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase costs for %s: %w", purchaseID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM purchase_payments WHERE purchase_id = $1;`, purchaseID); err != nil {
		return fmt.Errorf("failed to delete purchase payments for %s: %w", purchaseID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1;`, purchaseID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: purchase items are referenced by sales", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete purchase items for %s: %w", purchaseID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPurchaseByID retrieves a purchase with its items and additional costs.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`
	m, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase by ID %s: %w", purchaseID, err)
	}
	purchase := mapping.ToDomainPurchase(m)

	itemRows, err := r.Pool.Query(ctx,
		`SELECT `+purchaseItemColumns+` FROM purchase_items WHERE purchase_id = $1 ORDER BY purchase_item_id;`,
		purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		im, err := scanPurchaseItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase item: %w", err)
		}
		purchase.Items = append(purchase.Items, mapping.ToDomainPurchaseItem(im))
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	costRows, err := r.Pool.Query(ctx,
		`SELECT cost_id, purchase_id, title, amount FROM purchase_additional_costs WHERE purchase_id = $1 ORDER BY cost_id;`,
		purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase costs: %w", err)
	}
	defer costRows.Close()
	for costRows.Next() {
		var c domain.PurchaseAdditionalCost
		if err := costRows.Scan(&c.CostID, &c.PurchaseID, &c.Title, &c.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan purchase cost: %w", err)
		}
		purchase.AdditionalCosts = append(purchase.AdditionalCosts, c)
	}
	if err := costRows.Err(); err != nil {
		return nil, err
	}

	return &purchase, nil
}

// ListPurchases retrieves purchases ordered by (purchase_date, created_at)
// descending, starting after the given cursor when non-zero.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE ($2::timestamptz = 'epoch'::timestamptz OR (purchase_date, created_at) < ($2, $3))
		ORDER BY purchase_date DESC, created_at DESC
		LIMIT $1;
	`
	cursorDate := afterDate
	if afterDate.IsZero() {
		cursorDate = time.Unix(0, 0).UTC()
	}
	rows, err := r.Pool.Query(ctx, query, limit, cursorDate, afterCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	modelPurchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Purchase, error) {
		return scanPurchase(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}

	result := make([]domain.Purchase, len(modelPurchases))
	for i, m := range modelPurchases {
		result[i] = mapping.ToDomainPurchase(m)
	}
	return result, nil
}

// FindPurchaseItemByID retrieves a single purchase line.
func (r *PgxPurchaseRepository) FindPurchaseItemByID(ctx context.Context, purchaseItemID string) (*domain.PurchaseItem, error) {
	query := `SELECT ` + purchaseItemColumns + ` FROM purchase_items WHERE purchase_item_id = $1;`
	m, err := scanPurchaseItem(r.Pool.QueryRow(ctx, query, purchaseItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase item %s: %w", purchaseItemID, err)
	}
	d := mapping.ToDomainPurchaseItem(m)
	return &d, nil
}

// UpdatePaidAmountInTx rewrites the cached paid_amount on the header.
func (r *PgxPurchaseRepository) UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE purchases
		SET paid_amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1;
	`
	tag, err := tx.Exec(ctx, query, purchaseID, paidAmount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update paid amount for purchase %s: %w", purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoldQuantityByPurchaseItem returns, per purchase item of the purchase, the
// base-unit quantity already depleted by sale lines.
func (r *PgxPurchaseRepository) SoldQuantityByPurchaseItem(ctx context.Context, tx pgx.Tx, purchaseID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT pi.purchase_item_id, COALESCE(SUM(si.amount * su.ratio), 0)
		FROM purchase_items pi
		LEFT JOIN sale_items si ON si.purchase_item_id = pi.purchase_item_id
		LEFT JOIN units su ON su.unit_id = si.unit_id
		WHERE pi.purchase_id = $1
		GROUP BY pi.purchase_item_id;
	`
	rows, err := tx.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold quantities for purchase %s: %w", purchaseID, err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var itemID string
		var sold decimal.Decimal
		if err := rows.Scan(&itemID, &sold); err != nil {
			return nil, fmt.Errorf("failed to scan sold quantity: %w", err)
		}
		result[itemID] = sold
	}
	return result, rows.Err()
}

// SavePaymentInTx persists a payment row.
func (r *PgxPurchaseRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PurchasePayment) error {
	m := mapping.ToModelPurchasePayment(payment)
	query := `
		INSERT INTO purchase_payments (payment_id, purchase_id, account_id, amount, currency_id, rate, base_amount, payment_date, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID, m.PurchaseID, m.AccountID, m.Amount, m.CurrencyID, m.Rate, m.BaseAmount,
		m.PaymentDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save purchase payment %s: %w", m.PaymentID, err)
	}
	return nil
}

const purchasePaymentColumns = `payment_id, purchase_id, account_id, amount, currency_id, rate, base_amount, payment_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchasePayment(row pgx.Row) (models.PurchasePayment, error) {
	var m models.PurchasePayment
	err := row.Scan(
		&m.PaymentID,
		&m.PurchaseID,
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
func (r *PgxPurchaseRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error) {
	query := `SELECT ` + purchasePaymentColumns + ` FROM purchase_payments WHERE payment_id = $1;`
	m, err := scanPurchasePayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase payment %s: %w", paymentID, err)
	}
	d := mapping.ToDomainPurchasePayment(m)
	return &d, nil
}

// ListPaymentsByPurchase retrieves payments for a purchase, oldest first.
func (r *PgxPurchaseRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	query := `
		SELECT ` + purchasePaymentColumns + `
		FROM purchase_payments
		WHERE purchase_id = $1
		ORDER BY payment_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase payments: %w", err)
	}
	defer rows.Close()

	var result []domain.PurchasePayment
	for rows.Next() {
		m, err := scanPurchasePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase payment: %w", err)
		}
		result = append(result, mapping.ToDomainPurchasePayment(m))
	}
	return result, rows.Err()
}

// DeletePaymentInTx removes a payment row.
func (r *PgxPurchaseRepository) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM purchase_payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumPaymentsInTx returns the sum of payment amounts for a purchase.
func (r *PgxPurchaseRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, purchaseID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM purchase_payments WHERE purchase_id = $1;`, purchaseID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for purchase %s: %w", purchaseID, err)
	}
	return total, nil
}
