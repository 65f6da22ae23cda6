package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository answering stock
// questions. There is no stock table; everything is derived from purchase
// lines and the sale lines that deplete them.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

// ListProductBatches returns the purchase lots of a product with their
// remaining base-unit quantities, oldest purchase first.
func (r *PgxInventoryRepository) ListProductBatches(ctx context.Context, productID string, includeEmpty bool) ([]domain.ProductBatch, error) {
	query := `
		SELECT pi.purchase_item_id, p.batch_number, p.purchase_date, pi.expiry_date,
		       pi.per_price, pi.cost_price, pi.wholesale_price, pi.retail_price,
		       pi.amount * u.ratio - COALESCE(s.sold, 0) AS remaining
		FROM purchase_items pi
		JOIN purchases p ON p.purchase_id = pi.purchase_id
		JOIN units u ON u.unit_id = pi.unit_id
		LEFT JOIN LATERAL (
			SELECT SUM(si.amount * su.ratio) AS sold
			FROM sale_items si
			JOIN units su ON su.unit_id = si.unit_id
			WHERE si.purchase_item_id = pi.purchase_item_id
		) s ON TRUE
		WHERE pi.product_id = $1
		ORDER BY p.purchase_date, p.created_at, pi.purchase_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product batches for %s: %w", productID, err)
	}
	defer rows.Close()

	var result []domain.ProductBatch
	for rows.Next() {
		var b domain.ProductBatch
		if err := rows.Scan(
			&b.PurchaseItemID, &b.BatchNumber, &b.PurchaseDate, &b.ExpiryDate,
			&b.PerPrice, &b.CostPrice, &b.WholesalePrice, &b.RetailPrice,
			&b.RemainingQuantity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product batch: %w", err)
		}
		if !includeEmpty && b.RemainingQuantity.LessThanOrEqual(accounting.StockEpsilon) {
			continue
		}
		b.RemainingQuantity = b.RemainingQuantity.Round(accounting.QuantityScale)
		result = append(result, b)
	}
	return result, rows.Err()
}

// GetProductStock returns the total remaining base-unit quantity across all
// lots of a product. Returns ErrNotFound for an unknown product.
func (r *PgxInventoryRepository) GetProductStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	var exists bool
	if err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1);`, productID,
	).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("failed to check product %s: %w", productID, err)
	}
	if !exists {
		return decimal.Zero, apperrors.ErrNotFound
	}

	query := `
		SELECT COALESCE(SUM(pi.amount * u.ratio), 0) - COALESCE((
			SELECT SUM(si.amount * su.ratio)
			FROM sale_items si
			JOIN units su ON su.unit_id = si.unit_id
			WHERE si.product_id = $1
		), 0)
		FROM purchase_items pi
		JOIN units u ON u.unit_id = pi.unit_id
		WHERE pi.product_id = $1;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute stock for product %s: %w", productID, err)
	}
	return total.Round(accounting.QuantityScale), nil
}

// RemainingByPurchaseItemForUpdate locks the given purchase lines and returns
// their remaining base-unit quantities, excluding depletion rows that belong
// to excludeSaleID. The lock query and the aggregate run separately because
// FOR UPDATE does not combine with grouping.
func (r *PgxInventoryRepository) RemainingByPurchaseItemForUpdate(ctx context.Context, tx pgx.Tx, purchaseItemIDs []string, excludeSaleID string) (map[string]decimal.Decimal, error) {
	if len(purchaseItemIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	lockRows, err := tx.Query(ctx,
		`SELECT purchase_item_id FROM purchase_items WHERE purchase_item_id = ANY($1) ORDER BY purchase_item_id FOR UPDATE;`,
		purchaseItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock purchase items: %w", err)
	}
	locked, err := pgx.CollectRows(lockRows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect locked purchase items: %w", err)
	}
	if len(locked) != len(uniqueStrings(purchaseItemIDs)) {
		return nil, fmt.Errorf("%w: one or more batches do not exist", apperrors.ErrValidation)
	}

	query := `
		SELECT pi.purchase_item_id,
		       pi.amount * u.ratio - COALESCE(SUM(si.amount * su.ratio), 0) AS remaining
		FROM purchase_items pi
		JOIN units u ON u.unit_id = pi.unit_id
		LEFT JOIN sale_items si
		       ON si.purchase_item_id = pi.purchase_item_id
		      AND ($2 = '' OR si.sale_id <> $2)
		LEFT JOIN units su ON su.unit_id = si.unit_id
		WHERE pi.purchase_item_id = ANY($1)
		GROUP BY pi.purchase_item_id, pi.amount, u.ratio;
	`
	rows, err := tx.Query(ctx, query, purchaseItemIDs, excludeSaleID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute remaining quantities: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal, len(purchaseItemIDs))
	for rows.Next() {
		var id string
		var remaining decimal.Decimal
		if err := rows.Scan(&id, &remaining); err != nil {
			return nil, fmt.Errorf("failed to scan remaining quantity: %w", err)
		}
		result[id] = remaining
	}
	return result, rows.Err()
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
