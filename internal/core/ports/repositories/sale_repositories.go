package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a sale with its items, service items and costs.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales ordered by (sale_date, created_at) descending,
	// starting after the given cursor when non-zero.
	ListSales(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Sale, error)
}

// SaleWriter defines in-transaction write operations for sale data
type SaleWriter interface {
	// SaveSaleInTx persists a sale header with its items, services and costs.
	SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// UpdateSaleInTx rewrites the header and replaces items, services and costs.
	UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// DeleteSaleInTx removes the sale and its children.
	DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error

	// UpdatePaidAmountInTx rewrites the cached paid_amount on the header.
	UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount decimal.Decimal, userID string, now time.Time) error

	// SaveSaleItemInTx appends a single product line to an existing sale.
	SaveSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error

	// UpdateSaleItemInTx rewrites a single product line in place.
	UpdateSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error

	// DeleteSaleItemInTx removes a single product line.
	DeleteSaleItemInTx(ctx context.Context, tx pgx.Tx, saleID string, saleItemID string) error

	// UpdateSaleTotalsInTx rewrites the derived discount and total columns
	// on the header after an item-level change.
	UpdateSaleTotalsInTx(ctx context.Context, tx pgx.Tx, saleID string, discountAmount, totalAmount, baseAmount decimal.Decimal, userID string, now time.Time) error
}

// SalePaymentStore defines persistence for sale payments.
type SalePaymentStore interface {
	// SavePaymentInTx persists a payment row.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SalePayment) error

	// FindPaymentByID retrieves a single payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error)

	// ListPaymentsBySale retrieves payments for a sale, oldest first.
	ListPaymentsBySale(ctx context.Context, saleID string) ([]domain.SalePayment, error)

	// DeletePaymentInTx removes a payment row.
	DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error

	// SumPaymentsInTx returns the sum of payment amounts for a sale.
	SumPaymentsInTx(ctx context.Context, tx pgx.Tx, saleID string) (decimal.Decimal, error)
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
	SalePaymentStore
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction capabilities
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}

// InventoryRepository answers stock questions. Remaining quantities are
// always derived live from purchase lines minus linked sale lines, both
// converted to base units.
type InventoryRepository interface {
	// ListProductBatches returns the purchase lots of a product with their
	// remaining base-unit quantities, oldest purchase first.
	ListProductBatches(ctx context.Context, productID string, includeEmpty bool) ([]domain.ProductBatch, error)

	// GetProductStock returns the total remaining base-unit quantity across
	// all lots of a product.
	GetProductStock(ctx context.Context, productID string) (decimal.Decimal, error)

	// RemainingByPurchaseItemForUpdate locks the given purchase lines and
	// returns their remaining base-unit quantities, excluding depletion rows
	// that belong to excludeSaleID (empty to exclude nothing). Called inside
	// the sale transaction so concurrent sales cannot both pass the check.
	RemainingByPurchaseItemForUpdate(ctx context.Context, tx pgx.Tx, purchaseItemIDs []string, excludeSaleID string) (map[string]decimal.Decimal, error)
}
