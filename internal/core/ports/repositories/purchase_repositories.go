package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// PurchaseReader defines read operations for purchase data
type PurchaseReader interface {
	// FindPurchaseByID retrieves a purchase with its items and additional costs.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves purchases ordered by (purchase_date, created_at)
	// descending, starting after the given cursor when non-zero.
	ListPurchases(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Purchase, error)

	// FindPurchaseItemByID retrieves a single purchase line.
	FindPurchaseItemByID(ctx context.Context, purchaseItemID string) (*domain.PurchaseItem, error)
}

// PurchaseWriter defines in-transaction write operations for purchase data
type PurchaseWriter interface {
	// SavePurchaseInTx persists a purchase header with its items and costs.
	SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error

	// UpdatePurchaseInTx rewrites the header and replaces items and costs.
	UpdatePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error

	// DeletePurchaseInTx removes the purchase and its children.
	DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error

	// UpdatePaidAmountInTx rewrites the cached paid_amount on the header.
	UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount decimal.Decimal, userID string, now time.Time) error

	// SoldQuantityByPurchaseItem returns, per purchase item, the base-unit
	// quantity already depleted by sale lines. Used to reject edits and
	// deletes that would strand sold stock.
	SoldQuantityByPurchaseItem(ctx context.Context, tx pgx.Tx, purchaseID string) (map[string]decimal.Decimal, error)
}

// PurchasePaymentStore defines persistence for purchase payments.
type PurchasePaymentStore interface {
	// SavePaymentInTx persists a payment row.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PurchasePayment) error

	// FindPaymentByID retrieves a single payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error)

	// ListPaymentsByPurchase retrieves payments for a purchase, oldest first.
	ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error)

	// DeletePaymentInTx removes a payment row.
	DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error

	// SumPaymentsInTx returns the sum of payment amounts for a purchase.
	SumPaymentsInTx(ctx context.Context, tx pgx.Tx, purchaseID string) (decimal.Decimal, error)
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
	PurchasePaymentStore
}

// PurchaseRepositoryWithTx extends PurchaseRepositoryFacade with transaction capabilities
type PurchaseRepositoryWithTx interface {
	PurchaseRepositoryFacade
	TransactionManager
}
