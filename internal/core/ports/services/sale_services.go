package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// SaleSvcFacade defines sale recording operations.
type SaleSvcFacade interface {
	// CreateSale records a sale with its items, services and costs, checking
	// batch stock and redeeming the discount code in the same transaction.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)

	// GetSaleByID retrieves a sale with its children.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a cursor-paginated page of sales.
	ListSales(ctx context.Context, params dto.TokenListParams) ([]domain.Sale, string, error)

	// UpdateSale replaces the sale, re-running the stock checks with the
	// sale's own depletion excluded.
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error)

	// DeleteSale removes a sale, restoring batch stock implicitly and
	// reversing any account-linked payments.
	DeleteSale(ctx context.Context, saleID string, userID string) error

	// AddSaleItem appends a product line to an existing sale and recomputes
	// the sale's derived totals.
	AddSaleItem(ctx context.Context, saleID string, req dto.SaleItemRequest, userID string) (*domain.Sale, error)

	// UpdateSaleItem rewrites a single product line. The stock check gives
	// back what the old line consumed when the batch stays the same.
	UpdateSaleItem(ctx context.Context, saleID string, itemID string, req dto.SaleItemRequest, userID string) (*domain.Sale, error)

	// DeleteSaleItem removes a single product line and recomputes the
	// sale's derived totals.
	DeleteSaleItem(ctx context.Context, saleID string, itemID string, userID string) (*domain.Sale, error)

	// AddPayment records a payment against the sale, depositing into the
	// linked account when one is given.
	AddPayment(ctx context.Context, saleID string, req dto.CreatePaymentRequest, userID string) (*domain.SalePayment, error)

	// ListPayments retrieves a sale's payments.
	ListPayments(ctx context.Context, saleID string) ([]domain.SalePayment, error)

	// DeletePayment removes a payment, reversing its account effect.
	DeletePayment(ctx context.Context, saleID string, paymentID string, userID string) error
}

// InventorySvcFacade answers stock questions for the sale flow.
type InventorySvcFacade interface {
	// ListProductBatches returns a product's purchase lots with remaining
	// quantities rounded to 6 decimal places.
	ListProductBatches(ctx context.Context, productID string, includeEmpty bool) ([]domain.ProductBatch, error)

	// GetProductStock returns the total remaining stock of a product, in base
	// units or re-expressed in the given unit when unitID is non-empty.
	GetProductStock(ctx context.Context, productID string, unitID string) (decimal.Decimal, error)
}
