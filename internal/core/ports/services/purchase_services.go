package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// PurchaseSvcFacade defines purchase recording operations.
type PurchaseSvcFacade interface {
	// CreatePurchase records a purchase with its items and costs, assigning a
	// generated batch number.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error)

	// GetPurchaseByID retrieves a purchase with its children.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves a cursor-paginated page of purchases.
	ListPurchases(ctx context.Context, params dto.TokenListParams) ([]domain.Purchase, string, error)

	// UpdatePurchase replaces the purchase, rejecting item shrinkage below
	// quantities already sold from its batches.
	UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error)

	// DeletePurchase removes a purchase whose batches are entirely unsold,
	// reversing any account-linked payments.
	DeletePurchase(ctx context.Context, purchaseID string, userID string) error

	// AddPayment records a payment against the purchase, withdrawing from the
	// linked account when one is given.
	AddPayment(ctx context.Context, purchaseID string, req dto.CreatePaymentRequest, userID string) (*domain.PurchasePayment, error)

	// ListPayments retrieves a purchase's payments.
	ListPayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error)

	// DeletePayment removes a payment, reversing its account effect.
	DeletePayment(ctx context.Context, purchaseID string, paymentID string, userID string) error
}
