package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// DiscountSvcFacade defines discount code operations.
type DiscountSvcFacade interface {
	CreateCode(ctx context.Context, req dto.CreateDiscountCodeRequest, userID string) (*domain.DiscountCode, error)
	GetCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error)
	ListCodes(ctx context.Context, params dto.ListParams) ([]domain.DiscountCode, error)
	UpdateCode(ctx context.Context, codeID string, req dto.UpdateDiscountCodeRequest, userID string) (*domain.DiscountCode, error)
	DeleteCode(ctx context.Context, codeID string) error

	// ValidateCode checks a code against a subtotal without redeeming it,
	// returning the discount it would grant.
	ValidateCode(ctx context.Context, code string, subtotal decimal.Decimal) (*dto.ValidateDiscountResponse, error)

	// RedeemCodeInTx validates the code inside the sale transaction and bumps
	// its use count, returning the code row for the sale to apply.
	RedeemCodeInTx(ctx context.Context, tx pgx.Tx, code string, subtotal decimal.Decimal) (*domain.DiscountCode, error)
}
