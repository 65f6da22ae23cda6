package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// DiscountCodeRepositoryFacade defines persistence for discount codes.
type DiscountCodeRepositoryFacade interface {
	// FindCodeByID retrieves a discount code by its identifier.
	FindCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error)

	// FindByCode retrieves a discount code by its normalized code string.
	FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error)

	// ListCodes retrieves a paginated list of discount codes.
	ListCodes(ctx context.Context, limit int, offset int) ([]domain.DiscountCode, error)

	// SaveCode persists a new discount code.
	SaveCode(ctx context.Context, code domain.DiscountCode) error

	// UpdateCode updates an existing discount code's details.
	UpdateCode(ctx context.Context, code domain.DiscountCode) error

	// DeleteCode removes a discount code.
	DeleteCode(ctx context.Context, codeID string) error

	// IncrementUseCountInTx bumps use_count by one inside the sale
	// transaction that redeems the code.
	IncrementUseCountInTx(ctx context.Context, tx pgx.Tx, codeID string) error
}
