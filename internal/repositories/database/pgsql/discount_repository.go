package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/models"
	"github.com/hesabix/hesabix_backend/internal/utils/mapping"
)

type PgxDiscountCodeRepository struct {
	BaseRepository
}

// newPgxDiscountCodeRepository creates a new repository for discount codes.
func newPgxDiscountCodeRepository(pool *pgxpool.Pool) portsrepo.DiscountCodeRepositoryFacade {
	return &PgxDiscountCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DiscountCodeRepositoryFacade = (*PgxDiscountCodeRepository)(nil)

const discountCodeColumns = `code_id, code, type, value, min_purchase, valid_from, valid_to, max_uses, use_count, created_at, created_by, last_updated_at, last_updated_by`

func scanDiscountCode(row pgx.Row) (models.DiscountCode, error) {
	var m models.DiscountCode
	err := row.Scan(
		&m.CodeID,
		&m.Code,
		&m.Type,
		&m.Value,
		&m.MinPurchase,
		&m.ValidFrom,
		&m.ValidTo,
		&m.MaxUses,
		&m.UseCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCode persists a new discount code.
func (r *PgxDiscountCodeRepository) SaveCode(ctx context.Context, code domain.DiscountCode) error {
	m := mapping.ToModelDiscountCode(code)
	query := `
		INSERT INTO discount_codes (` + discountCodeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CodeID, m.Code, m.Type, m.Value, m.MinPurchase,
		m.ValidFrom, m.ValidTo, m.MaxUses, m.UseCount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save discount code %s: %w", m.CodeID, err)
	}
	return nil
}

// FindCodeByID retrieves a discount code by its identifier.
func (r *PgxDiscountCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error) {
	query := `SELECT ` + discountCodeColumns + ` FROM discount_codes WHERE code_id = $1;`
	m, err := scanDiscountCode(r.Pool.QueryRow(ctx, query, codeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find discount code by ID %s: %w", codeID, err)
	}
	d := mapping.ToDomainDiscountCode(m)
	return &d, nil
}

// FindByCode retrieves a discount code by its normalized code string.
func (r *PgxDiscountCodeRepository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	query := `SELECT ` + discountCodeColumns + ` FROM discount_codes WHERE code = $1;`
	m, err := scanDiscountCode(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find discount code %s: %w", code, err)
	}
	d := mapping.ToDomainDiscountCode(m)
	return &d, nil
}

// ListCodes retrieves a paginated list of discount codes.
func (r *PgxDiscountCodeRepository) ListCodes(ctx context.Context, limit int, offset int) ([]domain.DiscountCode, error) {
	query := `SELECT ` + discountCodeColumns + ` FROM discount_codes ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount codes: %w", err)
	}
	defer rows.Close()

	modelCodes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DiscountCode, error) {
		return scanDiscountCode(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan discount codes: %w", err)
	}

	result := make([]domain.DiscountCode, len(modelCodes))
	for i, m := range modelCodes {
		result[i] = mapping.ToDomainDiscountCode(m)
	}
	return result, nil
}

// UpdateCode updates an existing discount code's details. use_count is never
// written here; only redemption bumps it.
func (r *PgxDiscountCodeRepository) UpdateCode(ctx context.Context, code domain.DiscountCode) error {
	m := mapping.ToModelDiscountCode(code)
	query := `
		UPDATE discount_codes
		SET code = $2, type = $3, value = $4, min_purchase = $5, valid_from = $6, valid_to = $7,
		    max_uses = $8, last_updated_at = $9, last_updated_by = $10
		WHERE code_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CodeID, m.Code, m.Type, m.Value, m.MinPurchase,
		m.ValidFrom, m.ValidTo, m.MaxUses, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to update discount code %s: %w", m.CodeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCode removes a discount code.
func (r *PgxDiscountCodeRepository) DeleteCode(ctx context.Context, codeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM discount_codes WHERE code_id = $1;`, codeID)
	if err != nil {
		return fmt.Errorf("failed to delete discount code %s: %w", codeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementUseCountInTx bumps use_count by one inside the sale transaction
// that redeems the code.
func (r *PgxDiscountCodeRepository) IncrementUseCountInTx(ctx context.Context, tx pgx.Tx, codeID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE discount_codes SET use_count = use_count + 1 WHERE code_id = $1;`, codeID)
	if err != nil {
		return fmt.Errorf("failed to increment use count for code %s: %w", codeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
