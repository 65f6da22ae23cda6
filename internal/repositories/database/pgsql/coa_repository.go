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

type PgxCOACategoryRepository struct {
	BaseRepository
}

// newPgxCOACategoryRepository creates a new repository for chart-of-accounts
// categories.
func newPgxCOACategoryRepository(pool *pgxpool.Pool) portsrepo.COACategoryRepositoryFacade {
	return &PgxCOACategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.COACategoryRepositoryFacade = (*PgxCOACategoryRepository)(nil)

const coaColumns = `category_id, name, parent_id, level, created_at, created_by, last_updated_at, last_updated_by`

func scanCOACategory(row pgx.Row) (models.COACategory, error) {
	var m models.COACategory
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.ParentID,
		&m.Level,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCOACategoryRepository) SaveCategory(ctx context.Context, category domain.COACategory) error {
	m := mapping.ToModelCOACategory(category)
	query := `
		INSERT INTO coa_categories (` + coaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Name, m.ParentID, m.Level,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: parent category does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its identifier.
func (r *PgxCOACategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.COACategory, error) {
	query := `SELECT ` + coaColumns + ` FROM coa_categories WHERE category_id = $1;`
	m, err := scanCOACategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCOACategory(m)
	return &d, nil
}

// ListCategories retrieves all categories ordered by level then name.
func (r *PgxCOACategoryRepository) ListCategories(ctx context.Context) ([]domain.COACategory, error) {
	query := `SELECT ` + coaColumns + ` FROM coa_categories ORDER BY level, name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.COACategory, error) {
		return scanCOACategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	result := make([]domain.COACategory, len(modelCategories))
	for i, m := range modelCategories {
		result[i] = mapping.ToDomainCOACategory(m)
	}
	return result, nil
}

// HasChildren reports whether any category references the given one as parent.
func (r *PgxCOACategoryRepository) HasChildren(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM coa_categories WHERE parent_id = $1);`, categoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category children: %w", err)
	}
	return exists, nil
}

// UpdateCategory updates an existing category's details.
func (r *PgxCOACategoryRepository) UpdateCategory(ctx context.Context, category domain.COACategory) error {
	m := mapping.ToModelCOACategory(category)
	query := `
		UPDATE coa_categories
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE category_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category.
func (r *PgxCOACategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM coa_categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %s has children or accounts attached", apperrors.ErrConflict, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
