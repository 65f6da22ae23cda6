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

type PgxUnitRepository struct {
	BaseRepository
}

// newPgxUnitRepository creates a new repository for measurement units.
func newPgxUnitRepository(pool *pgxpool.Pool) portsrepo.UnitRepositoryFacade {
	return &PgxUnitRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

const unitColumns = `unit_id, name, group_id, ratio, is_base, created_at, created_by, last_updated_at, last_updated_by`

func scanUnit(row pgx.Row) (models.Unit, error) {
	var m models.Unit
	err := row.Scan(
		&m.UnitID,
		&m.Name,
		&m.GroupID,
		&m.Ratio,
		&m.IsBase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveUnit inserts a new unit.
func (r *PgxUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		INSERT INTO units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UnitID, m.Name, m.GroupID, m.Ratio, m.IsBase,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: unit %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save unit %s: %w", m.UnitID, err)
	}
	return nil
}

// FindUnitByID retrieves a unit by its identifier.
func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1;`
	m, err := scanUnit(r.Pool.QueryRow(ctx, query, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unit by ID %s: %w", unitID, err)
	}
	d := mapping.ToDomainUnit(m)
	return &d, nil
}

// FindUnitsByIDs retrieves multiple units keyed by ID.
func (r *PgxUnitRepository) FindUnitsByIDs(ctx context.Context, unitIDs []string) (map[string]domain.Unit, error) {
	if len(unitIDs) == 0 {
		return map[string]domain.Unit{}, nil
	}
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, unitIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Unit)
	for rows.Next() {
		m, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		result[m.UnitID] = mapping.ToDomainUnit(m)
	}
	return result, rows.Err()
}

// ListUnits retrieves all units ordered by name.
func (r *PgxUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	modelUnits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Unit, error) {
		return scanUnit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan units: %w", err)
	}

	result := make([]domain.Unit, len(modelUnits))
	for i, m := range modelUnits {
		result[i] = mapping.ToDomainUnit(m)
	}
	return result, nil
}

// UpdateUnit updates an existing unit's details.
func (r *PgxUnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		UPDATE units
		SET name = $2, ratio = $3, last_updated_at = $4, last_updated_by = $5
		WHERE unit_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.UnitID, m.Name, m.Ratio, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update unit %s: %w", m.UnitID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUnit removes a unit.
func (r *PgxUnitRepository) DeleteUnit(ctx context.Context, unitID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM units WHERE unit_id = $1;`, unitID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: unit %s is referenced by other records", apperrors.ErrConflict, unitID)
		}
		return fmt.Errorf("failed to delete unit %s: %w", unitID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
