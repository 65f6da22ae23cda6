package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/models"
	"github.com/hesabix/hesabix_backend/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_id, name, symbol, rate, is_base, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyID,
		&m.Name,
		&m.Symbol,
		&m.Rate,
		&m.IsBase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyID, m.Name, m.Symbol, m.Rate, m.IsBase,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save currency %s: %w", m.CurrencyID, err)
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by ID %s: %w", currencyID, err)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// FindBaseCurrency retrieves the currency flagged as base, if any.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base LIMIT 1;`
	m, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find base currency: %w", err)
	}
	d := mapping.ToDomainCurrency(m)
	return &d, nil
}

// ListCurrencies retrieves all currencies ordered by name.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	result := make([]domain.Currency, len(modelCurrencies))
	for i, m := range modelCurrencies {
		result[i] = mapping.ToDomainCurrency(m)
	}
	return result, nil
}

// UpdateCurrency updates an existing currency's details.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		UPDATE currencies
		SET name = $2, symbol = $3, rate = $4, last_updated_at = $5, last_updated_by = $6
		WHERE currency_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CurrencyID, m.Name, m.Symbol, m.Rate, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency %s: %w", m.CurrencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCurrency removes a currency.
func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currencies WHERE currency_id = $1;`, currencyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: currency %s is referenced by other records", apperrors.ErrConflict, currencyID)
		}
		return fmt.Errorf("failed to delete currency %s: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearBaseFlagInTx unsets is_base on every currency.
func (r *PgxCurrencyRepository) ClearBaseFlagInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `UPDATE currencies SET is_base = FALSE WHERE is_base;`); err != nil {
		return fmt.Errorf("failed to clear base currency flag: %w", err)
	}
	return nil
}

// SetBaseFlagInTx makes the given currency the base. Base rate is pinned to 1.
func (r *PgxCurrencyRepository) SetBaseFlagInTx(ctx context.Context, tx pgx.Tx, currencyID string, userID string) error {
	query := `
		UPDATE currencies
		SET is_base = TRUE, rate = 1, last_updated_at = $2, last_updated_by = $3
		WHERE currency_id = $1;
	`
	tag, err := tx.Exec(ctx, query, currencyID, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to set base currency %s: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
