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

type PgxExpenseTypeRepository struct {
	BaseRepository
}

// newPgxExpenseTypeRepository creates a new repository for expense types.
func newPgxExpenseTypeRepository(pool *pgxpool.Pool) portsrepo.ExpenseTypeRepositoryFacade {
	return &PgxExpenseTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseTypeRepositoryFacade = (*PgxExpenseTypeRepository)(nil)

const expenseTypeColumns = `expense_type_id, name, created_at, created_by, last_updated_at, last_updated_by`

// SaveExpenseType inserts a new expense type.
func (r *PgxExpenseTypeRepository) SaveExpenseType(ctx context.Context, expenseType domain.ExpenseType) error {
	m := mapping.ToModelExpenseType(expenseType)
	query := `
		INSERT INTO expense_types (` + expenseTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseTypeID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense type %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save expense type %s: %w", m.ExpenseTypeID, err)
	}
	return nil
}

// FindExpenseTypeByID retrieves an expense type by its identifier.
func (r *PgxExpenseTypeRepository) FindExpenseTypeByID(ctx context.Context, expenseTypeID string) (*domain.ExpenseType, error) {
	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types WHERE expense_type_id = $1;`
	var m models.ExpenseType
	err := r.Pool.QueryRow(ctx, query, expenseTypeID).Scan(
		&m.ExpenseTypeID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense type by ID %s: %w", expenseTypeID, err)
	}
	d := mapping.ToDomainExpenseType(m)
	return &d, nil
}

// ListExpenseTypes retrieves all expense types ordered by name.
func (r *PgxExpenseTypeRepository) ListExpenseTypes(ctx context.Context) ([]domain.ExpenseType, error) {
	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense types: %w", err)
	}
	defer rows.Close()

	var result []domain.ExpenseType
	for rows.Next() {
		var m models.ExpenseType
		if err := rows.Scan(
			&m.ExpenseTypeID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense type: %w", err)
		}
		result = append(result, mapping.ToDomainExpenseType(m))
	}
	return result, rows.Err()
}

// UpdateExpenseType updates an existing expense type's details.
func (r *PgxExpenseTypeRepository) UpdateExpenseType(ctx context.Context, expenseType domain.ExpenseType) error {
	m := mapping.ToModelExpenseType(expenseType)
	query := `
		UPDATE expense_types
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE expense_type_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ExpenseTypeID, m.Name, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense type %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update expense type %s: %w", m.ExpenseTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpenseType removes a type. Fails with ErrConflict when expenses
// reference it.
func (r *PgxExpenseTypeRepository) DeleteExpenseType(ctx context.Context, expenseTypeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expense_types WHERE expense_type_id = $1;`, expenseTypeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: expense type %s has expenses recorded", apperrors.ErrConflict, expenseTypeID)
		}
		return fmt.Errorf("failed to delete expense type %s: %w", expenseTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, expense_type_id, account_id, amount, currency_id, rate, expense_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ExpenseTypeID,
		&m.AccountID,
		&m.Amount,
		&m.CurrencyID,
		&m.Rate,
		&m.ExpenseDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpenseInTx persists an expense row.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.ExpenseID, m.ExpenseTypeID, m.AccountID, m.Amount, m.CurrencyID, m.Rate,
		m.ExpenseDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: expense type, account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// UpdateExpenseInTx rewrites an expense row.
func (r *PgxExpenseRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET expense_type_id = $2, account_id = $3, amount = $4, currency_id = $5, rate = $6,
		    expense_date = $7, notes = $8, last_updated_at = $9, last_updated_by = $10
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ExpenseID, m.ExpenseTypeID, m.AccountID, m.Amount, m.CurrencyID, m.Rate,
		m.ExpenseDate, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: expense type, account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpenseInTx removes an expense row.
func (r *PgxExpenseRepository) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindExpenseByID retrieves a single expense.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// ListExpenses retrieves expenses ordered by expense_date descending,
// optionally filtered to a date range.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, from *time.Time, to *time.Time, limit int, offset int) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR expense_date >= $1)
		  AND ($2::timestamptz IS NULL OR expense_date <= $2)
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expenses: %w", err)
	}

	result := make([]domain.Expense, len(modelExpenses))
	for i, m := range modelExpenses {
		result[i] = mapping.ToDomainExpense(m)
	}
	return result, nil
}
