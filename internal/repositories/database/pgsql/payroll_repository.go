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

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, name, position, base_salary, hired_at, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Position,
		&m.BaseSalary,
		&m.HiredAt,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEmployee inserts a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID, m.Name, m.Position, m.BaseSalary, m.HiredAt, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee %s: %w", m.EmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves an employee by identifier.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	d := mapping.ToDomainEmployee(m)
	return &d, nil
}

// ListEmployees retrieves employees ordered by name, optionally including
// inactive ones.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE ($1 OR is_active)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, mapping.ToDomainEmployee(m))
	}
	return result, rows.Err()
}

// UpdateEmployee updates an existing employee's details.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $2, position = $3, base_salary = $4, hired_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE employee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EmployeeID, m.Name, m.Position, m.BaseSalary, m.HiredAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", m.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateEmployee marks an employee inactive, keeping salary history.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	query := `
		UPDATE employees
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE employee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, employeeID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxSalaryRepository struct {
	BaseRepository
}

// newPgxSalaryRepository creates a new repository for salary payments.
func newPgxSalaryRepository(pool *pgxpool.Pool) portsrepo.SalaryRepositoryFacade {
	return &PgxSalaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalaryRepositoryFacade = (*PgxSalaryRepository)(nil)

const salaryColumns = `salary_id, employee_id, period, gross_amount, net_amount, account_id, currency_id, rate, paid_at, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanSalary(row pgx.Row) (models.Salary, error) {
	var m models.Salary
	err := row.Scan(
		&m.SalaryID,
		&m.EmployeeID,
		&m.Period,
		&m.GrossAmount,
		&m.NetAmount,
		&m.AccountID,
		&m.CurrencyID,
		&m.Rate,
		&m.PaidAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSalaryRepository) insertDeductions(ctx context.Context, tx pgx.Tx, salary domain.Salary) error {
	for _, d := range salary.Deductions {
		_, err := tx.Exec(ctx, `
			INSERT INTO deductions (deduction_id, salary_id, title, amount)
			VALUES ($1, $2, $3, $4);
		`, d.DeductionID, salary.SalaryID, d.Title, d.Amount)
		if err != nil {
			return fmt.Errorf("failed to save deduction %s: %w", d.DeductionID, err)
		}
	}
	return nil
}

// SaveSalaryInTx persists a salary with its deductions.
func (r *PgxSalaryRepository) SaveSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error {
	m := mapping.ToModelSalary(salary)
	query := `
		INSERT INTO salaries (` + salaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.SalaryID, m.EmployeeID, m.Period, m.GrossAmount, m.NetAmount,
		m.AccountID, m.CurrencyID, m.Rate, m.PaidAt, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: salary for period %s already recorded", apperrors.ErrDuplicate, m.Period)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: employee, account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save salary %s: %w", m.SalaryID, err)
	}
	return r.insertDeductions(ctx, tx, salary)
}

// UpdateSalaryInTx rewrites the salary and replaces the deductions.
func (r *PgxSalaryRepository) UpdateSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error {
	m := mapping.ToModelSalary(salary)
	query := `
		UPDATE salaries
		SET period = $2, gross_amount = $3, net_amount = $4, account_id = $5, currency_id = $6,
		    rate = $7, paid_at = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE salary_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.SalaryID, m.Period, m.GrossAmount, m.NetAmount, m.AccountID, m.CurrencyID,
		m.Rate, m.PaidAt, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: salary for period %s already recorded", apperrors.ErrDuplicate, m.Period)
		}
		return fmt.Errorf("failed to update salary %s: %w", m.SalaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM deductions WHERE salary_id = $1;`, m.SalaryID); err != nil {
		return fmt.Errorf("failed to clear deductions for %s: %w", m.SalaryID, err)
	}
	return r.insertDeductions(ctx, tx, salary)
}

// DeleteSalaryInTx removes the salary and its deductions.
func (r *PgxSalaryRepository) DeleteSalaryInTx(ctx context.Context, tx pgx.Tx, salaryID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM deductions WHERE salary_id = $1;`, salaryID); err != nil {
		return fmt.Errorf("failed to delete deductions for %s: %w", salaryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM salaries WHERE salary_id = $1;`, salaryID)
	if err != nil {
		return fmt.Errorf("failed to delete salary %s: %w", salaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSalaryRepository) loadDeductions(ctx context.Context, salaryID string) ([]domain.Deduction, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT deduction_id, salary_id, title, amount FROM deductions WHERE salary_id = $1 ORDER BY deduction_id;`,
		salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deductions: %w", err)
	}
	defer rows.Close()

	var result []domain.Deduction
	for rows.Next() {
		var d domain.Deduction
		if err := rows.Scan(&d.DeductionID, &d.SalaryID, &d.Title, &d.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// FindSalaryByID retrieves a salary with its deductions.
func (r *PgxSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE salary_id = $1;`
	m, err := scanSalary(r.Pool.QueryRow(ctx, query, salaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary by ID %s: %w", salaryID, err)
	}
	salary := mapping.ToDomainSalary(m)
	salary.Deductions, err = r.loadDeductions(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// FindSalaryByPeriod retrieves the salary for one employee and period.
func (r *PgxSalaryRepository) FindSalaryByPeriod(ctx context.Context, employeeID string, period string) (*domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE employee_id = $1 AND period = $2;`
	m, err := scanSalary(r.Pool.QueryRow(ctx, query, employeeID, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find salary for employee %s period %s: %w", employeeID, period, err)
	}
	salary := mapping.ToDomainSalary(m)
	salary.Deductions, err = r.loadDeductions(ctx, salary.SalaryID)
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// ListSalariesByEmployee retrieves an employee's salaries, newest first.
// Deductions are not loaded for list views.
func (r *PgxSalaryRepository) ListSalariesByEmployee(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Salary, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE employee_id = $1
		ORDER BY period DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	var result []domain.Salary
	for rows.Next() {
		m, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		result = append(result, mapping.ToDomainSalary(m))
	}
	return result, rows.Err()
}
