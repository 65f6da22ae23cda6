package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// EmployeeRepositoryFacade defines persistence for employees.
type EmployeeRepositoryFacade interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error)
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error

	// DeactivateEmployee marks an employee inactive, keeping salary history.
	DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error
}

// SalaryRepositoryFacade defines persistence for salary payments and their
// deductions. Writes happen in a transaction because account-linked salaries
// also move the ledger.
type SalaryRepositoryFacade interface {
	// FindSalaryByID retrieves a salary with its deductions.
	FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error)

	// ListSalariesByEmployee retrieves an employee's salaries, newest first.
	ListSalariesByEmployee(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Salary, error)

	// FindSalaryByPeriod retrieves the salary for one employee and period.
	FindSalaryByPeriod(ctx context.Context, employeeID string, period string) (*domain.Salary, error)

	// SaveSalaryInTx persists a salary with its deductions.
	SaveSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error

	// UpdateSalaryInTx rewrites the salary and replaces the deductions.
	UpdateSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error

	// DeleteSalaryInTx removes the salary and its deductions.
	DeleteSalaryInTx(ctx context.Context, tx pgx.Tx, salaryID string) error
}
