package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// ExpenseTypeRepositoryFacade defines persistence for expense types.
type ExpenseTypeRepositoryFacade interface {
	FindExpenseTypeByID(ctx context.Context, expenseTypeID string) (*domain.ExpenseType, error)
	ListExpenseTypes(ctx context.Context) ([]domain.ExpenseType, error)
	SaveExpenseType(ctx context.Context, expenseType domain.ExpenseType) error
	UpdateExpenseType(ctx context.Context, expenseType domain.ExpenseType) error

	// DeleteExpenseType removes a type. Fails with ErrConflict when expenses
	// reference it.
	DeleteExpenseType(ctx context.Context, expenseTypeID string) error
}

// ExpenseRepositoryFacade defines persistence for expenses. Writes happen in
// a transaction because account-linked expenses also move the ledger.
type ExpenseRepositoryFacade interface {
	// FindExpenseByID retrieves a single expense.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses ordered by expense_date descending,
	// optionally filtered to a date range.
	ListExpenses(ctx context.Context, from *time.Time, to *time.Time, limit int, offset int) ([]domain.Expense, error)

	// SaveExpenseInTx persists an expense row.
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// UpdateExpenseInTx rewrites an expense row.
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error

	// DeleteExpenseInTx removes an expense row.
	DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error
}
