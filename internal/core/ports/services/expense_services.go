package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// ExpenseSvcFacade defines expense tracking operations.
type ExpenseSvcFacade interface {
	CreateExpenseType(ctx context.Context, req dto.CreateExpenseTypeRequest, userID string) (*domain.ExpenseType, error)
	ListExpenseTypes(ctx context.Context) ([]domain.ExpenseType, error)
	UpdateExpenseType(ctx context.Context, expenseTypeID string, req dto.UpdateExpenseTypeRequest, userID string) (*domain.ExpenseType, error)
	DeleteExpenseType(ctx context.Context, expenseTypeID string) error

	// CreateExpense records an expense, withdrawing from the linked account
	// when one is given.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)

	// UpdateExpense replaces the expense, reversing the old ledger effect and
	// applying the new one in the same transaction.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)

	// DeleteExpense removes the expense, reversing its ledger effect.
	DeleteExpense(ctx context.Context, expenseID string, userID string) error
}
