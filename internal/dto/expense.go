package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateExpenseTypeRequest defines the data needed to create an expense type.
type CreateExpenseTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateExpenseTypeRequest defines the data allowed for updating a type.
type UpdateExpenseTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// ExpenseTypeResponse defines the data returned for an expense type.
type ExpenseTypeResponse struct {
	ExpenseTypeID string `json:"expenseTypeID"`
	Name          string `json:"name"`
}

// CreateExpenseRequest defines the data needed to record an expense. When
// AccountID is set the amount is withdrawn from that account.
type CreateExpenseRequest struct {
	ExpenseTypeID string           `json:"expenseTypeID" binding:"required"`
	AccountID     *string          `json:"accountID"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyID    string           `json:"currencyID" binding:"required"`
	Rate          *decimal.Decimal `json:"rate"`
	ExpenseDate   string           `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Notes         string           `json:"notes"`
}

// UpdateExpenseRequest replaces an expense's details. The ledger effect of
// the old row is reversed and the new one applied.
type UpdateExpenseRequest struct {
	ExpenseTypeID string           `json:"expenseTypeID" binding:"required"`
	AccountID     *string          `json:"accountID"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyID    string           `json:"currencyID" binding:"required"`
	Rate          *decimal.Decimal `json:"rate"`
	ExpenseDate   string           `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Notes         string           `json:"notes"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	ExpenseTypeID string          `json:"expenseTypeID"`
	AccountID     *string         `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyID    string          `json:"currencyID"`
	Rate          decimal.Decimal `json:"rate"`
	ExpenseDate   string          `json:"expenseDate"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	ListParams
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToExpenseTypeResponse converts a domain.ExpenseType to DTO
func ToExpenseTypeResponse(t *domain.ExpenseType) ExpenseTypeResponse {
	return ExpenseTypeResponse{ExpenseTypeID: t.ExpenseTypeID, Name: t.Name}
}

// ToListExpenseTypeResponse converts types to DTOs
func ToListExpenseTypeResponse(types []domain.ExpenseType) []ExpenseTypeResponse {
	res := make([]ExpenseTypeResponse, len(types))
	for i := range types {
		res[i] = ToExpenseTypeResponse(&types[i])
	}
	return res
}

// ToExpenseResponse converts a domain.Expense to DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		ExpenseTypeID: e.ExpenseTypeID,
		AccountID:     e.AccountID,
		Amount:        e.Amount,
		CurrencyID:    e.CurrencyID,
		Rate:          e.Rate,
		ExpenseDate:   e.ExpenseDate.Format("2006-01-02"),
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

// ToListExpenseResponse converts expenses to DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
