package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType is a user-defined expense category.
type ExpenseType struct {
	ExpenseTypeID string `json:"expenseTypeID"`
	Name          string `json:"name"`
	AuditFields
}

// Expense is a spend record. When AccountID is set the expense debits that
// account through the same ledger path as withdrawals.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	ExpenseTypeID string          `json:"expenseTypeID"`
	AccountID     *string         `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyID    string          `json:"currencyID"`
	Rate          decimal.Decimal `json:"rate"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	Notes         string          `json:"notes"`
	AuditFields
}
