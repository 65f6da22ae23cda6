package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType is the expense_types table row.
type ExpenseType struct {
	ExpenseTypeID string `db:"expense_type_id"`
	Name          string `db:"name"`
	AuditFields
}

// Expense is the expenses table row.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	ExpenseTypeID string          `db:"expense_type_id"`
	AccountID     *string         `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyID    string          `db:"currency_id"`
	Rate          decimal.Decimal `db:"rate"`
	ExpenseDate   time.Time       `db:"expense_date"`
	Notes         string          `db:"notes"`
	AuditFields
}
