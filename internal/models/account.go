package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	CurrencyID     string          `db:"currency_id"`
	COACategoryID  *string         `db:"coa_category_id"`
	AccountCode    *string         `db:"account_code"`
	AccountType    AccountType     `db:"account_type"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// AccountCurrencyBalance is the account_currency_balances table row,
// unique on (account_id, currency_id).
type AccountCurrencyBalance struct {
	AccountID  string          `db:"account_id"`
	CurrencyID string          `db:"currency_id"`
	Balance    decimal.Decimal `db:"balance"`
}

// AccountTransaction is the append-only account_transactions table row.
type AccountTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	Type            string          `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyID      string          `db:"currency_id"`
	Rate            decimal.Decimal `db:"rate"`
	Total           decimal.Decimal `db:"total"`
	TransactionDate time.Time       `db:"transaction_date"`
	IsFull          bool            `db:"is_full"`
	Notes           string          `db:"notes"`
	AuditFields
}
