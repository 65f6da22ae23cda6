package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Account represents a money-holding account.
//
// CurrentBalance is a cache, never written directly by callers: it is
// recomputed as initial_balance plus the base-equivalent sum of the
// per-currency balances after every movement that touches the account.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	CurrencyID     string          `json:"currencyID"` // preferred display currency
	COACategoryID  *string         `json:"coaCategoryID"`
	AccountCode    *string         `json:"accountCode"` // unique when set
	AccountType    AccountType     `json:"accountType"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// AccountCurrencyBalance is the authoritative per-currency ledger row for an
// account. Balance is held in the row's currency, not converted to base.
type AccountCurrencyBalance struct {
	AccountID  string          `json:"accountID"`
	CurrencyID string          `json:"currencyID"`
	Balance    decimal.Decimal `json:"balance"`
}

// AccountTransactionType distinguishes deposits from withdrawals.
type AccountTransactionType string

const (
	Deposit  AccountTransactionType = "DEPOSIT"
	Withdraw AccountTransactionType = "WITHDRAW"
)

// AccountTransaction is an append-only audit row for a deposit or withdrawal,
// including movements originating from sale/purchase payments, expenses and
// salary payments. Rows are never mutated; corrections are compensating
// entries.
type AccountTransaction struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Type            AccountTransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrencyID      string                 `json:"currencyID"`
	Rate            decimal.Decimal        `json:"rate"`
	Total           decimal.Decimal        `json:"total"` // amount * rate, base equivalent
	TransactionDate time.Time              `json:"transactionDate"`
	IsFull          bool                   `json:"isFull"`
	Notes           string                 `json:"notes"`
	AuditFields
}
