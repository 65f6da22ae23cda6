package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTotals aggregates money movement over a reporting window. All values
// are base-currency equivalents.
type PeriodTotals struct {
	SalesTotal    decimal.Decimal `json:"salesTotal"`
	PurchaseTotal decimal.Decimal `json:"purchaseTotal"`
	ExpenseTotal  decimal.Decimal `json:"expenseTotal"`
	SalaryTotal   decimal.Decimal `json:"salaryTotal"`
}

// DashboardSummary is the landing-page report.
type DashboardSummary struct {
	PeriodTotals
	AccountsTotal decimal.Decimal `json:"accountsTotal"` // sum of account current balances
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
}

// SalesPoint is one day's sales aggregate for charting.
type SalesPoint struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TopProduct ranks a product by revenue over a window.
type TopProduct struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	QuantitySold decimal.Decimal `json:"quantitySold"` // base units
	Revenue      decimal.Decimal `json:"revenue"`
}

// StockRow is one product's remaining inventory and its cost valuation.
type StockRow struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"` // base units
	CostValue decimal.Decimal `json:"costValue"`
}

// AccountBalanceLine is one currency's balance within an account.
type AccountBalanceLine struct {
	CurrencyID string          `json:"currencyID"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
}

// AccountBalanceRow is one account's per-currency balances together with its
// cached base-currency current balance.
type AccountBalanceRow struct {
	AccountID      string               `json:"accountID"`
	Name           string               `json:"name"`
	CurrentBalance decimal.Decimal      `json:"currentBalance"`
	Balances       []AccountBalanceLine `json:"balances"`
}
