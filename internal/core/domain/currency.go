package domain

import "github.com/shopspring/decimal"

// Currency represents a supported currency.
// Rate is the number of base-currency units per 1 unit of this currency.
// At most one currency has IsBase set at any time.
type Currency struct {
	CurrencyID string          `json:"currencyID"`
	Name       string          `json:"name"`
	Symbol     string          `json:"symbol"`
	Rate       decimal.Decimal `json:"rate"`
	IsBase     bool            `json:"isBase"`
	AuditFields
}
