package models

import "github.com/shopspring/decimal"

// Currency is the currencies table row.
type Currency struct {
	CurrencyID string          `db:"currency_id"`
	Name       string          `db:"name"`
	Symbol     string          `db:"symbol"`
	Rate       decimal.Decimal `db:"rate"`
	IsBase     bool            `db:"is_base"`
	AuditFields
}

// Unit is the units table row.
type Unit struct {
	UnitID  string          `db:"unit_id"`
	Name    string          `db:"name"`
	GroupID *string         `db:"group_id"`
	Ratio   decimal.Decimal `db:"ratio"`
	IsBase  bool            `db:"is_base"`
	AuditFields
}
