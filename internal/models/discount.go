package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountCode is the discount_codes table row; code is stored upper-trimmed
// and unique.
type DiscountCode struct {
	CodeID      string          `db:"code_id"`
	Code        string          `db:"code"`
	Type        string          `db:"type"`
	Value       decimal.Decimal `db:"value"`
	MinPurchase decimal.Decimal `db:"min_purchase"`
	ValidFrom   *time.Time      `db:"valid_from"`
	ValidTo     *time.Time      `db:"valid_to"`
	MaxUses     *int            `db:"max_uses"`
	UseCount    int             `db:"use_count"`
	AuditFields
}
