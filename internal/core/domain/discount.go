package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountCode is a redeemable code. Code is stored normalized
// (upper-cased, trimmed). Validity bounds are inclusive dates.
type DiscountCode struct {
	CodeID      string          `json:"codeID"`
	Code        string          `json:"code"`
	Type        DiscountType    `json:"type"`
	Value       decimal.Decimal `json:"value"`
	MinPurchase decimal.Decimal `json:"minPurchase"`
	ValidFrom   *time.Time      `json:"validFrom"`
	ValidTo     *time.Time      `json:"validTo"`
	MaxUses     *int            `json:"maxUses"`
	UseCount    int             `json:"useCount"`
	AuditFields
}
