package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// QuantityScale is the number of decimal places reported for derived stock
// quantities.
const QuantityScale = 6

var (
	hundred = decimal.NewFromInt(100)

	// StockEpsilon absorbs floating point noise accumulated by unit ratio
	// conversion when comparing requested quantity against batch remainder.
	StockEpsilon = decimal.New(1, -9) // 1e-9
)

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeDiscount computes the discount amount for a subtotal.
//
// A nil or unrecognized kind yields zero. Percent values are clamped to
// [0,100]; fixed discounts never exceed the subtotal. The result is rounded
// to 2 decimal places.
func ComputeDiscount(subtotal decimal.Decimal, kind *domain.DiscountType, value decimal.Decimal) decimal.Decimal {
	if subtotal.LessThanOrEqual(decimal.Zero) || kind == nil {
		return decimal.Zero
	}
	switch *kind {
	case domain.DiscountPercent:
		pct := value
		if pct.LessThan(decimal.Zero) {
			pct = decimal.Zero
		} else if pct.GreaterThan(hundred) {
			pct = hundred
		}
		return Round2(subtotal.Mul(pct).Div(hundred))
	case domain.DiscountFixed:
		if value.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		if value.GreaterThan(subtotal) {
			return Round2(subtotal)
		}
		return Round2(value)
	default:
		return decimal.Zero
	}
}

// LineTotal computes a sale/service line total:
// round2(perPrice×amount − discount(perPrice×amount, kind, value)).
func LineTotal(perPrice, amount decimal.Decimal, kind *domain.DiscountType, value decimal.Decimal) decimal.Decimal {
	gross := perPrice.Mul(amount)
	return Round2(gross.Sub(ComputeDiscount(gross, kind, value)))
}

// ToBaseQuantity converts a quantity in an arbitrary unit to base units.
// A missing ratio defaults to 1.
func ToBaseQuantity(amount decimal.Decimal, ratio decimal.Decimal) decimal.Decimal {
	if ratio.IsZero() {
		return amount
	}
	return amount.Mul(ratio)
}

// FromBaseQuantity re-expresses a base quantity in the target unit.
func FromBaseQuantity(baseAmount decimal.Decimal, ratio decimal.Decimal) decimal.Decimal {
	if ratio.IsZero() {
		return baseAmount
	}
	return baseAmount.Div(ratio)
}
