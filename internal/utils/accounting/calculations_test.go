package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

func pct() *domain.DiscountType {
	t := domain.DiscountPercent
	return &t
}

func fixed() *domain.DiscountType {
	t := domain.DiscountFixed
	return &t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeDiscount_Percent(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		value    string
		want     string
	}{
		{"ten percent", "100", "10", "10"},
		{"rounding", "99.99", "33", "33"},
		{"zero percent", "100", "0", "0"},
		{"full percent", "100", "100", "100"},
		{"clamped above 100", "100", "150", "100"},
		{"clamped below 0", "100", "-5", "0"},
		{"fractional result rounds to 2dp", "10", "33.333", "3.33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ComputeDiscount(dec(tt.subtotal), pct(), dec(tt.value))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeDiscount_Fixed(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		value    string
		want     string
	}{
		{"plain", "100", "30", "30"},
		{"capped at subtotal", "100", "250", "100"},
		{"negative value", "100", "-3", "0"},
		{"rounded", "100", "10.005", "10.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.ComputeDiscount(dec(tt.subtotal), fixed(), dec(tt.value))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeDiscount_Degenerate(t *testing.T) {
	assert.True(t, accounting.ComputeDiscount(decimal.Zero, pct(), dec("10")).IsZero())
	assert.True(t, accounting.ComputeDiscount(dec("-5"), pct(), dec("10")).IsZero())
	assert.True(t, accounting.ComputeDiscount(dec("100"), nil, dec("10")).IsZero())

	unknown := domain.DiscountType("BOGUS")
	assert.True(t, accounting.ComputeDiscount(dec("100"), &unknown, dec("10")).IsZero())
}

// Discount bounds property: percent discounts stay within [0, subtotal] and
// fixed discounts never exceed the subtotal.
func TestComputeDiscount_Bounds(t *testing.T) {
	subtotals := []string{"0.01", "1", "99.99", "1234.56", "100000"}
	values := []string{"-10", "0", "0.5", "50", "100", "101", "99999"}
	for _, s := range subtotals {
		for _, v := range values {
			subtotal := dec(s)
			value := dec(v)

			p := accounting.ComputeDiscount(subtotal, pct(), value)
			require.True(t, p.GreaterThanOrEqual(decimal.Zero))
			require.True(t, p.LessThanOrEqual(accounting.Round2(subtotal)))

			f := accounting.ComputeDiscount(subtotal, fixed(), value)
			require.True(t, f.GreaterThanOrEqual(decimal.Zero))
			require.True(t, f.LessThanOrEqual(accounting.Round2(subtotal)))
		}
	}
}

func TestLineTotal(t *testing.T) {
	// price=100, qty=1, no discount
	assert.True(t, dec("100").Equal(accounting.LineTotal(dec("100"), dec("1"), nil, decimal.Zero)))
	// price=10, qty=3, 10% line discount => 30 - 3 = 27
	assert.True(t, dec("27").Equal(accounting.LineTotal(dec("10"), dec("3"), pct(), dec("10"))))
	// fixed discount larger than line => 0
	assert.True(t, accounting.LineTotal(dec("10"), dec("1"), fixed(), dec("50")).IsZero())
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "10.01", accounting.Round2(dec("10.005")).String())
	assert.Equal(t, "-10.01", accounting.Round2(dec("-10.005")).String())
	assert.Equal(t, "10", accounting.Round2(dec("10.004")).String())
}

func TestUnitConversion(t *testing.T) {
	// 2 dozen at ratio 12 = 24 base units
	assert.True(t, dec("24").Equal(accounting.ToBaseQuantity(dec("2"), dec("12"))))
	// zero ratio falls back to identity
	assert.True(t, dec("7").Equal(accounting.ToBaseQuantity(dec("7"), decimal.Zero)))
	// round trip
	base := accounting.ToBaseQuantity(dec("3.5"), dec("12"))
	assert.True(t, dec("3.5").Equal(accounting.FromBaseQuantity(base, dec("12"))))
}
