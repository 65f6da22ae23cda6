package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the sales table row.
type Sale struct {
	SaleID         string          `db:"sale_id"`
	CustomerID     string          `db:"customer_id"`
	SaleDate       time.Time       `db:"sale_date"`
	CurrencyID     string          `db:"currency_id"`
	ExchangeRate   decimal.Decimal `db:"exchange_rate"`
	DiscountType   *string         `db:"discount_type"`
	DiscountValue  decimal.Decimal `db:"discount_value"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	DiscountCode   *string         `db:"discount_code"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	BaseAmount     decimal.Decimal `db:"base_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	Notes          string          `db:"notes"`
	AuditFields
}

// SaleItem is the sale_items table row.
type SaleItem struct {
	SaleItemID     string          `db:"sale_item_id"`
	SaleID         string          `db:"sale_id"`
	ProductID      string          `db:"product_id"`
	UnitID         string          `db:"unit_id"`
	PurchaseItemID *string         `db:"purchase_item_id"`
	PerPrice       decimal.Decimal `db:"per_price"`
	Amount         decimal.Decimal `db:"amount"`
	DiscountType   *string         `db:"discount_type"`
	DiscountValue  decimal.Decimal `db:"discount_value"`
	Total          decimal.Decimal `db:"total"`
}

// SaleServiceItem is the sale_service_items table row.
type SaleServiceItem struct {
	ServiceItemID string          `db:"service_item_id"`
	SaleID        string          `db:"sale_id"`
	Title         string          `db:"title"`
	PerPrice      decimal.Decimal `db:"per_price"`
	Amount        decimal.Decimal `db:"amount"`
	DiscountType  *string         `db:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	Total         decimal.Decimal `db:"total"`
}

// SaleAdditionalCost is the sale_additional_costs table row.
type SaleAdditionalCost struct {
	CostID string          `db:"cost_id"`
	SaleID string          `db:"sale_id"`
	Title  string          `db:"title"`
	Amount decimal.Decimal `db:"amount"`
}

// SalePayment is the sale_payments table row.
type SalePayment struct {
	PaymentID   string          `db:"payment_id"`
	SaleID      string          `db:"sale_id"`
	AccountID   *string         `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	CurrencyID  string          `db:"currency_id"`
	Rate        decimal.Decimal `db:"rate"`
	BaseAmount  decimal.Decimal `db:"base_amount"`
	PaymentDate time.Time       `db:"payment_date"`
	Notes       string          `db:"notes"`
	AuditFields
}
