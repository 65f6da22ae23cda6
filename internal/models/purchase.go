package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the purchases table row.
type Purchase struct {
	PurchaseID   string          `db:"purchase_id"`
	SupplierID   string          `db:"supplier_id"`
	BatchNumber  string          `db:"batch_number"`
	PurchaseDate time.Time       `db:"purchase_date"`
	CurrencyID   string          `db:"currency_id"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	PaidAmount   decimal.Decimal `db:"paid_amount"`
	Notes        string          `db:"notes"`
	AuditFields
}

// PurchaseItem is the purchase_items table row; one row is one inventory batch.
type PurchaseItem struct {
	PurchaseItemID string           `db:"purchase_item_id"`
	PurchaseID     string           `db:"purchase_id"`
	ProductID      string           `db:"product_id"`
	UnitID         string           `db:"unit_id"`
	PerPrice       decimal.Decimal  `db:"per_price"`
	Amount         decimal.Decimal  `db:"amount"`
	Total          decimal.Decimal  `db:"total"`
	CostPrice      *decimal.Decimal `db:"cost_price"`
	WholesalePrice *decimal.Decimal `db:"wholesale_price"`
	RetailPrice    *decimal.Decimal `db:"retail_price"`
	ExpiryDate     *time.Time       `db:"expiry_date"`
}

// PurchaseAdditionalCost is the purchase_additional_costs table row.
type PurchaseAdditionalCost struct {
	CostID     string          `db:"cost_id"`
	PurchaseID string          `db:"purchase_id"`
	Title      string          `db:"title"`
	Amount     decimal.Decimal `db:"amount"`
}

// PurchasePayment is the purchase_payments table row.
type PurchasePayment struct {
	PaymentID   string          `db:"payment_id"`
	PurchaseID  string          `db:"purchase_id"`
	AccountID   *string         `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	CurrencyID  string          `db:"currency_id"`
	Rate        decimal.Decimal `db:"rate"`
	BaseAmount  decimal.Decimal `db:"base_amount"`
	PaymentDate time.Time       `db:"payment_date"`
	Notes       string          `db:"notes"`
	AuditFields
}
