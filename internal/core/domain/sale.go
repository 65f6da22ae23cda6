package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is the kind of a discount: percentage of the subtotal or a
// fixed amount capped at the subtotal.
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// Sale aggregates product line items, service line items, additional costs,
// payments and an order-level discount.
//
// Denormalized fields recomputed after every child change:
//
//	TotalAmount = subtotal(items+services, post line-discount) − order discount + additional costs
//	BaseAmount  = TotalAmount × ExchangeRate
//	PaidAmount  = Σ payments.amount
type Sale struct {
	SaleID              string          `json:"saleID"`
	CustomerID          string          `json:"customerID"`
	SaleDate            time.Time       `json:"saleDate"`
	CurrencyID          string          `json:"currencyID"`
	ExchangeRate        decimal.Decimal `json:"exchangeRate"`
	DiscountType        *DiscountType   `json:"discountType"`
	DiscountValue       decimal.Decimal `json:"discountValue"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountCode        *string         `json:"discountCode"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	BaseAmount          decimal.Decimal `json:"baseAmount"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	Notes               string          `json:"notes"`
	AuditFields

	Items           []SaleItem           `json:"items,omitempty"`
	ServiceItems    []SaleServiceItem    `json:"serviceItems,omitempty"`
	AdditionalCosts []SaleAdditionalCost `json:"additionalCosts,omitempty"`
}

// SaleItem is a product line. PurchaseItemID, when set, ties the line to a
// specific purchase batch which it depletes.
type SaleItem struct {
	SaleItemID     string          `json:"saleItemID"`
	SaleID         string          `json:"saleID"`
	ProductID      string          `json:"productID"`
	UnitID         string          `json:"unitID"`
	PurchaseItemID *string         `json:"purchaseItemID"`
	PerPrice       decimal.Decimal `json:"perPrice"`
	Amount         decimal.Decimal `json:"amount"`
	DiscountType   *DiscountType   `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	Total          decimal.Decimal `json:"total"` // round2(perPrice*amount − line discount)
}

// SaleServiceItem is a service line with no inventory effect.
type SaleServiceItem struct {
	ServiceItemID string          `json:"serviceItemID"`
	SaleID        string          `json:"saleID"`
	Title         string          `json:"title"`
	PerPrice      decimal.Decimal `json:"perPrice"`
	Amount        decimal.Decimal `json:"amount"`
	DiscountType  *DiscountType   `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Total         decimal.Decimal `json:"total"`
}

// SaleAdditionalCost is an extra charge added on top of the discounted subtotal.
type SaleAdditionalCost struct {
	CostID string          `json:"costID"`
	SaleID string          `json:"saleID"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

// SalePayment records money received against a sale. When AccountID is set
// the payment credits that account through the balance ledger.
type SalePayment struct {
	PaymentID   string          `json:"paymentID"`
	SaleID      string          `json:"saleID"`
	AccountID   *string         `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  string          `json:"currencyID"`
	Rate        decimal.Decimal `json:"rate"`
	BaseAmount  decimal.Decimal `json:"baseAmount"`
	PaymentDate time.Time       `json:"paymentDate"`
	Notes       string          `json:"notes"`
	AuditFields
}

// ProductBatch is the read model for one purchase lot of a product, as shown
// to batch pickers. RemainingQuantity is in base units, rounded to 6 decimal
// places; it is informational, the oversell check re-derives exactly.
type ProductBatch struct {
	PurchaseItemID    string           `json:"purchaseItemID"`
	BatchNumber       string           `json:"batchNumber"`
	PurchaseDate      time.Time        `json:"purchaseDate"`
	ExpiryDate        *time.Time       `json:"expiryDate"`
	PerPrice          decimal.Decimal  `json:"perPrice"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	WholesalePrice    *decimal.Decimal `json:"wholesalePrice"`
	RetailPrice       *decimal.Decimal `json:"retailPrice"`
	RemainingQuantity decimal.Decimal  `json:"remainingQuantity"`
}
