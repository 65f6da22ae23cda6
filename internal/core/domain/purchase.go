package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase aggregates purchased line items, additional costs and payments.
// TotalAmount = sum(item totals) + sum(additional costs).
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	SupplierID   string          `json:"supplierID"`
	BatchNumber  string          `json:"batchNumber"` // generated BATCH-NNNNNN
	PurchaseDate time.Time       `json:"purchaseDate"`
	CurrencyID   string          `json:"currencyID"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Notes        string          `json:"notes"`
	AuditFields

	Items           []PurchaseItem           `json:"items,omitempty"`
	AdditionalCosts []PurchaseAdditionalCost `json:"additionalCosts,omitempty"`
}

// PurchaseItem is one purchased lot. Each item is a distinct inventory batch
// that sale items may later deplete.
type PurchaseItem struct {
	PurchaseItemID string          `json:"purchaseItemID"`
	PurchaseID     string          `json:"purchaseID"`
	ProductID      string          `json:"productID"`
	UnitID         string          `json:"unitID"`
	PerPrice       decimal.Decimal `json:"perPrice"`
	Amount         decimal.Decimal `json:"amount"`
	Total          decimal.Decimal `json:"total"` // perPrice * amount
	CostPrice      *decimal.Decimal `json:"costPrice"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice"`
	RetailPrice    *decimal.Decimal `json:"retailPrice"`
	ExpiryDate     *time.Time       `json:"expiryDate"`
}

// PurchaseAdditionalCost is a freight/fee style cost attached to a purchase.
type PurchaseAdditionalCost struct {
	CostID     string          `json:"costID"`
	PurchaseID string          `json:"purchaseID"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
}

// PurchasePayment records money paid against a purchase. When AccountID is
// set the payment debits that account through the balance ledger.
type PurchasePayment struct {
	PaymentID   string          `json:"paymentID"`
	PurchaseID  string          `json:"purchaseID"`
	AccountID   *string         `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  string          `json:"currencyID"`
	Rate        decimal.Decimal `json:"rate"`
	BaseAmount  decimal.Decimal `json:"baseAmount"` // amount * rate
	PaymentDate time.Time       `json:"paymentDate"`
	Notes       string          `json:"notes"`
	AuditFields
}
