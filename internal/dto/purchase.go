package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// PurchaseItemRequest is one purchased lot in a create/update purchase request.
type PurchaseItemRequest struct {
	ProductID      string           `json:"productID" binding:"required"`
	UnitID         string           `json:"unitID" binding:"required"`
	PerPrice       decimal.Decimal  `json:"perPrice" binding:"required"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	CostPrice      *decimal.Decimal `json:"costPrice"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice"`
	RetailPrice    *decimal.Decimal `json:"retailPrice"`
	ExpiryDate     *string          `json:"expiryDate" binding:"omitempty,datetime=2006-01-02"`
}

// AdditionalCostRequest is a named extra cost on a purchase or sale.
type AdditionalCostRequest struct {
	Title  string          `json:"title" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreatePurchaseRequest defines the data needed to record a purchase.
type CreatePurchaseRequest struct {
	SupplierID      string                  `json:"supplierID" binding:"required"`
	PurchaseDate    string                  `json:"purchaseDate" binding:"required,datetime=2006-01-02"`
	CurrencyID      string                  `json:"currencyID" binding:"required"`
	ExchangeRate    *decimal.Decimal        `json:"exchangeRate"`
	PaidAmount      decimal.Decimal         `json:"paidAmount"`
	Notes           string                  `json:"notes"`
	Items           []PurchaseItemRequest   `json:"items" binding:"required,min=1,dive"`
	AdditionalCosts []AdditionalCostRequest `json:"additionalCosts" binding:"omitempty,dive"`
}

// UpdatePurchaseRequest replaces the purchase header, items and costs.
type UpdatePurchaseRequest struct {
	SupplierID      string                  `json:"supplierID" binding:"required"`
	PurchaseDate    string                  `json:"purchaseDate" binding:"required,datetime=2006-01-02"`
	CurrencyID      string                  `json:"currencyID" binding:"required"`
	ExchangeRate    *decimal.Decimal        `json:"exchangeRate"`
	Notes           string                  `json:"notes"`
	Items           []PurchaseItemRequest   `json:"items" binding:"required,min=1,dive"`
	AdditionalCosts []AdditionalCostRequest `json:"additionalCosts" binding:"omitempty,dive"`
}

// PurchaseItemResponse is one purchased lot in a purchase response.
type PurchaseItemResponse struct {
	PurchaseItemID string           `json:"purchaseItemID"`
	ProductID      string           `json:"productID"`
	UnitID         string           `json:"unitID"`
	PerPrice       decimal.Decimal  `json:"perPrice"`
	Amount         decimal.Decimal  `json:"amount"`
	Total          decimal.Decimal  `json:"total"`
	CostPrice      *decimal.Decimal `json:"costPrice"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice"`
	RetailPrice    *decimal.Decimal `json:"retailPrice"`
	ExpiryDate     *string          `json:"expiryDate"`
}

// AdditionalCostResponse is a named extra cost in a response.
type AdditionalCostResponse struct {
	CostID string          `json:"costID"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID      string                   `json:"purchaseID"`
	SupplierID      string                   `json:"supplierID"`
	BatchNumber     string                   `json:"batchNumber"`
	PurchaseDate    string                   `json:"purchaseDate"`
	CurrencyID      string                   `json:"currencyID"`
	ExchangeRate    decimal.Decimal          `json:"exchangeRate"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	PaidAmount      decimal.Decimal          `json:"paidAmount"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"createdAt"`
	Items           []PurchaseItemResponse   `json:"items,omitempty"`
	AdditionalCosts []AdditionalCostResponse `json:"additionalCosts,omitempty"`
}

// ListPurchasesResponse wraps a page of purchases with the next cursor.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	NextToken string             `json:"nextToken,omitempty"`
}

// CreatePaymentRequest defines the data needed to record a payment against a
// purchase or sale. Rate defaults to the currency's configured rate.
type CreatePaymentRequest struct {
	AccountID   *string          `json:"accountID"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyID  string           `json:"currencyID" binding:"required"`
	Rate        *decimal.Decimal `json:"rate"`
	PaymentDate string           `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Notes       string           `json:"notes"`
}

// PaymentResponse defines the data returned for a purchase or sale payment.
type PaymentResponse struct {
	PaymentID   string          `json:"paymentID"`
	AccountID   *string         `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyID  string          `json:"currencyID"`
	Rate        decimal.Decimal `json:"rate"`
	BaseAmount  decimal.Decimal `json:"baseAmount"`
	PaymentDate string          `json:"paymentDate"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// ToPurchaseItemResponse converts a domain.PurchaseItem to DTO
func ToPurchaseItemResponse(item *domain.PurchaseItem) PurchaseItemResponse {
	return PurchaseItemResponse{
		PurchaseItemID: item.PurchaseItemID,
		ProductID:      item.ProductID,
		UnitID:         item.UnitID,
		PerPrice:       item.PerPrice,
		Amount:         item.Amount,
		Total:          item.Total,
		CostPrice:      item.CostPrice,
		WholesalePrice: item.WholesalePrice,
		RetailPrice:    item.RetailPrice,
		ExpiryDate:     formatDatePtr(item.ExpiryDate),
	}
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		SupplierID:   p.SupplierID,
		BatchNumber:  p.BatchNumber,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02"),
		CurrencyID:   p.CurrencyID,
		ExchangeRate: p.ExchangeRate,
		TotalAmount:  p.TotalAmount,
		PaidAmount:   p.PaidAmount,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
	}
	for i := range p.Items {
		resp.Items = append(resp.Items, ToPurchaseItemResponse(&p.Items[i]))
	}
	for _, c := range p.AdditionalCosts {
		resp.AdditionalCosts = append(resp.AdditionalCosts, AdditionalCostResponse{
			CostID: c.CostID,
			Title:  c.Title,
			Amount: c.Amount,
		})
	}
	return resp
}

// ToPurchasePaymentResponse converts a domain.PurchasePayment to DTO
func ToPurchasePaymentResponse(p *domain.PurchasePayment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		AccountID:   p.AccountID,
		Amount:      p.Amount,
		CurrencyID:  p.CurrencyID,
		Rate:        p.Rate,
		BaseAmount:  p.BaseAmount,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// ToListPurchasePaymentResponse converts payments to DTOs
func ToListPurchasePaymentResponse(payments []domain.PurchasePayment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPurchasePaymentResponse(&payments[i])
	}
	return res
}
