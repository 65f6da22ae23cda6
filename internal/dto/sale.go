package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// SaleItemRequest is one product line in a create/update sale request.
type SaleItemRequest struct {
	ProductID      string               `json:"productID" binding:"required"`
	UnitID         string               `json:"unitID" binding:"required"`
	PurchaseItemID *string              `json:"purchaseItemID"`
	PerPrice       decimal.Decimal      `json:"perPrice" binding:"required"`
	Amount         decimal.Decimal      `json:"amount" binding:"required"`
	DiscountType   *domain.DiscountType `json:"discountType" binding:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue  decimal.Decimal      `json:"discountValue"`
}

// SaleServiceItemRequest is one service line in a create/update sale request.
type SaleServiceItemRequest struct {
	Title         string               `json:"title" binding:"required"`
	PerPrice      decimal.Decimal      `json:"perPrice" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	DiscountType  *domain.DiscountType `json:"discountType" binding:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue decimal.Decimal      `json:"discountValue"`
}

// CreateSaleRequest defines the data needed to record a sale.
type CreateSaleRequest struct {
	CustomerID      string                   `json:"customerID" binding:"required"`
	SaleDate        string                   `json:"saleDate" binding:"required,datetime=2006-01-02"`
	CurrencyID      string                   `json:"currencyID" binding:"required"`
	ExchangeRate    *decimal.Decimal         `json:"exchangeRate"`
	DiscountType    *domain.DiscountType     `json:"discountType" binding:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue   decimal.Decimal          `json:"discountValue"`
	DiscountCode    *string                  `json:"discountCode"`
	PaidAmount      decimal.Decimal          `json:"paidAmount"`
	Notes           string                   `json:"notes"`
	Items           []SaleItemRequest        `json:"items" binding:"omitempty,dive"`
	ServiceItems    []SaleServiceItemRequest `json:"serviceItems" binding:"omitempty,dive"`
	AdditionalCosts []AdditionalCostRequest  `json:"additionalCosts" binding:"omitempty,dive"`
}

// UpdateSaleRequest replaces the sale header, items, services and costs.
type UpdateSaleRequest struct {
	CustomerID      string                   `json:"customerID" binding:"required"`
	SaleDate        string                   `json:"saleDate" binding:"required,datetime=2006-01-02"`
	CurrencyID      string                   `json:"currencyID" binding:"required"`
	ExchangeRate    *decimal.Decimal         `json:"exchangeRate"`
	DiscountType    *domain.DiscountType     `json:"discountType" binding:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue   decimal.Decimal          `json:"discountValue"`
	DiscountCode    *string                  `json:"discountCode"`
	Notes           string                   `json:"notes"`
	Items           []SaleItemRequest        `json:"items" binding:"omitempty,dive"`
	ServiceItems    []SaleServiceItemRequest `json:"serviceItems" binding:"omitempty,dive"`
	AdditionalCosts []AdditionalCostRequest  `json:"additionalCosts" binding:"omitempty,dive"`
}

// SaleItemResponse is one product line in a sale response.
type SaleItemResponse struct {
	SaleItemID     string               `json:"saleItemID"`
	ProductID      string               `json:"productID"`
	UnitID         string               `json:"unitID"`
	PurchaseItemID *string              `json:"purchaseItemID"`
	PerPrice       decimal.Decimal      `json:"perPrice"`
	Amount         decimal.Decimal      `json:"amount"`
	DiscountType   *domain.DiscountType `json:"discountType"`
	DiscountValue  decimal.Decimal      `json:"discountValue"`
	Total          decimal.Decimal      `json:"total"`
}

// SaleServiceItemResponse is one service line in a sale response.
type SaleServiceItemResponse struct {
	ServiceItemID string               `json:"serviceItemID"`
	Title         string               `json:"title"`
	PerPrice      decimal.Decimal      `json:"perPrice"`
	Amount        decimal.Decimal      `json:"amount"`
	DiscountType  *domain.DiscountType `json:"discountType"`
	DiscountValue decimal.Decimal      `json:"discountValue"`
	Total         decimal.Decimal      `json:"total"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID          string                    `json:"saleID"`
	CustomerID      string                    `json:"customerID"`
	SaleDate        string                    `json:"saleDate"`
	CurrencyID      string                    `json:"currencyID"`
	ExchangeRate    decimal.Decimal           `json:"exchangeRate"`
	DiscountType    *domain.DiscountType      `json:"discountType"`
	DiscountValue   decimal.Decimal           `json:"discountValue"`
	DiscountAmount  decimal.Decimal           `json:"discountAmount"`
	DiscountCode    *string                   `json:"discountCode"`
	TotalAmount     decimal.Decimal           `json:"totalAmount"`
	BaseAmount      decimal.Decimal           `json:"baseAmount"`
	PaidAmount      decimal.Decimal           `json:"paidAmount"`
	Notes           string                    `json:"notes"`
	CreatedAt       time.Time                 `json:"createdAt"`
	Items           []SaleItemResponse        `json:"items,omitempty"`
	ServiceItems    []SaleServiceItemResponse `json:"serviceItems,omitempty"`
	AdditionalCosts []AdditionalCostResponse  `json:"additionalCosts,omitempty"`
}

// ListSalesResponse wraps a page of sales with the next cursor.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken string         `json:"nextToken,omitempty"`
}

// ProductBatchResponse is one purchase lot offered to batch pickers.
type ProductBatchResponse struct {
	PurchaseItemID    string           `json:"purchaseItemID"`
	BatchNumber       string           `json:"batchNumber"`
	PurchaseDate      string           `json:"purchaseDate"`
	ExpiryDate        *string          `json:"expiryDate"`
	PerPrice          decimal.Decimal  `json:"perPrice"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	WholesalePrice    *decimal.Decimal `json:"wholesalePrice"`
	RetailPrice       *decimal.Decimal `json:"retailPrice"`
	RemainingQuantity decimal.Decimal  `json:"remainingQuantity"`
}

// ListProductBatchesParams defines query parameters for the batch listing.
type ListProductBatchesParams struct {
	IncludeEmpty bool `form:"includeEmpty"`
}

// ProductStockResponse is the total remaining stock of a product. UnitID is
// set when the quantity was re-expressed in a requested unit.
type ProductStockResponse struct {
	ProductID string          `json:"productID"`
	UnitID    string          `json:"unitID,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:         s.SaleID,
		CustomerID:     s.CustomerID,
		SaleDate:       s.SaleDate.Format("2006-01-02"),
		CurrencyID:     s.CurrencyID,
		ExchangeRate:   s.ExchangeRate,
		DiscountType:   s.DiscountType,
		DiscountValue:  s.DiscountValue,
		DiscountAmount: s.DiscountAmount,
		DiscountCode:   s.DiscountCode,
		TotalAmount:    s.TotalAmount,
		BaseAmount:     s.BaseAmount,
		PaidAmount:     s.PaidAmount,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			SaleItemID:     item.SaleItemID,
			ProductID:      item.ProductID,
			UnitID:         item.UnitID,
			PurchaseItemID: item.PurchaseItemID,
			PerPrice:       item.PerPrice,
			Amount:         item.Amount,
			DiscountType:   item.DiscountType,
			DiscountValue:  item.DiscountValue,
			Total:          item.Total,
		})
	}
	for _, svc := range s.ServiceItems {
		resp.ServiceItems = append(resp.ServiceItems, SaleServiceItemResponse{
			ServiceItemID: svc.ServiceItemID,
			Title:         svc.Title,
			PerPrice:      svc.PerPrice,
			Amount:        svc.Amount,
			DiscountType:  svc.DiscountType,
			DiscountValue: svc.DiscountValue,
			Total:         svc.Total,
		})
	}
	for _, c := range s.AdditionalCosts {
		resp.AdditionalCosts = append(resp.AdditionalCosts, AdditionalCostResponse{
			CostID: c.CostID,
			Title:  c.Title,
			Amount: c.Amount,
		})
	}
	return resp
}

// ToSalePaymentResponse converts a domain.SalePayment to DTO
func ToSalePaymentResponse(p *domain.SalePayment) PaymentResponse {
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

// ToListSalePaymentResponse converts payments to DTOs
func ToListSalePaymentResponse(payments []domain.SalePayment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToSalePaymentResponse(&payments[i])
	}
	return res
}

// ToProductBatchResponse converts a domain.ProductBatch to DTO
func ToProductBatchResponse(b *domain.ProductBatch) ProductBatchResponse {
	return ProductBatchResponse{
		PurchaseItemID:    b.PurchaseItemID,
		BatchNumber:       b.BatchNumber,
		PurchaseDate:      b.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:        formatDatePtr(b.ExpiryDate),
		PerPrice:          b.PerPrice,
		CostPrice:         b.CostPrice,
		WholesalePrice:    b.WholesalePrice,
		RetailPrice:       b.RetailPrice,
		RemainingQuantity: b.RemainingQuantity,
	}
}

// ToListProductBatchResponse converts batches to DTOs
func ToListProductBatchResponse(batches []domain.ProductBatch) []ProductBatchResponse {
	res := make([]ProductBatchResponse, len(batches))
	for i := range batches {
		res[i] = ToProductBatchResponse(&batches[i])
	}
	return res
}
