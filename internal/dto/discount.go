package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateDiscountCodeRequest defines the data needed to create a discount code.
type CreateDiscountCodeRequest struct {
	Code        string              `json:"code" binding:"required"`
	Type        domain.DiscountType `json:"type" binding:"required,oneof=PERCENT FIXED"`
	Value       decimal.Decimal     `json:"value" binding:"required"`
	MinPurchase decimal.Decimal     `json:"minPurchase"`
	ValidFrom   *string             `json:"validFrom" binding:"omitempty,datetime=2006-01-02"`
	ValidTo     *string             `json:"validTo" binding:"omitempty,datetime=2006-01-02"`
	MaxUses     *int                `json:"maxUses" binding:"omitempty,min=1"`
}

// UpdateDiscountCodeRequest defines the data allowed for updating a code.
type UpdateDiscountCodeRequest struct {
	Type        *domain.DiscountType `json:"type" binding:"omitempty,oneof=PERCENT FIXED"`
	Value       *decimal.Decimal     `json:"value"`
	MinPurchase *decimal.Decimal     `json:"minPurchase"`
	ValidFrom   *string              `json:"validFrom" binding:"omitempty,datetime=2006-01-02"`
	ValidTo     *string              `json:"validTo" binding:"omitempty,datetime=2006-01-02"`
	MaxUses     *int                 `json:"maxUses" binding:"omitempty,min=1"`
}

// DiscountCodeResponse defines the data returned for a discount code.
type DiscountCodeResponse struct {
	CodeID      string              `json:"codeID"`
	Code        string              `json:"code"`
	Type        domain.DiscountType `json:"type"`
	Value       decimal.Decimal     `json:"value"`
	MinPurchase decimal.Decimal     `json:"minPurchase"`
	ValidFrom   *string             `json:"validFrom"`
	ValidTo     *string             `json:"validTo"`
	MaxUses     *int                `json:"maxUses"`
	UseCount    int                 `json:"useCount"`
}

// ValidateDiscountParams defines query parameters for pre-checkout code
// validation.
type ValidateDiscountParams struct {
	Code     string          `form:"code" binding:"required"`
	Subtotal decimal.Decimal `form:"subtotal" binding:"required"`
}

// ValidateDiscountResponse is the result of validating a discount code
// against a subtotal.
type ValidateDiscountResponse struct {
	Valid          bool            `json:"valid"`
	Reason         string          `json:"reason,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// ToDiscountCodeResponse converts a domain.DiscountCode to DTO
func ToDiscountCodeResponse(c *domain.DiscountCode) DiscountCodeResponse {
	return DiscountCodeResponse{
		CodeID:      c.CodeID,
		Code:        c.Code,
		Type:        c.Type,
		Value:       c.Value,
		MinPurchase: c.MinPurchase,
		ValidFrom:   formatDatePtr(c.ValidFrom),
		ValidTo:     formatDatePtr(c.ValidTo),
		MaxUses:     c.MaxUses,
		UseCount:    c.UseCount,
	}
}

// ToListDiscountCodeResponse converts codes to DTOs
func ToListDiscountCodeResponse(codes []domain.DiscountCode) []DiscountCodeResponse {
	res := make([]DiscountCodeResponse, len(codes))
	for i := range codes {
		res[i] = ToDiscountCodeResponse(&codes[i])
	}
	return res
}
