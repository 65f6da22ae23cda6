package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Name   string          `json:"name" binding:"required"`
	Symbol string          `json:"symbol" binding:"required"`
	Rate   decimal.Decimal `json:"rate" binding:"required"`
	IsBase bool            `json:"isBase"`
}

// UpdateCurrencyRequest defines the data allowed for updating a currency.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateCurrencyRequest struct {
	Name   *string          `json:"name"`
	Symbol *string          `json:"symbol"`
	Rate   *decimal.Decimal `json:"rate"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID    string          `json:"currencyID"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Rate          decimal.Decimal `json:"rate"`
	IsBase        bool            `json:"isBase"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ConvertAmountParams defines query parameters for currency conversion.
type ConvertAmountParams struct {
	From   string          `form:"from" binding:"required"`
	To     string          `form:"to" binding:"required"`
	Amount decimal.Decimal `form:"amount" binding:"required"`
}

// ConvertAmountResponse defines the result of a currency conversion.
type ConvertAmountResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:    c.CurrencyID,
		Name:          c.Name,
		Symbol:        c.Symbol,
		Rate:          c.Rate,
		IsBase:        c.IsBase,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}

// CreateUnitRequest defines the data needed to create a measurement unit.
type CreateUnitRequest struct {
	Name    string          `json:"name" binding:"required"`
	GroupID *string         `json:"groupID"`
	Ratio   decimal.Decimal `json:"ratio" binding:"required"`
	IsBase  bool            `json:"isBase"`
}

// UpdateUnitRequest defines the data allowed for updating a unit.
type UpdateUnitRequest struct {
	Name  *string          `json:"name"`
	Ratio *decimal.Decimal `json:"ratio"`
}

// UnitResponse defines the data returned for a unit.
type UnitResponse struct {
	UnitID  string          `json:"unitID"`
	Name    string          `json:"name"`
	GroupID *string         `json:"groupID"`
	Ratio   decimal.Decimal `json:"ratio"`
	IsBase  bool            `json:"isBase"`
}

// ToUnitResponse converts a domain.Unit to UnitResponse DTO
func ToUnitResponse(u *domain.Unit) UnitResponse {
	return UnitResponse{
		UnitID:  u.UnitID,
		Name:    u.Name,
		GroupID: u.GroupID,
		Ratio:   u.Ratio,
		IsBase:  u.IsBase,
	}
}

// ToListUnitResponse converts a slice of domain.Unit to DTOs
func ToListUnitResponse(units []domain.Unit) []UnitResponse {
	res := make([]UnitResponse, len(units))
	for i := range units {
		res[i] = ToUnitResponse(&units[i])
	}
	return res
}
