package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// CurrencySvcFacade defines currency management operations.
type CurrencySvcFacade interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// GetCurrencyByID retrieves a specific currency.
	GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// UpdateCurrency updates a currency's details. The base currency's rate
	// is pinned to 1 and cannot be changed.
	UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error)

	// DeleteCurrency removes an unreferenced, non-base currency.
	DeleteCurrency(ctx context.Context, currencyID string) error

	// SetBaseCurrency atomically makes the given currency the single base,
	// clearing the flag elsewhere and pinning its rate to 1.
	SetBaseCurrency(ctx context.Context, currencyID string, userID string) (*domain.Currency, error)

	// ConvertAmount converts an amount between two currencies through base.
	ConvertAmount(ctx context.Context, fromID string, toID string, amount decimal.Decimal) (decimal.Decimal, error)
}

// UnitSvcFacade defines measurement unit operations.
type UnitSvcFacade interface {
	CreateUnit(ctx context.Context, req dto.CreateUnitRequest, userID string) (*domain.Unit, error)
	GetUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, userID string) (*domain.Unit, error)
	DeleteUnit(ctx context.Context, unitID string) error
}
