package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its identifier.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the currency currently flagged as base, if any.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all defined currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency updates an existing currency's details.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// DeleteCurrency removes a currency. Fails with ErrConflict when the
	// currency is referenced by accounts, documents or ledger rows.
	DeleteCurrency(ctx context.Context, currencyID string) error
}

// CurrencyBaseSupport defines the transactional base-flag swap.
type CurrencyBaseSupport interface {
	// ClearBaseFlagInTx unsets is_base on every currency.
	ClearBaseFlagInTx(ctx context.Context, tx pgx.Tx) error

	// SetBaseFlagInTx sets is_base and rate=1 on the given currency.
	SetBaseFlagInTx(ctx context.Context, tx pgx.Tx, currencyID string, userID string) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	CurrencyBaseSupport
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}

// UnitRepositoryFacade defines persistence for measurement units.
type UnitRepositoryFacade interface {
	// FindUnitByID retrieves a specific unit by its identifier.
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)

	// FindUnitsByIDs retrieves multiple units keyed by ID.
	FindUnitsByIDs(ctx context.Context, unitIDs []string) (map[string]domain.Unit, error)

	// ListUnits retrieves all defined units.
	ListUnits(ctx context.Context) ([]domain.Unit, error)

	// SaveUnit persists a new unit.
	SaveUnit(ctx context.Context, unit domain.Unit) error

	// UpdateUnit updates an existing unit's details.
	UpdateUnit(ctx context.Context, unit domain.Unit) error

	// DeleteUnit removes a unit. Fails with ErrConflict when referenced.
	DeleteUnit(ctx context.Context, unitID string) error
}
