package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its user-facing account code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// FindCurrencyBalances retrieves the per-currency ledger rows for an account.
	FindCurrencyBalances(ctx context.Context, accountID string) ([]domain.AccountCurrencyBalance, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountLedgerSupport defines the in-transaction primitives every money
// movement goes through. ApplyCurrencyDelta is the only way a per-currency
// balance changes; RecomputeCurrentBalance must follow before commit.
type AccountLedgerSupport interface {
	// FindAccountByIDForUpdate selects the account and locks it for update.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// FindCurrencyBalanceForUpdate selects and locks one per-currency row,
	// returning zero when the row does not exist yet.
	FindCurrencyBalanceForUpdate(ctx context.Context, tx pgx.Tx, accountID string, currencyID string) (decimal.Decimal, error)

	// ApplyCurrencyDelta upserts the (account, currency) ledger row, adding
	// delta to its balance.
	ApplyCurrencyDelta(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, delta decimal.Decimal) error

	// RecomputeCurrentBalance rewrites the cached current_balance as
	// initial_balance plus the base-equivalent sum of the currency rows.
	RecomputeCurrentBalance(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error
}

// AccountTransactionStore defines persistence for the append-only movement log.
type AccountTransactionStore interface {
	// SaveTransactionInTx persists a deposit/withdrawal audit row.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.AccountTransaction) error

	// FindTransactionByID retrieves a single movement row.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error)

	// ListTransactionsByAccount retrieves movements for an account, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error)

	// DeleteTransactionInTx removes a movement row after its effect has been
	// compensated through ApplyCurrencyDelta.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLedgerSupport
	AccountTransactionStore
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
