package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account with its per-currency balances.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, []domain.AccountCurrencyBalance, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListTransactions retrieves an account's movement log, newest first.
	ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountLedgerSvc defines the money movement operations.
type AccountLedgerSvc interface {
	// Deposit adds funds to an account's currency balance.
	Deposit(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error)

	// Withdraw removes funds from an account's currency balance, rejecting
	// movements that would overdraw either the currency or the base balance.
	Withdraw(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error)

	// DeleteTransaction removes a movement and applies the opposite delta so
	// the ledger returns to its prior state.
	DeleteTransaction(ctx context.Context, accountID string, transactionID string, userID string) error

	// ApplyMovementInTx is the shared in-transaction primitive used by the
	// sale, purchase, expense and payroll services when a document touches an
	// account. Positive amount deposits, negative withdraws and must be
	// covered by the currency balance.
	ApplyMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error

	// ApplyUncheckedMovementInTx applies a movement without the sufficiency
	// check. Manual journal lines may legitimately drive a currency balance
	// negative, and their reversals must always succeed.
	ApplyUncheckedMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLedgerSvc
}
