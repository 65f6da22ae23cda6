package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/models"
	"github.com/hesabix/hesabix_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, currency_id, coa_category_id, account_code, account_type, initial_balance, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.CurrencyID,
		&m.COACategoryID,
		&m.AccountCode,
		&m.AccountType,
		&m.InitialBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.CurrencyID, m.COACategoryID, m.AccountCode, m.AccountType,
		m.InitialBalance, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code already in use", apperrors.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: currency or category does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its user-facing account code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", accountCode, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	modelAccounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	result := make([]domain.Account, len(modelAccounts))
	for i, m := range modelAccounts {
		result[i] = mapping.ToDomainAccount(m)
	}
	return result, nil
}

// FindCurrencyBalances retrieves the per-currency ledger rows for an account.
func (r *PgxAccountRepository) FindCurrencyBalances(ctx context.Context, accountID string) ([]domain.AccountCurrencyBalance, error) {
	query := `
		SELECT account_id, currency_id, balance
		FROM account_currency_balances
		WHERE account_id = $1
		ORDER BY currency_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency balances for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var result []domain.AccountCurrencyBalance
	for rows.Next() {
		var b domain.AccountCurrencyBalance
		if err := rows.Scan(&b.AccountID, &b.CurrencyID, &b.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan currency balance: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// UpdateAccount updates an existing account's details. Balance columns are
// never written here; they only move through the ledger primitives.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, currency_id = $3, coa_category_id = $4, account_code = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.CurrencyID, m.COACategoryID, m.AccountCode, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code already in use", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate selects the account and locks it for update.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindCurrencyBalanceForUpdate selects and locks one per-currency ledger row.
// A missing row is a zero balance, not an error.
func (r *PgxAccountRepository) FindCurrencyBalanceForUpdate(ctx context.Context, tx pgx.Tx, accountID string, currencyID string) (decimal.Decimal, error) {
	query := `
		SELECT balance FROM account_currency_balances
		WHERE account_id = $1 AND currency_id = $2
		FOR UPDATE;
	`
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, query, accountID, currencyID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to lock currency balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// ApplyCurrencyDelta upserts the (account, currency) ledger row, adding delta
// to its balance. This is the only statement that writes these rows.
func (r *PgxAccountRepository) ApplyCurrencyDelta(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO account_currency_balances (account_id, currency_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, currency_id) DO UPDATE
		SET balance = account_currency_balances.balance + EXCLUDED.balance;
	`
	if _, err := tx.Exec(ctx, query, accountID, currencyID, delta); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: account or currency does not exist", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to apply currency delta to account %s: %w", accountID, err)
	}
	return nil
}

// RecomputeCurrentBalance rewrites the cached current_balance as
// initial_balance plus the base-equivalent sum of the currency rows. Every
// money movement calls this before commit so the cache never drifts.
func (r *PgxAccountRepository) RecomputeCurrentBalance(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts a
		SET current_balance = a.initial_balance + COALESCE((
			SELECT SUM(acb.balance * c.rate)
			FROM account_currency_balances acb
			JOIN currencies c ON c.currency_id = acb.currency_id
			WHERE acb.account_id = a.account_id
		), 0),
		last_updated_at = $2,
		last_updated_by = $3
		WHERE a.account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to recompute balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTransactionInTx persists a deposit/withdrawal audit row.
func (r *PgxAccountRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.AccountTransaction) error {
	m := mapping.ToModelAccountTransaction(txn)
	query := `
		INSERT INTO account_transactions (transaction_id, account_id, type, amount, currency_id, rate, total, transaction_date, is_full, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.AccountID, m.Type, m.Amount, m.CurrencyID, m.Rate, m.Total,
		m.TransactionDate, m.IsFull, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

const accountTxnColumns = `transaction_id, account_id, type, amount, currency_id, rate, total, transaction_date, is_full, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanAccountTransaction(row pgx.Row) (models.AccountTransaction, error) {
	var m models.AccountTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.CurrencyID,
		&m.Rate,
		&m.Total,
		&m.TransactionDate,
		&m.IsFull,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a single movement row.
func (r *PgxAccountRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error) {
	query := `SELECT ` + accountTxnColumns + ` FROM account_transactions WHERE transaction_id = $1;`
	m, err := scanAccountTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account transaction %s: %w", transactionID, err)
	}
	d := mapping.ToDomainAccountTransaction(m)
	return &d, nil
}

// ListTransactionsByAccount retrieves movements for an account, newest first.
func (r *PgxAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error) {
	query := `
		SELECT ` + accountTxnColumns + `
		FROM account_transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query account transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccountTransaction, error) {
		return scanAccountTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan account transactions: %w", err)
	}

	result := make([]domain.AccountTransaction, len(modelTxns))
	for i, m := range modelTxns {
		result[i] = mapping.ToDomainAccountTransaction(m)
	}
	return result, nil
}

// DeleteTransactionInTx removes a movement row. Callers compensate the
// ledger through ApplyCurrencyDelta before deleting.
func (r *PgxAccountRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM account_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete account transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
