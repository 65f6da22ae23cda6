package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
	"github.com/hesabix/hesabix_backend/internal/utils"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

// accountService provides account management and the money movement ledger.
//
// Every movement follows the same in-transaction sequence: lock the account
// row, check sufficiency, append the audit row, apply the currency delta and
// recompute the cached base balance. Nothing else writes balances.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryWithTx
	currencyRepo portsrepo.CurrencyReader
	coaRepo      portsrepo.COACategoryRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, currencyRepo portsrepo.CurrencyReader, coaRepo portsrepo.COACategoryRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		coaRepo:      coaRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.currencyRepo.FindCurrencyByID(ctx, req.CurrencyID); err != nil {
		return nil, fmt.Errorf("%w: currency %s does not exist", apperrors.ErrValidation, req.CurrencyID)
	}
	if req.COACategoryID != nil {
		if _, err := s.coaRepo.FindCategoryByID(ctx, *req.COACategoryID); err != nil {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, *req.COACategoryID)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		CurrencyID:     req.CurrencyID,
		COACategoryID:  req.COACategoryID,
		AccountCode:    req.AccountCode,
		AccountType:    req.AccountType,
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, []domain.AccountCurrencyBalance, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	balances, err := s.accountRepo.FindCurrencyBalances(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	return account, balances, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	txns, err := s.accountRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.AccountTransaction{}, nil
	}
	return txns, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.CurrencyID != nil {
		if _, err := s.currencyRepo.FindCurrencyByID(ctx, *req.CurrencyID); err != nil {
			return nil, fmt.Errorf("%w: currency %s does not exist", apperrors.ErrValidation, *req.CurrencyID)
		}
		account.CurrencyID = *req.CurrencyID
	}
	if req.COACategoryID != nil {
		if _, err := s.coaRepo.FindCategoryByID(ctx, *req.COACategoryID); err != nil {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, *req.COACategoryID)
		}
		account.COACategoryID = req.COACategoryID
	}
	if req.AccountCode != nil {
		account.AccountCode = req.AccountCode
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC())
}

// resolveRate returns the effective conversion rate for a movement: the
// caller's explicit rate when given, the currency's configured rate otherwise.
func (s *accountService) resolveRate(ctx context.Context, currencyID string, override *decimal.Decimal) (decimal.Decimal, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, currencyID)
	}
	rate := currency.Rate
	if override != nil {
		rate = *override
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	return rate, nil
}

// Deposit adds funds to an account's currency balance.
func (s *accountService) Deposit(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error) {
	return s.move(ctx, accountID, req, userID, domain.Deposit)
}

// Withdraw removes funds from an account's currency balance, rejecting
// movements that would overdraw either the currency or the base balance.
func (s *accountService) Withdraw(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error) {
	return s.move(ctx, accountID, req, userID, domain.Withdraw)
}

func (s *accountService) move(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string, txnType domain.AccountTransactionType) (*domain.AccountTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnDate, err := utils.ParseDateOnly(req.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date", apperrors.ErrValidation)
	}
	rate, err := s.resolveRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}
	if !req.IsFull && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	balance, err := s.accountRepo.FindCurrencyBalanceForUpdate(ctx, tx, accountID, req.CurrencyID)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if req.IsFull {
		switch txnType {
		case domain.Withdraw:
			// Drain the whole currency balance.
			amount = balance
		case domain.Deposit:
			// Settle a negative currency balance back to zero.
			amount = balance.Neg()
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: nothing to settle on currency %s", apperrors.ErrValidation, req.CurrencyID)
		}
	}

	delta := amount
	if txnType == domain.Withdraw {
		if balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: currency balance %s is below %s", apperrors.ErrInsufficientFunds, balance, amount)
		}
		if account.CurrentBalance.LessThan(accounting.Round2(amount.Mul(rate))) {
			return nil, fmt.Errorf("%w: account balance %s is below the base equivalent", apperrors.ErrInsufficientFunds, account.CurrentBalance)
		}
		delta = amount.Neg()
	}

	now := time.Now().UTC()
	txn := domain.AccountTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Type:            txnType,
		Amount:          amount,
		CurrencyID:      req.CurrencyID,
		Rate:            rate,
		Total:           accounting.Round2(amount.Mul(rate)),
		TransactionDate: txnDate,
		IsFull:          req.IsFull,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := s.accountRepo.ApplyCurrencyDelta(ctx, tx, accountID, req.CurrencyID, delta); err != nil {
		return nil, err
	}
	if err := s.accountRepo.RecomputeCurrentBalance(ctx, tx, accountID, userID, now); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit movement: %w", err)
	}

	logger.Info("Account movement recorded",
		slog.String("account_id", accountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)),
	)
	return &txn, nil
}

// DeleteTransaction removes a movement and applies the opposite delta so the
// ledger returns to its prior state.
func (s *accountService) DeleteTransaction(ctx context.Context, accountID string, transactionID string, userID string) error {
	txn, err := s.accountRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.AccountID != accountID {
		return fmt.Errorf("%w: transaction %s does not belong to account %s", apperrors.ErrNotFound, transactionID, accountID)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
		return err
	}

	// Reversing a deposit must not overdraw the currency balance it fed.
	delta := txn.Amount
	if txn.Type == domain.Deposit {
		balance, err := s.accountRepo.FindCurrencyBalanceForUpdate(ctx, tx, accountID, txn.CurrencyID)
		if err != nil {
			return err
		}
		if balance.LessThan(txn.Amount) {
			return fmt.Errorf("%w: reversing this deposit would overdraw currency %s", apperrors.ErrInsufficientFunds, txn.CurrencyID)
		}
		delta = txn.Amount.Neg()
	}

	if err := s.accountRepo.ApplyCurrencyDelta(ctx, tx, accountID, txn.CurrencyID, delta); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteTransactionInTx(ctx, tx, transactionID); err != nil {
		return err
	}
	if err := s.accountRepo.RecomputeCurrentBalance(ctx, tx, accountID, userID, time.Now().UTC()); err != nil {
		return err
	}

	return s.accountRepo.Commit(ctx, tx)
}

// ApplyMovementInTx is the shared in-transaction primitive used by the sale,
// purchase, expense and payroll services when a document touches an account.
// Positive amount deposits, negative withdraws and must be covered by the
// currency balance.
func (s *accountService) ApplyMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error {
	return s.applyMovement(ctx, tx, accountID, currencyID, amount, userID, true)
}

// ApplyUncheckedMovementInTx applies a movement without the sufficiency
// check. Manual journal lines may legitimately drive a currency balance
// negative, and their reversals must always succeed.
func (s *accountService) ApplyUncheckedMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error {
	return s.applyMovement(ctx, tx, accountID, currencyID, amount, userID, false)
}

func (s *accountService) applyMovement(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string, checkFunds bool) error {
	if amount.IsZero() {
		return nil
	}

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, currencyID)
	}

	txnType := domain.Deposit
	magnitude := amount
	if amount.IsNegative() {
		txnType = domain.Withdraw
		magnitude = amount.Neg()

		if checkFunds {
			balance, err := s.accountRepo.FindCurrencyBalanceForUpdate(ctx, tx, accountID, currencyID)
			if err != nil {
				return err
			}
			if balance.LessThan(magnitude) {
				return fmt.Errorf("%w: currency balance %s is below %s", apperrors.ErrInsufficientFunds, balance, magnitude)
			}
		}
	}

	now := time.Now().UTC()
	txn := domain.AccountTransaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Type:            txnType,
		Amount:          magnitude,
		CurrencyID:      currencyID,
		Rate:            currency.Rate,
		Total:           accounting.Round2(magnitude.Mul(currency.Rate)),
		TransactionDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := s.accountRepo.ApplyCurrencyDelta(ctx, tx, accountID, currencyID, amount); err != nil {
		return err
	}
	return s.accountRepo.RecomputeCurrentBalance(ctx, tx, accountID, userID, now)
}
