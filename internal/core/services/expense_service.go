package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/utils"
)

// expenseService tracks expenses by type. Account-linked expenses debit the
// account through the ledger, so writes run inside a transaction.
type expenseService struct {
	expenseTypeRepo portsrepo.ExpenseTypeRepositoryFacade
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	currencyRepo    portsrepo.CurrencyReader
	txManager       portsrepo.TransactionManager
	accountSvc      portssvc.AccountSvcFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseTypeRepo portsrepo.ExpenseTypeRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	txManager portsrepo.TransactionManager,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseTypeRepo: expenseTypeRepo,
		expenseRepo:     expenseRepo,
		currencyRepo:    currencyRepo,
		txManager:       txManager,
		accountSvc:      accountSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpenseType(ctx context.Context, req dto.CreateExpenseTypeRequest, userID string) (*domain.ExpenseType, error) {
	now := time.Now().UTC()
	expenseType := domain.ExpenseType{
		ExpenseTypeID: uuid.NewString(),
		Name:          req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.expenseTypeRepo.SaveExpenseType(ctx, expenseType); err != nil {
		return nil, err
	}
	return &expenseType, nil
}

func (s *expenseService) ListExpenseTypes(ctx context.Context) ([]domain.ExpenseType, error) {
	types, err := s.expenseTypeRepo.ListExpenseTypes(ctx)
	if err != nil {
		return nil, err
	}
	if types == nil {
		return []domain.ExpenseType{}, nil
	}
	return types, nil
}

func (s *expenseService) UpdateExpenseType(ctx context.Context, expenseTypeID string, req dto.UpdateExpenseTypeRequest, userID string) (*domain.ExpenseType, error) {
	expenseType, err := s.expenseTypeRepo.FindExpenseTypeByID(ctx, expenseTypeID)
	if err != nil {
		return nil, err
	}
	expenseType.Name = req.Name
	expenseType.LastUpdatedAt = time.Now().UTC()
	expenseType.LastUpdatedBy = userID
	if err := s.expenseTypeRepo.UpdateExpenseType(ctx, *expenseType); err != nil {
		return nil, err
	}
	return expenseType, nil
}

func (s *expenseService) DeleteExpenseType(ctx context.Context, expenseTypeID string) error {
	if _, err := s.expenseTypeRepo.FindExpenseTypeByID(ctx, expenseTypeID); err != nil {
		return err
	}
	return s.expenseTypeRepo.DeleteExpenseType(ctx, expenseTypeID)
}

func (s *expenseService) resolveRate(ctx context.Context, currencyID string, override *decimal.Decimal) (decimal.Decimal, error) {
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

// CreateExpense records an expense, withdrawing from the linked account when
// one is given.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.expenseTypeRepo.FindExpenseTypeByID(ctx, req.ExpenseTypeID); err != nil {
		return nil, fmt.Errorf("%w: expense type %s does not exist", apperrors.ErrValidation, req.ExpenseTypeID)
	}
	expenseDate, err := utils.ParseDateOnly(req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expense date", apperrors.ErrValidation)
	}
	rate, err := s.resolveRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		ExpenseTypeID: req.ExpenseTypeID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		CurrencyID:    req.CurrencyID,
		Rate:          rate,
		ExpenseDate:   expenseDate,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := s.expenseRepo.SaveExpenseInTx(ctx, tx, expense); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, req.Amount.Neg(), userID); err != nil {
			return nil, err
		}
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	var from, to *time.Time
	if params.From != "" {
		parsed, err := utils.ParseDateOnly(params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		from = &parsed
	}
	if params.To != "" {
		parsed, err := utils.ParseDateOnly(params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		to = &parsed
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, from, to, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// UpdateExpense replaces the expense, reversing the old ledger effect and
// applying the new one in the same transaction.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.expenseTypeRepo.FindExpenseTypeByID(ctx, req.ExpenseTypeID); err != nil {
		return nil, fmt.Errorf("%w: expense type %s does not exist", apperrors.ErrValidation, req.ExpenseTypeID)
	}
	expenseDate, err := utils.ParseDateOnly(req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expense date", apperrors.ErrValidation)
	}
	rate, err := s.resolveRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.ExpenseTypeID = req.ExpenseTypeID
	updated.AccountID = req.AccountID
	updated.Amount = req.Amount
	updated.CurrencyID = req.CurrencyID
	updated.Rate = rate
	updated.ExpenseDate = expenseDate
	updated.Notes = req.Notes
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if existing.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *existing.AccountID, existing.CurrencyID, existing.Amount, userID); err != nil {
			return nil, err
		}
	}
	if err := s.expenseRepo.UpdateExpenseInTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, req.Amount.Neg(), userID); err != nil {
			return nil, err
		}
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}
	return &updated, nil
}

// DeleteExpense removes the expense, reversing its ledger effect.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := s.expenseRepo.DeleteExpenseInTx(ctx, tx, expenseID); err != nil {
		return err
	}
	if existing.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *existing.AccountID, existing.CurrencyID, existing.Amount, userID); err != nil {
			return err
		}
	}
	return s.txManager.Commit(ctx, tx)
}
