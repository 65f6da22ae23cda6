package services

import (
	"context"
	"errors"
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

// payrollService manages employees and their salary payments. A salary's net
// amount is derived from gross minus deductions; account-linked salaries
// debit the account through the ledger like expenses do.
type payrollService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	salaryRepo   portsrepo.SalaryRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	txManager    portsrepo.TransactionManager
	accountSvc   portssvc.AccountSvcFacade
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	salaryRepo portsrepo.SalaryRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	txManager portsrepo.TransactionManager,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		currencyRepo: currencyRepo,
		txManager:    txManager,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func (s *payrollService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	if req.BaseSalary.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: base salary must not be negative", apperrors.ErrValidation)
	}
	var hiredAt *time.Time
	if req.HiredAt != nil {
		parsed, err := utils.ParseDateOnly(*req.HiredAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hire date", apperrors.ErrValidation)
		}
		hiredAt = &parsed
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID: uuid.NewString(),
		Name:       req.Name,
		Position:   req.Position,
		BaseSalary: req.BaseSalary,
		HiredAt:    hiredAt,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *payrollService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

func (s *payrollService) ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployees(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

func (s *payrollService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.BaseSalary != nil {
		if req.BaseSalary.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: base salary must not be negative", apperrors.ErrValidation)
		}
		employee.BaseSalary = *req.BaseSalary
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = userID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *payrollService) DeactivateEmployee(ctx context.Context, employeeID string, userID string) error {
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return err
	}
	return s.employeeRepo.DeactivateEmployee(ctx, employeeID, userID, time.Now().UTC())
}

func (s *payrollService) resolveRate(ctx context.Context, currencyID string, override *decimal.Decimal) (decimal.Decimal, error) {
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

// buildDeductions converts deduction requests, returning them with their sum.
func buildDeductions(salaryID string, reqs []dto.DeductionRequest) ([]domain.Deduction, decimal.Decimal, error) {
	deductions := make([]domain.Deduction, len(reqs))
	total := decimal.Zero
	for i, dReq := range reqs {
		if dReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: deduction amount must be positive", apperrors.ErrValidation)
		}
		deductions[i] = domain.Deduction{
			DeductionID: uuid.NewString(),
			SalaryID:    salaryID,
			Title:       dReq.Title,
			Amount:      dReq.Amount,
		}
		total = total.Add(dReq.Amount)
	}
	return deductions, total, nil
}

// CreateSalary records a salary payment for a period, rejecting a second
// payment for the same employee and period, and withdrawing the net amount
// from the linked account when one is given.
func (s *payrollService) CreateSalary(ctx context.Context, req dto.CreateSalaryRequest, userID string) (*domain.Salary, error) {
	if req.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID); err != nil {
		return nil, fmt.Errorf("%w: employee %s does not exist", apperrors.ErrValidation, req.EmployeeID)
	}
	if _, err := s.salaryRepo.FindSalaryByPeriod(ctx, req.EmployeeID, req.Period); err == nil {
		return nil, fmt.Errorf("%w: salary for period %s already recorded", apperrors.ErrDuplicate, req.Period)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	paidAt, err := utils.ParseDateOnly(req.PaidAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}
	rate, err := s.resolveRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}

	salaryID := uuid.NewString()
	deductions, deductionsTotal, err := buildDeductions(salaryID, req.Deductions)
	if err != nil {
		return nil, err
	}
	netAmount := req.GrossAmount.Sub(deductionsTotal)
	if netAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: deductions exceed gross amount", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	salary := domain.Salary{
		SalaryID:    salaryID,
		EmployeeID:  req.EmployeeID,
		Period:      req.Period,
		GrossAmount: req.GrossAmount,
		NetAmount:   netAmount,
		AccountID:   req.AccountID,
		CurrencyID:  req.CurrencyID,
		Rate:        rate,
		PaidAt:      paidAt,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Deductions: deductions,
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := s.salaryRepo.SaveSalaryInTx(ctx, tx, salary); err != nil {
		return nil, err
	}
	if req.AccountID != nil && netAmount.GreaterThan(decimal.Zero) {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, netAmount.Neg(), userID); err != nil {
			return nil, err
		}
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit salary: %w", err)
	}
	return &salary, nil
}

func (s *payrollService) GetSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	return s.salaryRepo.FindSalaryByID(ctx, salaryID)
}

func (s *payrollService) ListSalariesByEmployee(ctx context.Context, employeeID string, params dto.ListParams) ([]domain.Salary, error) {
	if _, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	salaries, err := s.salaryRepo.ListSalariesByEmployee(ctx, employeeID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if salaries == nil {
		return []domain.Salary{}, nil
	}
	return salaries, nil
}

// UpdateSalary replaces the salary, reversing the old ledger effect and
// applying the new one in the same transaction.
func (s *payrollService) UpdateSalary(ctx context.Context, salaryID string, req dto.UpdateSalaryRequest, userID string) (*domain.Salary, error) {
	existing, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return nil, err
	}
	if req.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: gross amount must be positive", apperrors.ErrValidation)
	}
	if req.Period != existing.Period {
		if _, err := s.salaryRepo.FindSalaryByPeriod(ctx, existing.EmployeeID, req.Period); err == nil {
			return nil, fmt.Errorf("%w: salary for period %s already recorded", apperrors.ErrDuplicate, req.Period)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	paidAt, err := utils.ParseDateOnly(req.PaidAt)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}
	rate, err := s.resolveRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}

	deductions, deductionsTotal, err := buildDeductions(salaryID, req.Deductions)
	if err != nil {
		return nil, err
	}
	netAmount := req.GrossAmount.Sub(deductionsTotal)
	if netAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: deductions exceed gross amount", apperrors.ErrValidation)
	}

	updated := *existing
	updated.Period = req.Period
	updated.GrossAmount = req.GrossAmount
	updated.NetAmount = netAmount
	updated.AccountID = req.AccountID
	updated.CurrencyID = req.CurrencyID
	updated.Rate = rate
	updated.PaidAt = paidAt
	updated.Notes = req.Notes
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID
	updated.Deductions = deductions

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if existing.AccountID != nil && existing.NetAmount.GreaterThan(decimal.Zero) {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *existing.AccountID, existing.CurrencyID, existing.NetAmount, userID); err != nil {
			return nil, err
		}
	}
	if err := s.salaryRepo.UpdateSalaryInTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if req.AccountID != nil && netAmount.GreaterThan(decimal.Zero) {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, netAmount.Neg(), userID); err != nil {
			return nil, err
		}
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit salary update: %w", err)
	}
	return &updated, nil
}

// DeleteSalary removes the salary, reversing its ledger effect.
func (s *payrollService) DeleteSalary(ctx context.Context, salaryID string, userID string) error {
	existing, err := s.salaryRepo.FindSalaryByID(ctx, salaryID)
	if err != nil {
		return err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := s.salaryRepo.DeleteSalaryInTx(ctx, tx, salaryID); err != nil {
		return err
	}
	if existing.AccountID != nil && existing.NetAmount.GreaterThan(decimal.Zero) {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *existing.AccountID, existing.CurrencyID, existing.NetAmount, userID); err != nil {
			return err
		}
	}
	return s.txManager.Commit(ctx, tx)
}
