package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// PayrollSvcFacade defines employee and salary operations.
type PayrollSvcFacade interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error)
	DeactivateEmployee(ctx context.Context, employeeID string, userID string) error

	// CreateSalary records a salary payment for a period, rejecting a second
	// payment for the same employee and period, and withdrawing the net
	// amount from the linked account when one is given.
	CreateSalary(ctx context.Context, req dto.CreateSalaryRequest, userID string) (*domain.Salary, error)
	GetSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error)
	ListSalariesByEmployee(ctx context.Context, employeeID string, params dto.ListParams) ([]domain.Salary, error)

	// UpdateSalary replaces the salary, reversing the old ledger effect and
	// applying the new one in the same transaction.
	UpdateSalary(ctx context.Context, salaryID string, req dto.UpdateSalaryRequest, userID string) (*domain.Salary, error)

	// DeleteSalary removes the salary, reversing its ledger effect.
	DeleteSalary(ctx context.Context, salaryID string, userID string) error
}
