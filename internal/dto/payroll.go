package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to create an employee.
type CreateEmployeeRequest struct {
	Name       string          `json:"name" binding:"required"`
	Position   string          `json:"position"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	HiredAt    *string         `json:"hiredAt" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name"`
	Position   *string          `json:"position"`
	BaseSalary *decimal.Decimal `json:"baseSalary"`
	IsActive   *bool            `json:"isActive"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID string          `json:"employeeID"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	HiredAt    *string         `json:"hiredAt"`
	IsActive   bool            `json:"isActive"`
}

// DeductionRequest is one named deduction in a salary request.
type DeductionRequest struct {
	Title  string          `json:"title" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateSalaryRequest defines the data needed to record a salary payment.
// NetAmount is derived: gross minus the sum of deductions. When AccountID is
// set the net amount is withdrawn from that account.
type CreateSalaryRequest struct {
	EmployeeID  string             `json:"employeeID" binding:"required"`
	Period      string             `json:"period" binding:"required,datetime=2006-01"`
	GrossAmount decimal.Decimal    `json:"grossAmount" binding:"required"`
	AccountID   *string            `json:"accountID"`
	CurrencyID  string             `json:"currencyID" binding:"required"`
	Rate        *decimal.Decimal   `json:"rate"`
	PaidAt      string             `json:"paidAt" binding:"required,datetime=2006-01-02"`
	Notes       string             `json:"notes"`
	Deductions  []DeductionRequest `json:"deductions" binding:"omitempty,dive"`
}

// UpdateSalaryRequest replaces a salary's details and deductions. The ledger
// effect of the old row is reversed and the new one applied.
type UpdateSalaryRequest struct {
	Period      string             `json:"period" binding:"required,datetime=2006-01"`
	GrossAmount decimal.Decimal    `json:"grossAmount" binding:"required"`
	AccountID   *string            `json:"accountID"`
	CurrencyID  string             `json:"currencyID" binding:"required"`
	Rate        *decimal.Decimal   `json:"rate"`
	PaidAt      string             `json:"paidAt" binding:"required,datetime=2006-01-02"`
	Notes       string             `json:"notes"`
	Deductions  []DeductionRequest `json:"deductions" binding:"omitempty,dive"`
}

// DeductionResponse is one deduction in a salary response.
type DeductionResponse struct {
	DeductionID string          `json:"deductionID"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalaryResponse defines the data returned for a salary payment.
type SalaryResponse struct {
	SalaryID    string              `json:"salaryID"`
	EmployeeID  string              `json:"employeeID"`
	Period      string              `json:"period"`
	GrossAmount decimal.Decimal     `json:"grossAmount"`
	NetAmount   decimal.Decimal     `json:"netAmount"`
	AccountID   *string             `json:"accountID"`
	CurrencyID  string              `json:"currencyID"`
	Rate        decimal.Decimal     `json:"rate"`
	PaidAt      string              `json:"paidAt"`
	Notes       string              `json:"notes"`
	CreatedAt   time.Time           `json:"createdAt"`
	Deductions  []DeductionResponse `json:"deductions,omitempty"`
}

// ToEmployeeResponse converts a domain.Employee to DTO
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Position:   e.Position,
		BaseSalary: e.BaseSalary,
		HiredAt:    formatDatePtr(e.HiredAt),
		IsActive:   e.IsActive,
	}
}

// ToListEmployeeResponse converts employees to DTOs
func ToListEmployeeResponse(employees []domain.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i := range employees {
		res[i] = ToEmployeeResponse(&employees[i])
	}
	return res
}

// ToSalaryResponse converts a domain.Salary to DTO
func ToSalaryResponse(s *domain.Salary) SalaryResponse {
	resp := SalaryResponse{
		SalaryID:    s.SalaryID,
		EmployeeID:  s.EmployeeID,
		Period:      s.Period,
		GrossAmount: s.GrossAmount,
		NetAmount:   s.NetAmount,
		AccountID:   s.AccountID,
		CurrencyID:  s.CurrencyID,
		Rate:        s.Rate,
		PaidAt:      s.PaidAt.Format("2006-01-02"),
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
	for _, d := range s.Deductions {
		resp.Deductions = append(resp.Deductions, DeductionResponse{
			DeductionID: d.DeductionID,
			Title:       d.Title,
			Amount:      d.Amount,
		})
	}
	return resp
}

// ToListSalaryResponse converts salaries to DTOs
func ToListSalaryResponse(salaries []domain.Salary) []SalaryResponse {
	res := make([]SalaryResponse, len(salaries))
	for i := range salaries {
		res[i] = ToSalaryResponse(&salaries[i])
	}
	return res
}
