package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a payroll subject.
type Employee struct {
	EmployeeID string          `json:"employeeID"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	HiredAt    *time.Time      `json:"hiredAt"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}

// Salary is one salary payment for a period. NetAmount = GrossAmount minus
// the sum of its deductions. When AccountID is set the net amount debits
// that account through the ledger, like an expense.
type Salary struct {
	SalaryID    string          `json:"salaryID"`
	EmployeeID  string          `json:"employeeID"`
	Period      string          `json:"period"` // e.g. "2025-07"
	GrossAmount decimal.Decimal `json:"grossAmount"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	AccountID   *string         `json:"accountID"`
	CurrencyID  string          `json:"currencyID"`
	Rate        decimal.Decimal `json:"rate"`
	PaidAt      time.Time       `json:"paidAt"`
	Notes       string          `json:"notes"`
	AuditFields

	Deductions []Deduction `json:"deductions,omitempty"`
}

// Deduction is a named amount subtracted from a salary's gross.
type Deduction struct {
	DeductionID string          `json:"deductionID"`
	SalaryID    string          `json:"salaryID"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
}
