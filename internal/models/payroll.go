package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the employees table row.
type Employee struct {
	EmployeeID string          `db:"employee_id"`
	Name       string          `db:"name"`
	Position   string          `db:"position"`
	BaseSalary decimal.Decimal `db:"base_salary"`
	HiredAt    *time.Time      `db:"hired_at"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}

// Salary is the salaries table row.
type Salary struct {
	SalaryID    string          `db:"salary_id"`
	EmployeeID  string          `db:"employee_id"`
	Period      string          `db:"period"`
	GrossAmount decimal.Decimal `db:"gross_amount"`
	NetAmount   decimal.Decimal `db:"net_amount"`
	AccountID   *string         `db:"account_id"`
	CurrencyID  string          `db:"currency_id"`
	Rate        decimal.Decimal `db:"rate"`
	PaidAt      time.Time       `db:"paid_at"`
	Notes       string          `db:"notes"`
	AuditFields
}

// Deduction is the deductions table row.
type Deduction struct {
	DeductionID string          `db:"deduction_id"`
	SalaryID    string          `db:"salary_id"`
	Title       string          `db:"title"`
	Amount      decimal.Decimal `db:"amount"`
}
