package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelDiscountCode converts a domain DiscountCode to a model row.
func ToModelDiscountCode(d domain.DiscountCode) models.DiscountCode {
	return models.DiscountCode{
		CodeID:      d.CodeID,
		Code:        d.Code,
		Type:        string(d.Type),
		Value:       d.Value,
		MinPurchase: d.MinPurchase,
		ValidFrom:   d.ValidFrom,
		ValidTo:     d.ValidTo,
		MaxUses:     d.MaxUses,
		UseCount:    d.UseCount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDiscountCode converts a model DiscountCode to domain.
func ToDomainDiscountCode(m models.DiscountCode) domain.DiscountCode {
	return domain.DiscountCode{
		CodeID:      m.CodeID,
		Code:        m.Code,
		Type:        domain.DiscountType(m.Type),
		Value:       m.Value,
		MinPurchase: m.MinPurchase,
		ValidFrom:   m.ValidFrom,
		ValidTo:     m.ValidTo,
		MaxUses:     m.MaxUses,
		UseCount:    m.UseCount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpenseType converts a domain ExpenseType to a model row.
func ToModelExpenseType(d domain.ExpenseType) models.ExpenseType {
	return models.ExpenseType{
		ExpenseTypeID: d.ExpenseTypeID,
		Name:          d.Name,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpenseType converts a model ExpenseType to domain.
func ToDomainExpenseType(m models.ExpenseType) domain.ExpenseType {
	return domain.ExpenseType{
		ExpenseTypeID: m.ExpenseTypeID,
		Name:          m.Name,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExpense converts a domain Expense to a model row.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		ExpenseTypeID: d.ExpenseTypeID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		CurrencyID:    d.CurrencyID,
		Rate:          d.Rate,
		ExpenseDate:   d.ExpenseDate,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to domain.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		ExpenseTypeID: m.ExpenseTypeID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		CurrencyID:    m.CurrencyID,
		Rate:          m.Rate,
		ExpenseDate:   m.ExpenseDate,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEmployee converts a domain Employee to a model row.
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		Position:    d.Position,
		BaseSalary:  d.BaseSalary,
		HiredAt:     d.HiredAt,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to domain.
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Position:    m.Position,
		BaseSalary:  m.BaseSalary,
		HiredAt:     m.HiredAt,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSalary converts a domain Salary to a model row.
func ToModelSalary(d domain.Salary) models.Salary {
	return models.Salary{
		SalaryID:    d.SalaryID,
		EmployeeID:  d.EmployeeID,
		Period:      d.Period,
		GrossAmount: d.GrossAmount,
		NetAmount:   d.NetAmount,
		AccountID:   d.AccountID,
		CurrencyID:  d.CurrencyID,
		Rate:        d.Rate,
		PaidAt:      d.PaidAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalary converts a model Salary to domain.
func ToDomainSalary(m models.Salary) domain.Salary {
	return domain.Salary{
		SalaryID:    m.SalaryID,
		EmployeeID:  m.EmployeeID,
		Period:      m.Period,
		GrossAmount: m.GrossAmount,
		NetAmount:   m.NetAmount,
		AccountID:   m.AccountID,
		CurrencyID:  m.CurrencyID,
		Rate:        m.Rate,
		PaidAt:      m.PaidAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model row.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: d.ProviderUserID,
		IsVerified:     d.IsVerified,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to domain.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID,
		IsVerified:     m.IsVerified,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
