package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Name:           d.Name,
		CurrencyID:     d.CurrencyID,
		COACategoryID:  d.COACategoryID,
		AccountCode:    d.AccountCode,
		AccountType:    models.AccountType(d.AccountType),
		InitialBalance: d.InitialBalance,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		CurrencyID:     m.CurrencyID,
		COACategoryID:  m.COACategoryID,
		AccountCode:    m.AccountCode,
		AccountType:    domain.AccountType(m.AccountType),
		InitialBalance: m.InitialBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountTransaction converts a model AccountTransaction to domain.
func ToDomainAccountTransaction(m models.AccountTransaction) domain.AccountTransaction {
	return domain.AccountTransaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Type:            domain.AccountTransactionType(m.Type),
		Amount:          m.Amount,
		CurrencyID:      m.CurrencyID,
		Rate:            m.Rate,
		Total:           m.Total,
		TransactionDate: m.TransactionDate,
		IsFull:          m.IsFull,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAccountTransaction converts a domain AccountTransaction to a model row.
func ToModelAccountTransaction(d domain.AccountTransaction) models.AccountTransaction {
	return models.AccountTransaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Type:            string(d.Type),
		Amount:          d.Amount,
		CurrencyID:      d.CurrencyID,
		Rate:            d.Rate,
		Total:           d.Total,
		TransactionDate: d.TransactionDate,
		IsFull:          d.IsFull,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}
