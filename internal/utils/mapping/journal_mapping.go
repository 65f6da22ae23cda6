package mapping

import (
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryNumber: d.EntryNumber,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry header to domain.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to a model row.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		CurrencyID:   d.CurrencyID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		ExchangeRate: d.ExchangeRate,
		BaseAmount:   d.BaseAmount,
		Notes:        d.Notes,
	}
}

// ToDomainJournalEntryLine converts a model line to domain.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		CurrencyID:   m.CurrencyID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		ExchangeRate: m.ExchangeRate,
		BaseAmount:   m.BaseAmount,
		Notes:        m.Notes,
	}
}
