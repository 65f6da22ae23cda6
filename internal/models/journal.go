package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	EntryNumber string    `db:"entry_number"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	AuditFields
}

// JournalEntryLine is the journal_entry_lines table row.
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	CurrencyID   string          `db:"currency_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	BaseAmount   decimal.Decimal `db:"base_amount"`
	Notes        string          `db:"notes"`
}
