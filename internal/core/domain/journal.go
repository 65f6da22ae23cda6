package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a manual ledger entry composed of debit/credit lines.
// The schema deliberately permits unbalanced entries.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`
	EntryNumber string    `json:"entryNumber"` // generated JNNNNNN
	EntryDate   time.Time `json:"entryDate"`
	Description string    `json:"description"`
	AuditFields

	Lines []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine moves debit−credit in its currency on one account.
// BaseAmount = (debit if debit > 0 else credit) × exchange rate.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	CurrencyID   string          `json:"currencyID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	Notes        string          `json:"notes"`
}

// Delta is the signed per-currency movement this line applies to its account.
func (l JournalEntryLine) Delta() decimal.Decimal {
	return l.DebitAmount.Sub(l.CreditAmount)
}
