package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// JournalLineRequest is one debit/credit line in a journal entry request.
// Exactly one of debitAmount and creditAmount should be positive; the other
// must be zero or omitted.
type JournalLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	CurrencyID   string           `json:"currencyID" binding:"required"`
	DebitAmount  decimal.Decimal  `json:"debitAmount"`
	CreditAmount decimal.Decimal  `json:"creditAmount"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	Notes        string           `json:"notes"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   string               `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description string               `json:"description"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalEntryRequest replaces the entry header and lines.
type UpdateJournalEntryRequest struct {
	EntryDate   string               `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Description string               `json:"description"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// JournalLineResponse is one line in a journal entry response.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	CurrencyID   string          `json:"currencyID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	Notes        string          `json:"notes"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	EntryNumber string                `json:"entryNumber"`
	EntryDate   string                `json:"entryDate"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"createdAt"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse wraps a page of entries with the next cursor.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to DTO
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	for _, l := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:       l.LineID,
			AccountID:    l.AccountID,
			CurrencyID:   l.CurrencyID,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			ExchangeRate: l.ExchangeRate,
			BaseAmount:   l.BaseAmount,
			Notes:        l.Notes,
		})
	}
	return resp
}
