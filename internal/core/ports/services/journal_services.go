package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// JournalSvcFacade defines manual journal entry operations.
type JournalSvcFacade interface {
	// CreateEntry records a journal entry, assigning a generated entry number
	// and applying every line's delta to its account in one transaction.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a cursor-paginated page of entries.
	ListEntries(ctx context.Context, params dto.TokenListParams) ([]domain.JournalEntry, string, error)

	// UpdateEntry replaces the entry, reversing the old lines' deltas before
	// applying the new ones.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes the entry, reversing its lines' deltas.
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}
