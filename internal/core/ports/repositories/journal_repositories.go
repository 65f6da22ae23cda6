package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries ordered by (entry_date, created_at)
	// descending, starting after the given cursor when non-zero.
	ListEntries(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)
}

// JournalWriter defines in-transaction write operations for journal data
type JournalWriter interface {
	// SaveEntryInTx persists an entry header with its lines.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// UpdateEntryInTx rewrites the header and replaces the lines.
	UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// DeleteEntryInTx removes the entry and its lines.
	DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
