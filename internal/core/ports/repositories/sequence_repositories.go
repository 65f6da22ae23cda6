package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Sequence names used by document numbering.
const (
	SequenceBatchNumber  = "batch_number"
	SequenceJournalEntry = "journal_entry"
)

// SequenceRepository hands out monotonically increasing counters for
// generated document numbers. NextValueInTx must be called inside the same
// transaction as the insert that consumes the number, so an aborted insert
// never burns a visible gap.
type SequenceRepository interface {
	// NextValueInTx atomically increments and returns the named counter.
	NextValueInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error)
}
