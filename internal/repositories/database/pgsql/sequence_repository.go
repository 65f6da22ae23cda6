package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document number sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValueInTx atomically increments and returns the named counter. The
// upsert holds a row lock until the surrounding transaction ends, so numbers
// are handed out strictly one at a time per sequence.
func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	query := `
		INSERT INTO sequences (name, current_value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET current_value = sequences.current_value + 1
		RETURNING current_value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return value, nil
}
