package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	"github.com/hesabix/hesabix_backend/internal/models"
	"github.com/hesabix/hesabix_backend/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `entry_id, entry_number, entry_date, description, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const journalLineColumns = `line_id, entry_id, account_id, currency_id, debit_amount, credit_amount, exchange_rate, base_amount, notes`

func scanJournalLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.CurrencyID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.ExchangeRate,
		&m.BaseAmount,
		&m.Notes,
	)
	return m, err
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	for _, line := range entry.Lines {
		m := mapping.ToModelJournalEntryLine(line)
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_entry_lines (`+journalLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`, m.LineID, m.EntryID, m.AccountID, m.CurrencyID,
			m.DebitAmount, m.CreditAmount, m.ExchangeRate, m.BaseAmount, m.Notes)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: account or currency does not exist", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to save journal line %s: %w", m.LineID, err)
		}
	}
	return nil
}

// SaveEntryInTx persists an entry header with its lines.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.EntryNumber, m.EntryDate, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", m.EntryID, err)
	}
	return r.insertLines(ctx, tx, entry)
}

// UpdateEntryInTx rewrites the header and replaces the lines.
func (r *PgxJournalRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, query, m.EntryID, m.EntryDate, m.Description, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear journal lines for %s: %w", m.EntryID, err)
	}
	return r.insertLines(ctx, tx, entry)
}

// DeleteEntryInTx removes the entry and its lines.
func (r *PgxJournalRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal lines for %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)

	lines, err := r.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var result []domain.JournalEntryLine
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		result = append(result, mapping.ToDomainJournalEntryLine(m))
	}
	return result, rows.Err()
}

// ListEntries retrieves entries ordered by (entry_date, created_at)
// descending, starting after the given cursor when non-zero.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE ($2::timestamptz = 'epoch'::timestamptz OR (entry_date, created_at) < ($2, $3))
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $1;
	`
	cursorDate := afterDate
	if afterDate.IsZero() {
		cursorDate = time.Unix(0, 0).UTC()
	}
	rows, err := r.Pool.Query(ctx, query, limit, cursorDate, afterCreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		return scanJournalEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}

	result := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		result[i] = mapping.ToDomainJournalEntry(m)
	}
	return result, nil
}
