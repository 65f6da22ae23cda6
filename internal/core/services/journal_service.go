package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
	"github.com/hesabix/hesabix_backend/internal/utils"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
	"github.com/hesabix/hesabix_backend/internal/utils/pagination"
)

// journalService records manual ledger entries. Every line moves
// debit−credit in its currency on its account through the same ledger path
// deposits and withdrawals use, so the cached balances stay consistent.
type journalService struct {
	journalRepo  portsrepo.JournalRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepository
	currencyRepo portsrepo.CurrencyReader
	accountSvc   portssvc.AccountSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepository,
	currencyRepo portsrepo.CurrencyReader,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		sequenceRepo: sequenceRepo,
		currencyRepo: currencyRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines validates line requests and converts them to domain lines.
// Exactly one of debit and credit must be positive on each line.
func (s *journalService) buildLines(ctx context.Context, entryID string, reqs []dto.JournalLineRequest) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, len(reqs))
	for i, lineReq := range reqs {
		if lineReq.DebitAmount.LessThan(decimal.Zero) || lineReq.CreditAmount.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
		}
		debitSet := lineReq.DebitAmount.GreaterThan(decimal.Zero)
		creditSet := lineReq.CreditAmount.GreaterThan(decimal.Zero)
		if debitSet == creditSet {
			return nil, fmt.Errorf("%w: each line needs exactly one of debit or credit", apperrors.ErrValidation)
		}

		currency, err := s.currencyRepo.FindCurrencyByID(ctx, lineReq.CurrencyID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, lineReq.CurrencyID)
		}
		rate := currency.Rate
		if lineReq.ExchangeRate != nil {
			rate = *lineReq.ExchangeRate
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}

		amount := lineReq.DebitAmount
		if creditSet {
			amount = lineReq.CreditAmount
		}
		lines[i] = domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			CurrencyID:   lineReq.CurrencyID,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
			ExchangeRate: rate,
			BaseAmount:   accounting.Round2(amount.Mul(rate)),
			Notes:        lineReq.Notes,
		}
	}
	return lines, nil
}

// applyLines pushes each line's signed delta through the account ledger.
// Sign flips for reversal. The unchecked movement path is used: a credit may
// drive a currency balance negative, and reversals must never be refused.
func (s *journalService) applyLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine, reverse bool, userID string) error {
	for _, line := range lines {
		delta := line.Delta()
		if reverse {
			delta = delta.Neg()
		}
		if err := s.accountSvc.ApplyUncheckedMovementInTx(ctx, tx, line.AccountID, line.CurrencyID, delta, userID); err != nil {
			return err
		}
	}
	return nil
}

// CreateEntry records a journal entry, assigning a generated entry number and
// applying every line's delta to its account in one transaction.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := utils.ParseDateOnly(req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date", apperrors.ErrValidation)
	}

	entryID := uuid.NewString()
	lines, err := s.buildLines(ctx, entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	seq, err := s.sequenceRepo.NextValueInTx(ctx, tx, portsrepo.SequenceJournalEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}
	entry.EntryNumber = fmt.Sprintf("J%06d", seq)

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := s.applyLines(ctx, tx, lines, false, userID); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry: %w", err)
	}

	logger.Info("Journal entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
	)
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

// ListEntries retrieves a cursor-paginated page of entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.TokenListParams) ([]domain.JournalEntry, string, error) {
	var afterDate, afterCreatedAt time.Time
	if params.NextToken != "" {
		var err error
		afterDate, afterCreatedAt, err = pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	entries, err := s.journalRepo.ListEntries(ctx, params.Limit, afterDate, afterCreatedAt)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(entries) == params.Limit {
		last := entries[len(entries)-1]
		nextToken = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
	}
	return entries, nextToken, nil
}

// UpdateEntry replaces the entry, reversing the old lines' deltas before
// applying the new ones.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	entryDate, err := utils.ParseDateOnly(req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date", apperrors.ErrValidation)
	}
	lines, err := s.buildLines(ctx, entryID, req.Lines)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.EntryDate = entryDate
	updated.Description = req.Description
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID
	updated.Lines = lines

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.applyLines(ctx, tx, existing.Lines, true, userID); err != nil {
		return nil, err
	}
	if err := s.journalRepo.UpdateEntryInTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := s.applyLines(ctx, tx, lines, false, userID); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry update: %w", err)
	}
	return &updated, nil
}

// DeleteEntry removes the entry, reversing its lines' deltas.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.applyLines(ctx, tx, existing.Lines, true, userID); err != nil {
		return err
	}
	if err := s.journalRepo.DeleteEntryInTx(ctx, tx, entryID); err != nil {
		return err
	}
	return s.journalRepo.Commit(ctx, tx)
}
