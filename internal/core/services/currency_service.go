package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

// currencyService provides currency management operations.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryWithTx
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryWithTx) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Name:       req.Name,
		Symbol:     req.Symbol,
		Rate:       req.Rate,
		IsBase:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.IsBase {
		// The base currency's rate is pinned to 1 by definition.
		currency.Rate = decimal.NewFromInt(1)
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	if req.IsBase {
		promoted, err := s.SetBaseCurrency(ctx, currency.CurrencyID, userID)
		if err != nil {
			return nil, err
		}
		return promoted, nil
	}
	return &currency, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.Rate != nil {
		if currency.IsBase && !req.Rate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: base currency rate is pinned to 1", apperrors.ErrValidation)
		}
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
		}
		currency.Rate = *req.Rate
	}
	currency.LastUpdatedAt = time.Now().UTC()
	currency.LastUpdatedBy = userID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, currencyID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return err
	}
	if currency.IsBase {
		return fmt.Errorf("%w: the base currency cannot be deleted", apperrors.ErrConflict)
	}
	return s.currencyRepo.DeleteCurrency(ctx, currencyID)
}

// SetBaseCurrency atomically makes the given currency the single base,
// clearing the flag elsewhere and pinning its rate to 1.
func (s *currencyService) SetBaseCurrency(ctx context.Context, currencyID string, userID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID); err != nil {
		return nil, err
	}

	tx, err := s.currencyRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.currencyRepo.Rollback(ctx, tx)

	if err := s.currencyRepo.ClearBaseFlagInTx(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.currencyRepo.SetBaseFlagInTx(ctx, tx, currencyID, userID); err != nil {
		return nil, err
	}

	if err := s.currencyRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit base currency change: %w", err)
	}

	logger.Info("Base currency changed", slog.String("currency_id", currencyID))
	return s.currencyRepo.FindCurrencyByID(ctx, currencyID)
}

// ConvertAmount converts an amount between two currencies through base:
// base = amount * fromRate, converted = base / toRate.
func (s *currencyService) ConvertAmount(ctx context.Context, fromID string, toID string, amount decimal.Decimal) (decimal.Decimal, error) {
	from, err := s.currencyRepo.FindCurrencyByID(ctx, fromID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, fromID)
	}
	to, err := s.currencyRepo.FindCurrencyByID(ctx, toID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, toID)
	}
	if to.Rate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: currency %s has zero rate", apperrors.ErrValidation, toID)
	}
	return accounting.Round2(amount.Mul(from.Rate).Div(to.Rate)), nil
}
