package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/utils"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

// discountService manages redeemable discount codes. Codes are stored
// normalized (upper-cased, trimmed) and matched the same way.
type discountService struct {
	discountRepo portsrepo.DiscountCodeRepositoryFacade
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(discountRepo portsrepo.DiscountCodeRepositoryFacade) portssvc.DiscountSvcFacade {
	return &discountService{discountRepo: discountRepo}
}

var _ portssvc.DiscountSvcFacade = (*discountService)(nil)

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := utils.ParseDateOnly(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validateDiscountValue(kind domain.DiscountType, value decimal.Decimal) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: discount value must be positive", apperrors.ErrValidation)
	}
	if kind == domain.DiscountPercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percent discount cannot exceed 100", apperrors.ErrValidation)
	}
	return nil
}

func validateWindow(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("%w: validTo is before validFrom", apperrors.ErrValidation)
	}
	return nil
}

func (s *discountService) CreateCode(ctx context.Context, req dto.CreateDiscountCodeRequest, userID string) (*domain.DiscountCode, error) {
	normalized := normalizeDiscountCode(req.Code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: code must not be empty", apperrors.ErrValidation)
	}
	if err := validateDiscountValue(req.Type, req.Value); err != nil {
		return nil, err
	}
	if req.MinPurchase.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: minimum purchase must not be negative", apperrors.ErrValidation)
	}

	validFrom, err := parseOptionalDate(req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid validFrom date", apperrors.ErrValidation)
	}
	validTo, err := parseOptionalDate(req.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid validTo date", apperrors.ErrValidation)
	}
	if err := validateWindow(validFrom, validTo); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	code := domain.DiscountCode{
		CodeID:      uuid.NewString(),
		Code:        normalized,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		MaxUses:     req.MaxUses,
		UseCount:    0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.discountRepo.SaveCode(ctx, code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *discountService) GetCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error) {
	return s.discountRepo.FindCodeByID(ctx, codeID)
}

func (s *discountService) ListCodes(ctx context.Context, params dto.ListParams) ([]domain.DiscountCode, error) {
	codes, err := s.discountRepo.ListCodes(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return []domain.DiscountCode{}, nil
	}
	return codes, nil
}

func (s *discountService) UpdateCode(ctx context.Context, codeID string, req dto.UpdateDiscountCodeRequest, userID string) (*domain.DiscountCode, error) {
	code, err := s.discountRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		code.Type = *req.Type
	}
	if req.Value != nil {
		code.Value = *req.Value
	}
	if err := validateDiscountValue(code.Type, code.Value); err != nil {
		return nil, err
	}
	if req.MinPurchase != nil {
		if req.MinPurchase.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: minimum purchase must not be negative", apperrors.ErrValidation)
		}
		code.MinPurchase = *req.MinPurchase
	}
	if req.ValidFrom != nil {
		validFrom, err := parseOptionalDate(req.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid validFrom date", apperrors.ErrValidation)
		}
		code.ValidFrom = validFrom
	}
	if req.ValidTo != nil {
		validTo, err := parseOptionalDate(req.ValidTo)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid validTo date", apperrors.ErrValidation)
		}
		code.ValidTo = validTo
	}
	if err := validateWindow(code.ValidFrom, code.ValidTo); err != nil {
		return nil, err
	}
	if req.MaxUses != nil {
		code.MaxUses = req.MaxUses
	}
	code.LastUpdatedAt = time.Now().UTC()
	code.LastUpdatedBy = userID

	if err := s.discountRepo.UpdateCode(ctx, *code); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *discountService) DeleteCode(ctx context.Context, codeID string) error {
	if _, err := s.discountRepo.FindCodeByID(ctx, codeID); err != nil {
		return err
	}
	return s.discountRepo.DeleteCode(ctx, codeID)
}

// checkRedeemable returns a human-readable reason when the code cannot be
// applied to the subtotal, or empty when it can. Validity bounds are
// inclusive dates.
func checkRedeemable(code *domain.DiscountCode, subtotal decimal.Decimal, now time.Time) string {
	today := now.Truncate(24 * time.Hour)
	if code.ValidFrom != nil && today.Before(*code.ValidFrom) {
		return "code is not yet valid"
	}
	if code.ValidTo != nil && today.After(*code.ValidTo) {
		return "code has expired"
	}
	if code.MaxUses != nil && code.UseCount >= *code.MaxUses {
		return "code has reached its usage limit"
	}
	if subtotal.LessThan(code.MinPurchase) {
		return fmt.Sprintf("subtotal is below the minimum purchase of %s", code.MinPurchase)
	}
	return ""
}

// ValidateCode checks a code against a subtotal without redeeming it,
// returning the discount it would grant.
func (s *discountService) ValidateCode(ctx context.Context, codeStr string, subtotal decimal.Decimal) (*dto.ValidateDiscountResponse, error) {
	code, err := s.discountRepo.FindByCode(ctx, normalizeDiscountCode(codeStr))
	if err != nil {
		return nil, err
	}
	if reason := checkRedeemable(code, subtotal, time.Now().UTC()); reason != "" {
		return &dto.ValidateDiscountResponse{Valid: false, Reason: reason, DiscountAmount: decimal.Zero}, nil
	}
	kind := code.Type
	return &dto.ValidateDiscountResponse{
		Valid:          true,
		DiscountAmount: accounting.ComputeDiscount(subtotal, &kind, code.Value),
	}, nil
}

// RedeemCodeInTx validates the code inside the sale transaction and bumps its
// use count, returning the code row for the sale to apply.
func (s *discountService) RedeemCodeInTx(ctx context.Context, tx pgx.Tx, codeStr string, subtotal decimal.Decimal) (*domain.DiscountCode, error) {
	code, err := s.discountRepo.FindByCode(ctx, normalizeDiscountCode(codeStr))
	if err != nil {
		return nil, err
	}
	if reason := checkRedeemable(code, subtotal, time.Now().UTC()); reason != "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, reason)
	}
	if err := s.discountRepo.IncrementUseCountInTx(ctx, tx, code.CodeID); err != nil {
		return nil, err
	}
	code.UseCount++
	return code, nil
}
