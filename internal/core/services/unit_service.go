package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// unitService provides measurement unit operations. A unit's ratio expresses
// how many base units it contains (e.g. carton of 24 has ratio 24).
type unitService struct {
	unitRepo portsrepo.UnitRepositoryFacade
}

// NewUnitService creates a new UnitService.
func NewUnitService(unitRepo portsrepo.UnitRepositoryFacade) portssvc.UnitSvcFacade {
	return &unitService{unitRepo: unitRepo}
}

var _ portssvc.UnitSvcFacade = (*unitService)(nil)

func (s *unitService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest, userID string) (*domain.Unit, error) {
	if req.Ratio.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: ratio must be positive", apperrors.ErrValidation)
	}
	if req.IsBase && !req.Ratio.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: a base unit must have ratio 1", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	unit := domain.Unit{
		UnitID:  uuid.NewString(),
		Name:    req.Name,
		GroupID: req.GroupID,
		Ratio:   req.Ratio,
		IsBase:  req.IsBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.unitRepo.SaveUnit(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

func (s *unitService) GetUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

func (s *unitService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	units, err := s.unitRepo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	if units == nil {
		return []domain.Unit{}, nil
	}
	return units, nil
}

func (s *unitService) UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, userID string) (*domain.Unit, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		unit.Name = *req.Name
	}
	if req.Ratio != nil {
		if req.Ratio.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: ratio must be positive", apperrors.ErrValidation)
		}
		if unit.IsBase && !req.Ratio.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: a base unit must have ratio 1", apperrors.ErrValidation)
		}
		unit.Ratio = *req.Ratio
	}
	unit.LastUpdatedAt = time.Now().UTC()
	unit.LastUpdatedBy = userID

	if err := s.unitRepo.UpdateUnit(ctx, *unit); err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

func (s *unitService) DeleteUnit(ctx context.Context, unitID string) error {
	if _, err := s.unitRepo.FindUnitByID(ctx, unitID); err != nil {
		return err
	}
	return s.unitRepo.DeleteUnit(ctx, unitID)
}
