package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
)

// inventoryService answers stock questions. Quantities are derived live from
// purchase lines minus sale depletion, so there is no stock table to keep
// consistent.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
	productRepo   portsrepo.ProductRepositoryFacade
	unitRepo      portsrepo.UnitRepositoryFacade
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, productRepo portsrepo.ProductRepositoryFacade, unitRepo portsrepo.UnitRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, productRepo: productRepo, unitRepo: unitRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) ListProductBatches(ctx context.Context, productID string, includeEmpty bool) ([]domain.ProductBatch, error) {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return nil, err
	}
	batches, err := s.inventoryRepo.ListProductBatches(ctx, productID, includeEmpty)
	if err != nil {
		return nil, err
	}
	if batches == nil {
		return []domain.ProductBatch{}, nil
	}
	return batches, nil
}

// GetProductStock returns the product's total remaining stock in base units,
// or re-expressed in the given unit when unitID is non-empty.
func (s *inventoryService) GetProductStock(ctx context.Context, productID string, unitID string) (decimal.Decimal, error) {
	total, err := s.inventoryRepo.GetProductStock(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if unitID == "" {
		return total, nil
	}
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unit %s does not exist", apperrors.ErrValidation, unitID)
	}
	return accounting.FromBaseQuantity(total, unit.Ratio).Round(accounting.QuantityScale), nil
}
