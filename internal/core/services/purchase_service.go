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
	"github.com/hesabix/hesabix_backend/internal/utils"
	"github.com/hesabix/hesabix_backend/internal/utils/accounting"
	"github.com/hesabix/hesabix_backend/internal/utils/pagination"
)

// purchaseService records purchases. Each purchase line becomes an inventory
// batch that sales later deplete, so edits and deletes must respect
// quantities already sold.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepository
	currencyRepo portsrepo.CurrencyReader
	supplierRepo portsrepo.SupplierRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	unitRepo     portsrepo.UnitRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(
	purchaseRepo portsrepo.PurchaseRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepository,
	currencyRepo portsrepo.CurrencyReader,
	supplierRepo portsrepo.SupplierRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	unitRepo portsrepo.UnitRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		sequenceRepo: sequenceRepo,
		currencyRepo: currencyRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		unitRepo:     unitRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// buildPurchaseItems validates line requests and converts them to domain
// items, returning the items and their summed total.
func (s *purchaseService) buildPurchaseItems(ctx context.Context, purchaseID string, reqs []dto.PurchaseItemRequest) ([]domain.PurchaseItem, decimal.Decimal, error) {
	items := make([]domain.PurchaseItem, len(reqs))
	itemsTotal := decimal.Zero
	for i, itemReq := range reqs {
		if itemReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: item amount must be positive", apperrors.ErrValidation)
		}
		if itemReq.PerPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: item price must not be negative", apperrors.ErrValidation)
		}
		if _, err := s.productRepo.FindProductByID(ctx, itemReq.ProductID); err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: product %s does not exist", apperrors.ErrValidation, itemReq.ProductID)
		}
		if _, err := s.unitRepo.FindUnitByID(ctx, itemReq.UnitID); err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: unit %s does not exist", apperrors.ErrValidation, itemReq.UnitID)
		}

		var expiryDate *time.Time
		if itemReq.ExpiryDate != nil {
			parsed, err := utils.ParseDateOnly(*itemReq.ExpiryDate)
			if err != nil {
				return nil, decimal.Zero, fmt.Errorf("%w: invalid expiry date", apperrors.ErrValidation)
			}
			expiryDate = &parsed
		}

		total := accounting.Round2(itemReq.PerPrice.Mul(itemReq.Amount))
		items[i] = domain.PurchaseItem{
			PurchaseItemID: uuid.NewString(),
			PurchaseID:     purchaseID,
			ProductID:      itemReq.ProductID,
			UnitID:         itemReq.UnitID,
			PerPrice:       itemReq.PerPrice,
			Amount:         itemReq.Amount,
			Total:          total,
			CostPrice:      itemReq.CostPrice,
			WholesalePrice: itemReq.WholesalePrice,
			RetailPrice:    itemReq.RetailPrice,
			ExpiryDate:     expiryDate,
		}
		itemsTotal = itemsTotal.Add(total)
	}
	return items, itemsTotal, nil
}

func buildAdditionalCosts(purchaseID string, reqs []dto.AdditionalCostRequest) ([]domain.PurchaseAdditionalCost, decimal.Decimal, error) {
	costs := make([]domain.PurchaseAdditionalCost, len(reqs))
	costsTotal := decimal.Zero
	for i, costReq := range reqs {
		if costReq.Amount.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: cost amount must not be negative", apperrors.ErrValidation)
		}
		costs[i] = domain.PurchaseAdditionalCost{
			CostID:     uuid.NewString(),
			PurchaseID: purchaseID,
			Title:      costReq.Title,
			Amount:     costReq.Amount,
		}
		costsTotal = costsTotal.Add(costReq.Amount)
	}
	return costs, costsTotal, nil
}

func (s *purchaseService) resolveExchangeRate(ctx context.Context, currencyID string, override *decimal.Decimal) (decimal.Decimal, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, currencyID)
	}
	rate := currency.Rate
	if override != nil {
		rate = *override
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return rate, nil
}

// CreatePurchase records a purchase with its items and costs, assigning a
// generated batch number.
func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchaseDate, err := utils.ParseDateOnly(req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase date", apperrors.ErrValidation)
	}
	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("%w: supplier %s does not exist", apperrors.ErrValidation, req.SupplierID)
	}
	rate, err := s.resolveExchangeRate(ctx, req.CurrencyID, req.ExchangeRate)
	if err != nil {
		return nil, err
	}
	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
	}

	purchaseID := uuid.NewString()
	items, itemsTotal, err := s.buildPurchaseItems(ctx, purchaseID, req.Items)
	if err != nil {
		return nil, err
	}
	costs, costsTotal, err := buildAdditionalCosts(purchaseID, req.AdditionalCosts)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	purchase := domain.Purchase{
		PurchaseID:   purchaseID,
		SupplierID:   req.SupplierID,
		PurchaseDate: purchaseDate,
		CurrencyID:   req.CurrencyID,
		ExchangeRate: rate,
		TotalAmount:  itemsTotal.Add(costsTotal),
		PaidAmount:   req.PaidAmount,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Items:           items,
		AdditionalCosts: costs,
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	seq, err := s.sequenceRepo.NextValueInTx(ctx, tx, portsrepo.SequenceBatchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate batch number: %w", err)
	}
	purchase.BatchNumber = fmt.Sprintf("BATCH-%06d", seq)

	if err := s.purchaseRepo.SavePurchaseInTx(ctx, tx, purchase); err != nil {
		return nil, err
	}

	// Money already handed over at receiving: recorded as an account-less
	// payment row, so no account balance moves.
	if req.PaidAmount.IsPositive() {
		payment := domain.PurchasePayment{
			PaymentID:   uuid.NewString(),
			PurchaseID:  purchaseID,
			Amount:      req.PaidAmount,
			CurrencyID:  req.CurrencyID,
			Rate:        rate,
			BaseAmount:  accounting.Round2(req.PaidAmount.Mul(rate)),
			PaymentDate: purchaseDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.purchaseRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	logger.Info("Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("batch_number", purchase.BatchNumber),
	)
	return &purchase, nil
}

func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

// ListPurchases retrieves a cursor-paginated page of purchases.
func (s *purchaseService) ListPurchases(ctx context.Context, params dto.TokenListParams) ([]domain.Purchase, string, error) {
	var afterDate, afterCreatedAt time.Time
	if params.NextToken != "" {
		var err error
		afterDate, afterCreatedAt, err = pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	purchases, err := s.purchaseRepo.ListPurchases(ctx, params.Limit, afterDate, afterCreatedAt)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(purchases) == params.Limit {
		last := purchases[len(purchases)-1]
		nextToken = pagination.EncodeToken(last.PurchaseDate, last.CreatedAt)
	}
	return purchases, nextToken, nil
}

// UpdatePurchase replaces the purchase, rejecting item shrinkage below
// quantities already sold from its batches.
//
// Existing items keep their IDs when the request still contains a matching
// line, otherwise replaced lines with sold stock are rejected by the foreign
// key from sale_items.
func (s *purchaseService) UpdatePurchase(ctx context.Context, purchaseID string, req dto.UpdatePurchaseRequest, userID string) (*domain.Purchase, error) {
	existing, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	purchaseDate, err := utils.ParseDateOnly(req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase date", apperrors.ErrValidation)
	}
	if _, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("%w: supplier %s does not exist", apperrors.ErrValidation, req.SupplierID)
	}
	rate, err := s.resolveExchangeRate(ctx, req.CurrencyID, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	items, itemsTotal, err := s.buildPurchaseItems(ctx, purchaseID, req.Items)
	if err != nil {
		return nil, err
	}
	// Reuse the stored item ID when a line matches product and unit, so sale
	// references survive the replace.
	remaining := make([]domain.PurchaseItem, len(existing.Items))
	copy(remaining, existing.Items)
	for i := range items {
		for j := range remaining {
			if remaining[j].PurchaseItemID != "" &&
				remaining[j].ProductID == items[i].ProductID &&
				remaining[j].UnitID == items[i].UnitID {
				items[i].PurchaseItemID = remaining[j].PurchaseItemID
				remaining[j].PurchaseItemID = ""
				break
			}
		}
	}

	costs, costsTotal, err := buildAdditionalCosts(purchaseID, req.AdditionalCosts)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.SupplierID = req.SupplierID
	updated.PurchaseDate = purchaseDate
	updated.CurrencyID = req.CurrencyID
	updated.ExchangeRate = rate
	updated.TotalAmount = itemsTotal.Add(costsTotal)
	updated.Notes = req.Notes
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID
	updated.Items = items
	updated.AdditionalCosts = costs

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	// Shrinking a batch below its already-sold quantity would strand sold
	// stock, so compare new quantities against depletion first.
	sold, err := s.purchaseRepo.SoldQuantityByPurchaseItem(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	unitIDs := make([]string, 0, len(items))
	for _, item := range items {
		unitIDs = append(unitIDs, item.UnitID)
	}
	units, err := s.unitRepo.FindUnitsByIDs(ctx, unitIDs)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		soldQty, ok := sold[item.PurchaseItemID]
		if !ok || soldQty.IsZero() {
			continue
		}
		newBaseQty := accounting.ToBaseQuantity(item.Amount, units[item.UnitID].Ratio)
		if newBaseQty.Add(accounting.StockEpsilon).LessThan(soldQty) {
			return nil, fmt.Errorf("%w: batch %s already sold %s base units", apperrors.ErrConflict, item.PurchaseItemID, soldQty)
		}
	}

	if err := s.purchaseRepo.UpdatePurchaseInTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase update: %w", err)
	}
	return &updated, nil
}

// DeletePurchase removes a purchase whose batches are entirely unsold,
// reversing any account-linked payments.
func (s *purchaseService) DeletePurchase(ctx context.Context, purchaseID string, userID string) error {
	if _, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return err
	}

	payments, err := s.purchaseRepo.ListPaymentsByPurchase(ctx, purchaseID)
	if err != nil {
		return err
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	sold, err := s.purchaseRepo.SoldQuantityByPurchaseItem(ctx, tx, purchaseID)
	if err != nil {
		return err
	}
	for itemID, qty := range sold {
		if qty.GreaterThan(accounting.StockEpsilon) {
			return fmt.Errorf("%w: batch %s has sold stock", apperrors.ErrConflict, itemID)
		}
	}

	// Money paid out of accounts flows back on delete.
	for _, payment := range payments {
		if payment.AccountID == nil {
			continue
		}
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *payment.AccountID, payment.CurrencyID, payment.Amount, userID); err != nil {
			return err
		}
	}

	if err := s.purchaseRepo.DeletePurchaseInTx(ctx, tx, purchaseID); err != nil {
		return err
	}
	return s.purchaseRepo.Commit(ctx, tx)
}

// AddPayment records a payment against the purchase, withdrawing from the
// linked account when one is given.
func (s *purchaseService) AddPayment(ctx context.Context, purchaseID string, req dto.CreatePaymentRequest, userID string) (*domain.PurchasePayment, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	paymentDate, err := utils.ParseDateOnly(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date", apperrors.ErrValidation)
	}
	rate, err := s.resolveExchangeRate(ctx, req.CurrencyID, req.Rate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.PurchasePayment{
		PaymentID:   uuid.NewString(),
		PurchaseID:  purchaseID,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		CurrencyID:  req.CurrencyID,
		Rate:        rate,
		BaseAmount:  accounting.Round2(req.Amount.Mul(rate)),
		PaymentDate: paymentDate,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	if err := s.purchaseRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, req.Amount.Neg(), userID); err != nil {
			return nil, err
		}
	}

	paid, err := s.purchaseRepo.SumPaymentsInTx(ctx, tx, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.UpdatePaidAmountInTx(ctx, tx, purchaseID, paid, userID, now); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	purchase.PaidAmount = paid
	return &payment, nil
}

func (s *purchaseService) ListPayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	if _, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return nil, err
	}
	payments, err := s.purchaseRepo.ListPaymentsByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.PurchasePayment{}, nil
	}
	return payments, nil
}

// DeletePayment removes a payment, reversing its account effect.
func (s *purchaseService) DeletePayment(ctx context.Context, purchaseID string, paymentID string, userID string) error {
	payment, err := s.purchaseRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.PurchaseID != purchaseID {
		return fmt.Errorf("%w: payment %s does not belong to purchase %s", apperrors.ErrNotFound, paymentID, purchaseID)
	}

	tx, err := s.purchaseRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.purchaseRepo.Rollback(ctx, tx)

	if err := s.purchaseRepo.DeletePaymentInTx(ctx, tx, paymentID); err != nil {
		return err
	}
	if payment.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *payment.AccountID, payment.CurrencyID, payment.Amount, userID); err != nil {
			return err
		}
	}

	paid, err := s.purchaseRepo.SumPaymentsInTx(ctx, tx, purchaseID)
	if err != nil {
		return err
	}
	if err := s.purchaseRepo.UpdatePaidAmountInTx(ctx, tx, purchaseID, paid, userID, time.Now().UTC()); err != nil {
		return err
	}

	return s.purchaseRepo.Commit(ctx, tx)
}
