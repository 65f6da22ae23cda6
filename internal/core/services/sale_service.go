package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

// saleService records sales. Product lines tied to a purchase batch deplete
// that batch; the oversell check runs inside the sale transaction with the
// batch rows locked, so two concurrent sales cannot both pass it.
type saleService struct {
	saleRepo      portsrepo.SaleRepositoryWithTx
	inventoryRepo portsrepo.InventoryRepository
	currencyRepo  portsrepo.CurrencyReader
	customerRepo  portsrepo.CustomerRepositoryFacade
	productRepo   portsrepo.ProductRepositoryFacade
	unitRepo      portsrepo.UnitRepositoryFacade
	discountSvc   portssvc.DiscountSvcFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepository,
	currencyRepo portsrepo.CurrencyReader,
	customerRepo portsrepo.CustomerRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	unitRepo portsrepo.UnitRepositoryFacade,
	discountSvc portssvc.DiscountSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		currencyRepo:  currencyRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		unitRepo:      unitRepo,
		discountSvc:   discountSvc,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) resolveExchangeRate(ctx context.Context, currencyID string, override *decimal.Decimal) (decimal.Decimal, error) {
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

// buildSaleItems validates product lines and converts them to domain items,
// returning the items and their summed post-discount totals.
func (s *saleService) buildSaleItems(ctx context.Context, saleID string, reqs []dto.SaleItemRequest) ([]domain.SaleItem, decimal.Decimal, error) {
	items := make([]domain.SaleItem, len(reqs))
	subtotal := decimal.Zero
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

		total := accounting.LineTotal(itemReq.PerPrice, itemReq.Amount, itemReq.DiscountType, itemReq.DiscountValue)
		items[i] = domain.SaleItem{
			SaleItemID:     uuid.NewString(),
			SaleID:         saleID,
			ProductID:      itemReq.ProductID,
			UnitID:         itemReq.UnitID,
			PurchaseItemID: itemReq.PurchaseItemID,
			PerPrice:       itemReq.PerPrice,
			Amount:         itemReq.Amount,
			DiscountType:   itemReq.DiscountType,
			DiscountValue:  itemReq.DiscountValue,
			Total:          total,
		}
		subtotal = subtotal.Add(total)
	}
	return items, subtotal, nil
}

func buildServiceItems(saleID string, reqs []dto.SaleServiceItemRequest) ([]domain.SaleServiceItem, decimal.Decimal, error) {
	serviceItems := make([]domain.SaleServiceItem, len(reqs))
	subtotal := decimal.Zero
	for i, svcReq := range reqs {
		if svcReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: service amount must be positive", apperrors.ErrValidation)
		}
		if svcReq.PerPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: service price must not be negative", apperrors.ErrValidation)
		}
		total := accounting.LineTotal(svcReq.PerPrice, svcReq.Amount, svcReq.DiscountType, svcReq.DiscountValue)
		serviceItems[i] = domain.SaleServiceItem{
			ServiceItemID: uuid.NewString(),
			SaleID:        saleID,
			Title:         svcReq.Title,
			PerPrice:      svcReq.PerPrice,
			Amount:        svcReq.Amount,
			DiscountType:  svcReq.DiscountType,
			DiscountValue: svcReq.DiscountValue,
			Total:         total,
		}
		subtotal = subtotal.Add(total)
	}
	return serviceItems, subtotal, nil
}

func buildSaleCosts(saleID string, reqs []dto.AdditionalCostRequest) ([]domain.SaleAdditionalCost, decimal.Decimal, error) {
	costs := make([]domain.SaleAdditionalCost, len(reqs))
	costsTotal := decimal.Zero
	for i, costReq := range reqs {
		if costReq.Amount.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: cost amount must not be negative", apperrors.ErrValidation)
		}
		costs[i] = domain.SaleAdditionalCost{
			CostID: uuid.NewString(),
			SaleID: saleID,
			Title:  costReq.Title,
			Amount: costReq.Amount,
		}
		costsTotal = costsTotal.Add(costReq.Amount)
	}
	return costs, costsTotal, nil
}

// checkBatchStock locks the batches referenced by the items and rejects any
// whose combined requested quantity exceeds what remains. Requested
// quantities are summed per batch across lines first, so two lines drawing
// from the same batch cannot each pass individually.
func (s *saleService) checkBatchStock(ctx context.Context, tx pgx.Tx, items []domain.SaleItem, excludeSaleID string) error {
	requested := make(map[string]decimal.Decimal)
	unitIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.PurchaseItemID == nil {
			continue
		}
		unitIDs = append(unitIDs, item.UnitID)
	}
	if len(unitIDs) == 0 {
		return nil
	}
	units, err := s.unitRepo.FindUnitsByIDs(ctx, unitIDs)
	if err != nil {
		return err
	}

	batchIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.PurchaseItemID == nil {
			continue
		}
		baseQty := accounting.ToBaseQuantity(item.Amount, units[item.UnitID].Ratio)
		if _, seen := requested[*item.PurchaseItemID]; !seen {
			batchIDs = append(batchIDs, *item.PurchaseItemID)
		}
		requested[*item.PurchaseItemID] = requested[*item.PurchaseItemID].Add(baseQty)
	}

	remaining, err := s.inventoryRepo.RemainingByPurchaseItemForUpdate(ctx, tx, batchIDs, excludeSaleID)
	if err != nil {
		return err
	}
	for batchID, qty := range requested {
		if qty.GreaterThan(remaining[batchID].Add(accounting.StockEpsilon)) {
			return fmt.Errorf("%w: batch %s has only %s base units remaining", apperrors.ErrInsufficientStock, batchID, remaining[batchID])
		}
	}
	return nil
}

func normalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateSale records a sale with its items, services and costs, checking
// batch stock and redeeming the discount code in the same transaction.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	saleDate, err := utils.ParseDateOnly(req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sale date", apperrors.ErrValidation)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, req.CustomerID)
	}
	if len(req.Items) == 0 && len(req.ServiceItems) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item or service", apperrors.ErrValidation)
	}
	rate, err := s.resolveExchangeRate(ctx, req.CurrencyID, req.ExchangeRate)
	if err != nil {
		return nil, err
	}
	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
	}

	saleID := uuid.NewString()
	items, itemsSubtotal, err := s.buildSaleItems(ctx, saleID, req.Items)
	if err != nil {
		return nil, err
	}
	serviceItems, servicesSubtotal, err := buildServiceItems(saleID, req.ServiceItems)
	if err != nil {
		return nil, err
	}
	costs, costsTotal, err := buildSaleCosts(saleID, req.AdditionalCosts)
	if err != nil {
		return nil, err
	}
	subtotal := itemsSubtotal.Add(servicesSubtotal)

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:        saleID,
		CustomerID:    req.CustomerID,
		SaleDate:      saleDate,
		CurrencyID:    req.CurrencyID,
		ExchangeRate:  rate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		PaidAmount:    req.PaidAmount,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Items:           items,
		ServiceItems:    serviceItems,
		AdditionalCosts: costs,
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := s.checkBatchStock(ctx, tx, items, ""); err != nil {
		return nil, err
	}

	// A redeemed code replaces any explicit order-level discount.
	if req.DiscountCode != nil && normalizeDiscountCode(*req.DiscountCode) != "" {
		normalized := normalizeDiscountCode(*req.DiscountCode)
		code, err := s.discountSvc.RedeemCodeInTx(ctx, tx, normalized, subtotal)
		if err != nil {
			return nil, err
		}
		codeType := code.Type
		sale.DiscountType = &codeType
		sale.DiscountValue = code.Value
		sale.DiscountCode = &normalized
	}
	sale.DiscountAmount = accounting.ComputeDiscount(subtotal, sale.DiscountType, sale.DiscountValue)
	sale.TotalAmount = accounting.Round2(subtotal.Sub(sale.DiscountAmount).Add(costsTotal))
	sale.BaseAmount = accounting.Round2(sale.TotalAmount.Mul(rate))

	if err := s.saleRepo.SaveSaleInTx(ctx, tx, sale); err != nil {
		return nil, err
	}

	// Money already received at the counter: recorded as an account-less
	// payment row, so no account balance moves.
	if req.PaidAmount.IsPositive() {
		payment := domain.SalePayment{
			PaymentID:   uuid.NewString(),
			SaleID:      saleID,
			Amount:      req.PaidAmount,
			CurrencyID:  req.CurrencyID,
			Rate:        rate,
			BaseAmount:  accounting.Round2(req.PaidAmount.Mul(rate)),
			PaymentDate: saleDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.saleRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	logger.Info("Sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("total_amount", sale.TotalAmount.String()),
	)
	return &sale, nil
}

func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

// ListSales retrieves a cursor-paginated page of sales.
func (s *saleService) ListSales(ctx context.Context, params dto.TokenListParams) ([]domain.Sale, string, error) {
	var afterDate, afterCreatedAt time.Time
	if params.NextToken != "" {
		var err error
		afterDate, afterCreatedAt, err = pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	sales, err := s.saleRepo.ListSales(ctx, params.Limit, afterDate, afterCreatedAt)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(sales) == params.Limit {
		last := sales[len(sales)-1]
		nextToken = pagination.EncodeToken(last.SaleDate, last.CreatedAt)
	}
	return sales, nextToken, nil
}

// UpdateSale replaces the sale, re-running the stock checks with the sale's
// own depletion excluded.
//
// Keeping the same discount code keeps the code's terms without redeeming it
// again; switching to a different code redeems the new one. The old code's
// use count is not given back.
func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error) {
	existing, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	saleDate, err := utils.ParseDateOnly(req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sale date", apperrors.ErrValidation)
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, req.CustomerID)
	}
	if len(req.Items) == 0 && len(req.ServiceItems) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item or service", apperrors.ErrValidation)
	}
	rate, err := s.resolveExchangeRate(ctx, req.CurrencyID, req.ExchangeRate)
	if err != nil {
		return nil, err
	}

	items, itemsSubtotal, err := s.buildSaleItems(ctx, saleID, req.Items)
	if err != nil {
		return nil, err
	}
	serviceItems, servicesSubtotal, err := buildServiceItems(saleID, req.ServiceItems)
	if err != nil {
		return nil, err
	}
	costs, costsTotal, err := buildSaleCosts(saleID, req.AdditionalCosts)
	if err != nil {
		return nil, err
	}
	subtotal := itemsSubtotal.Add(servicesSubtotal)

	updated := *existing
	updated.CustomerID = req.CustomerID
	updated.SaleDate = saleDate
	updated.CurrencyID = req.CurrencyID
	updated.ExchangeRate = rate
	updated.DiscountType = req.DiscountType
	updated.DiscountValue = req.DiscountValue
	updated.DiscountCode = nil
	updated.Notes = req.Notes
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = userID
	updated.Items = items
	updated.ServiceItems = serviceItems
	updated.AdditionalCosts = costs

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := s.checkBatchStock(ctx, tx, items, saleID); err != nil {
		return nil, err
	}

	if req.DiscountCode != nil && normalizeDiscountCode(*req.DiscountCode) != "" {
		normalized := normalizeDiscountCode(*req.DiscountCode)
		if existing.DiscountCode != nil && *existing.DiscountCode == normalized {
			updated.DiscountType = existing.DiscountType
			updated.DiscountValue = existing.DiscountValue
			updated.DiscountCode = existing.DiscountCode
		} else {
			code, err := s.discountSvc.RedeemCodeInTx(ctx, tx, normalized, subtotal)
			if err != nil {
				return nil, err
			}
			codeType := code.Type
			updated.DiscountType = &codeType
			updated.DiscountValue = code.Value
			updated.DiscountCode = &normalized
		}
	}
	updated.DiscountAmount = accounting.ComputeDiscount(subtotal, updated.DiscountType, updated.DiscountValue)
	updated.TotalAmount = accounting.Round2(subtotal.Sub(updated.DiscountAmount).Add(costsTotal))
	updated.BaseAmount = accounting.Round2(updated.TotalAmount.Mul(rate))

	if err := s.saleRepo.UpdateSaleInTx(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit sale update: %w", err)
	}
	return &updated, nil
}

// DeleteSale removes a sale, restoring batch stock implicitly and reversing
// any account-linked payments. Stock needs no explicit restore because
// remaining quantities are derived from the depletion rows being deleted.
func (s *saleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
		return err
	}
	payments, err := s.saleRepo.ListPaymentsBySale(ctx, saleID)
	if err != nil {
		return err
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	// Payments deposited money; deleting the sale takes it back out.
	for _, payment := range payments {
		if payment.AccountID == nil {
			continue
		}
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *payment.AccountID, payment.CurrencyID, payment.Amount.Neg(), userID); err != nil {
			return err
		}
	}

	if err := s.saleRepo.DeleteSaleInTx(ctx, tx, saleID); err != nil {
		return err
	}
	return s.saleRepo.Commit(ctx, tx)
}

// recomputeDerivedTotals rewrites the sale's discount, total and base amounts
// from its current lines, keeping the stored discount terms.
func recomputeDerivedTotals(sale *domain.Sale) {
	subtotal := decimal.Zero
	for _, item := range sale.Items {
		subtotal = subtotal.Add(item.Total)
	}
	for _, svc := range sale.ServiceItems {
		subtotal = subtotal.Add(svc.Total)
	}
	costsTotal := decimal.Zero
	for _, cost := range sale.AdditionalCosts {
		costsTotal = costsTotal.Add(cost.Amount)
	}
	sale.DiscountAmount = accounting.ComputeDiscount(subtotal, sale.DiscountType, sale.DiscountValue)
	sale.TotalAmount = accounting.Round2(subtotal.Sub(sale.DiscountAmount).Add(costsTotal))
	sale.BaseAmount = accounting.Round2(sale.TotalAmount.Mul(sale.ExchangeRate))
}

// commitSaleItemChange re-checks stock for the sale's full line set, applies
// the single-row write and rewrites the header totals, all in one transaction.
func (s *saleService) commitSaleItemChange(ctx context.Context, sale *domain.Sale, userID string, write func(tx pgx.Tx) error) error {
	recomputeDerivedTotals(sale)
	now := time.Now().UTC()
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = userID

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := s.checkBatchStock(ctx, tx, sale.Items, sale.SaleID); err != nil {
		return err
	}
	if err := write(tx); err != nil {
		return err
	}
	if err := s.saleRepo.UpdateSaleTotalsInTx(ctx, tx, sale.SaleID, sale.DiscountAmount, sale.TotalAmount, sale.BaseAmount, userID, now); err != nil {
		return err
	}
	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit sale item change: %w", err)
	}
	return nil
}

// AddSaleItem appends a product line to an existing sale and recomputes the
// sale's derived totals.
func (s *saleService) AddSaleItem(ctx context.Context, saleID string, req dto.SaleItemRequest, userID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	items, _, err := s.buildSaleItems(ctx, saleID, []dto.SaleItemRequest{req})
	if err != nil {
		return nil, err
	}
	item := items[0]
	sale.Items = append(sale.Items, item)

	err = s.commitSaleItemChange(ctx, sale, userID, func(tx pgx.Tx) error {
		return s.saleRepo.SaveSaleItemInTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// UpdateSaleItem rewrites a single product line. The stock check excludes the
// sale's own depletion, so a line kept on the same batch gives back what it
// already consumed before the new quantity is compared.
func (s *saleService) UpdateSaleItem(ctx context.Context, saleID string, itemID string, req dto.SaleItemRequest, userID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range sale.Items {
		if sale.Items[i].SaleItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s does not belong to sale %s", apperrors.ErrNotFound, itemID, saleID)
	}

	items, _, err := s.buildSaleItems(ctx, saleID, []dto.SaleItemRequest{req})
	if err != nil {
		return nil, err
	}
	replacement := items[0]
	replacement.SaleItemID = itemID
	sale.Items[idx] = replacement

	err = s.commitSaleItemChange(ctx, sale, userID, func(tx pgx.Tx) error {
		return s.saleRepo.UpdateSaleItemInTx(ctx, tx, replacement)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSaleItem removes a single product line and recomputes the sale's
// derived totals. The last remaining line of a sale cannot be removed.
func (s *saleService) DeleteSaleItem(ctx context.Context, saleID string, itemID string, userID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range sale.Items {
		if sale.Items[i].SaleItemID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %s does not belong to sale %s", apperrors.ErrNotFound, itemID, saleID)
	}
	if len(sale.Items) == 1 && len(sale.ServiceItems) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item or service", apperrors.ErrValidation)
	}
	sale.Items = append(sale.Items[:idx], sale.Items[idx+1:]...)

	err = s.commitSaleItemChange(ctx, sale, userID, func(tx pgx.Tx) error {
		return s.saleRepo.DeleteSaleItemInTx(ctx, tx, saleID, itemID)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// AddPayment records a payment against the sale, depositing into the linked
// account when one is given.
func (s *saleService) AddPayment(ctx context.Context, saleID string, req dto.CreatePaymentRequest, userID string) (*domain.SalePayment, error) {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
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
	payment := domain.SalePayment{
		PaymentID:   uuid.NewString(),
		SaleID:      saleID,
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

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := s.saleRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}
	if req.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *req.AccountID, req.CurrencyID, req.Amount, userID); err != nil {
			return nil, err
		}
	}

	paid, err := s.saleRepo.SumPaymentsInTx(ctx, tx, saleID)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.UpdatePaidAmountInTx(ctx, tx, saleID, paid, userID, now); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}
	return &payment, nil
}

func (s *saleService) ListPayments(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	if _, err := s.saleRepo.FindSaleByID(ctx, saleID); err != nil {
		return nil, err
	}
	payments, err := s.saleRepo.ListPaymentsBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.SalePayment{}, nil
	}
	return payments, nil
}

// DeletePayment removes a payment, reversing its account effect.
func (s *saleService) DeletePayment(ctx context.Context, saleID string, paymentID string, userID string) error {
	payment, err := s.saleRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.SaleID != saleID {
		return fmt.Errorf("%w: payment %s does not belong to sale %s", apperrors.ErrNotFound, paymentID, saleID)
	}

	tx, err := s.saleRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.saleRepo.Rollback(ctx, tx)

	if err := s.saleRepo.DeletePaymentInTx(ctx, tx, paymentID); err != nil {
		return err
	}
	if payment.AccountID != nil {
		if err := s.accountSvc.ApplyMovementInTx(ctx, tx, *payment.AccountID, payment.CurrencyID, payment.Amount.Neg(), userID); err != nil {
			return err
		}
	}

	paid, err := s.saleRepo.SumPaymentsInTx(ctx, tx, saleID)
	if err != nil {
		return err
	}
	if err := s.saleRepo.UpdatePaidAmountInTx(ctx, tx, saleID, paid, userID, time.Now().UTC()); err != nil {
		return err
	}

	return s.saleRepo.Commit(ctx, tx)
}
