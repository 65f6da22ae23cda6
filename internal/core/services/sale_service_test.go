package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/core/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// MockSaleRepository is a mock implementation of portsrepo.SaleRepositoryWithTx.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, limit, afterDate, afterCreatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSaleInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	args := m.Called(ctx, tx, saleID)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, saleID string, paidAmount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, saleID, paidAmount, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleItemInTx(ctx context.Context, tx pgx.Tx, item domain.SaleItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSaleItemInTx(ctx context.Context, tx pgx.Tx, saleID string, saleItemID string) error {
	args := m.Called(ctx, tx, saleID, saleItemID)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleTotalsInTx(ctx context.Context, tx pgx.Tx, saleID string, discountAmount, totalAmount, baseAmount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, saleID, discountAmount, totalAmount, baseAmount, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.SalePayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockSaleRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) ListPaymentsBySale(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	args := m.Called(ctx, tx, paymentID)
	return args.Error(0)
}

func (m *MockSaleRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, saleID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, saleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSaleRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of portsrepo.CustomerRepositoryFacade.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, search string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockUnitRepository is a mock implementation of portsrepo.UnitRepositoryFacade.
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindUnitsByIDs(ctx context.Context, unitIDs []string) (map[string]domain.Unit, error) {
	args := m.Called(ctx, unitIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) DeleteUnit(ctx context.Context, unitID string) error {
	args := m.Called(ctx, unitID)
	return args.Error(0)
}

// MockDiscountService is a mock implementation of portssvc.DiscountSvcFacade.
type MockDiscountService struct {
	mock.Mock
}

func (m *MockDiscountService) CreateCode(ctx context.Context, req dto.CreateDiscountCodeRequest, userID string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountService) GetCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountService) ListCodes(ctx context.Context, params dto.ListParams) ([]domain.DiscountCode, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountService) UpdateCode(ctx context.Context, codeID string, req dto.UpdateDiscountCodeRequest, userID string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, codeID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountService) DeleteCode(ctx context.Context, codeID string) error {
	args := m.Called(ctx, codeID)
	return args.Error(0)
}

func (m *MockDiscountService) ValidateCode(ctx context.Context, code string, subtotal decimal.Decimal) (*dto.ValidateDiscountResponse, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ValidateDiscountResponse), args.Error(1)
}

func (m *MockDiscountService) RedeemCodeInTx(ctx context.Context, tx pgx.Tx, code string, subtotal decimal.Decimal) (*domain.DiscountCode, error) {
	args := m.Called(ctx, tx, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo      *MockSaleRepository
	mockInventoryRepo *MockInventoryRepository
	mockCurrencyRepo  *MockCurrencyReader
	mockCustomerRepo  *MockCustomerRepository
	mockProductRepo   *MockProductRepository
	mockUnitRepo      *MockUnitRepository
	mockDiscountSvc   *MockDiscountService
	mockAccountSvc    *MockAccountService
	service           portssvc.SaleSvcFacade
	ctx               context.Context
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.mockDiscountSvc = new(MockDiscountService)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewSaleService(
		suite.mockSaleRepo,
		suite.mockInventoryRepo,
		suite.mockCurrencyRepo,
		suite.mockCustomerRepo,
		suite.mockProductRepo,
		suite.mockUnitRepo,
		suite.mockDiscountSvc,
		suite.mockAccountSvc,
	)
	suite.ctx = context.Background()
}

func (suite *SaleServiceTestSuite) expectTransaction() {
	suite.mockSaleRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSaleRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockSaleRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *SaleServiceTestSuite) expectCatalog() {
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(2)}, nil).Once()
}

func (suite *SaleServiceTestSuite) TestCreateSale_ComputesTotals() {
	percent := domain.DiscountPercent
	req := dto.CreateSaleRequest{
		CustomerID:    "cust-1",
		SaleDate:      "2026-07-15",
		CurrencyID:    "cur-1",
		DiscountType:  &percent,
		DiscountValue: decimal.NewFromInt(10),
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(2)},
		},
		ServiceItems: []dto.SaleServiceItemRequest{
			{Title: "Delivery setup", PerPrice: decimal.NewFromInt(50), Amount: decimal.NewFromInt(1)},
		},
		AdditionalCosts: []dto.AdditionalCostRequest{
			{Title: "Shipping", Amount: decimal.NewFromInt(10)},
		},
	}
	suite.expectCatalog()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	// subtotal 250, order discount 10% = 25, costs 10 -> total 235, base 470
	suite.mockSaleRepo.On("SaveSaleInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(s domain.Sale) bool {
		return s.DiscountAmount.Equal(decimal.NewFromInt(25)) &&
			s.TotalAmount.Equal(decimal.NewFromInt(235)) &&
			s.BaseAmount.Equal(decimal.NewFromInt(470))
	})).Return(nil).Once()

	got, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.TotalAmount.Equal(decimal.NewFromInt(235)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_InitialPaidAmount() {
	req := dto.CreateSaleRequest{
		CustomerID: "cust-1",
		SaleDate:   "2026-07-15",
		CurrencyID: "cur-1",
		PaidAmount: decimal.NewFromInt(100),
		ServiceItems: []dto.SaleServiceItemRequest{
			{Title: "Installation", PerPrice: decimal.NewFromInt(150), Amount: decimal.NewFromInt(1)},
		},
	}
	suite.expectCatalog()
	suite.expectTransaction()
	suite.mockSaleRepo.On("SaveSaleInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(s domain.Sale) bool {
		return s.PaidAmount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	// Cash taken at the counter lands as an account-less payment row at the
	// sale's rate, without touching any account balance.
	suite.mockSaleRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(p domain.SalePayment) bool {
		return p.AccountID == nil &&
			p.Amount.Equal(decimal.NewFromInt(100)) &&
			p.Rate.Equal(decimal.NewFromInt(2)) &&
			p.BaseAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	got, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.PaidAmount.Equal(decimal.NewFromInt(100)))
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ApplyMovementInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NegativePaidAmount() {
	req := dto.CreateSaleRequest{
		CustomerID: "cust-1",
		SaleDate:   "2026-07-15",
		CurrencyID: "cur-1",
		PaidAmount: decimal.NewFromInt(-5),
		ServiceItems: []dto.SaleServiceItemRequest{
			{Title: "Installation", PerPrice: decimal.NewFromInt(150), Amount: decimal.NewFromInt(1)},
		},
	}
	suite.expectCatalog()

	_, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientBatchStock() {
	batchID := "pi-1"
	req := dto.CreateSaleRequest{
		CustomerID: "cust-1",
		SaleDate:   "2026-07-15",
		CurrencyID: "cur-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PurchaseItemID: &batchID, PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
		},
	}
	suite.expectCatalog()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.mockSaleRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSaleRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockUnitRepo.On("FindUnitsByIDs", suite.ctx, []string{"unit-1"}).
		Return(map[string]domain.Unit{"unit-1": {UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}}, nil).Once()
	suite.mockInventoryRepo.On("RemainingByPurchaseItemForUpdate", suite.ctx, mock.Anything, []string{"pi-1"}, "").
		Return(map[string]decimal.Decimal{"pi-1": decimal.NewFromInt(5)}, nil).Once()

	_, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientStock)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSaleInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_SumsLinesAgainstSameBatch() {
	batchID := "pi-1"
	req := dto.CreateSaleRequest{
		CustomerID: "cust-1",
		SaleDate:   "2026-07-15",
		CurrencyID: "cur-1",
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PurchaseItemID: &batchID, PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(4)},
			{ProductID: "prod-1", UnitID: "unit-1", PurchaseItemID: &batchID, PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(4)},
		},
	}
	suite.expectCatalog()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Twice()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Twice()
	suite.mockSaleRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockSaleRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockUnitRepo.On("FindUnitsByIDs", suite.ctx, []string{"unit-1", "unit-1"}).
		Return(map[string]domain.Unit{"unit-1": {UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}}, nil).Once()
	// Each line alone fits in the 5 remaining, together they do not.
	suite.mockInventoryRepo.On("RemainingByPurchaseItemForUpdate", suite.ctx, mock.Anything, []string{"pi-1"}, "").
		Return(map[string]decimal.Decimal{"pi-1": decimal.NewFromInt(5)}, nil).Once()

	_, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientStock)
}

func (suite *SaleServiceTestSuite) TestCreateSale_RedeemsDiscountCode() {
	codeStr := " summer10 "
	req := dto.CreateSaleRequest{
		CustomerID:   "cust-1",
		SaleDate:     "2026-07-15",
		CurrencyID:   "cur-1",
		DiscountCode: &codeStr,
		ServiceItems: []dto.SaleServiceItemRequest{
			{Title: "Consulting", PerPrice: decimal.NewFromInt(200), Amount: decimal.NewFromInt(1)},
		},
	}
	code := &domain.DiscountCode{CodeID: "code-1", Code: "SUMMER10", Type: domain.DiscountPercent, Value: decimal.NewFromInt(10)}
	suite.expectCatalog()
	suite.expectTransaction()
	suite.mockDiscountSvc.On("RedeemCodeInTx", suite.ctx, mock.Anything, "SUMMER10", mock.MatchedBy(func(subtotal decimal.Decimal) bool {
		return subtotal.Equal(decimal.NewFromInt(200))
	})).Return(code, nil).Once()
	suite.mockSaleRepo.On("SaveSaleInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(s domain.Sale) bool {
		return s.DiscountCode != nil && *s.DiscountCode == "SUMMER10" &&
			s.DiscountAmount.Equal(decimal.NewFromInt(20)) &&
			s.TotalAmount.Equal(decimal.NewFromInt(180))
	})).Return(nil).Once()

	got, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got.DiscountCode)
	suite.mockDiscountSvc.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NoLines() {
	req := dto.CreateSaleRequest{
		CustomerID: "cust-1",
		SaleDate:   "2026-07-15",
		CurrencyID: "cur-1",
	}
	suite.mockCustomerRepo.On("FindCustomerByID", suite.ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1"}, nil).Once()

	_, err := suite.service.CreateSale(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SaleServiceTestSuite) TestAddSaleItem_RecomputesTotals() {
	existing := &domain.Sale{
		SaleID:       "sale-1",
		CustomerID:   "cust-1",
		CurrencyID:   "cur-1",
		ExchangeRate: decimal.NewFromInt(2),
		Items: []domain.SaleItem{
			{SaleItemID: "it-1", SaleID: "sale-1", ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1), Total: decimal.NewFromInt(100)},
		},
	}
	req := dto.SaleItemRequest{ProductID: "prod-2", UnitID: "unit-1", PerPrice: decimal.NewFromInt(50), Amount: decimal.NewFromInt(1)}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(existing, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-2").Return(&domain.Product{ProductID: "prod-2"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSaleRepo.On("SaveSaleItemInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(item domain.SaleItem) bool {
		return item.SaleID == "sale-1" && item.Total.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	// 100 + 50 at rate 2
	suite.mockSaleRepo.On("UpdateSaleTotalsInTx", suite.ctx, mock.Anything, "sale-1",
		mock.MatchedBy(func(discount decimal.Decimal) bool { return discount.IsZero() }),
		mock.MatchedBy(func(total decimal.Decimal) bool { return total.Equal(decimal.NewFromInt(150)) }),
		mock.MatchedBy(func(base decimal.Decimal) bool { return base.Equal(decimal.NewFromInt(300)) }),
		"user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.AddSaleItem(suite.ctx, "sale-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got.Items, 2)
	assert.True(suite.T(), got.TotalAmount.Equal(decimal.NewFromInt(150)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestUpdateSaleItem_SameBatchGivesBackStock() {
	batchID := "pi-1"
	existing := &domain.Sale{
		SaleID:       "sale-1",
		CustomerID:   "cust-1",
		CurrencyID:   "cur-1",
		ExchangeRate: decimal.NewFromInt(2),
		Items: []domain.SaleItem{
			{SaleItemID: "it-1", SaleID: "sale-1", ProductID: "prod-1", UnitID: "unit-1", PurchaseItemID: &batchID, PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(8), Total: decimal.NewFromInt(80)},
		},
	}
	req := dto.SaleItemRequest{ProductID: "prod-1", UnitID: "unit-1", PurchaseItemID: &batchID, PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(existing, nil).Once()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockUnitRepo.On("FindUnitsByIDs", suite.ctx, []string{"unit-1"}).
		Return(map[string]domain.Unit{"unit-1": {UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}}, nil).Once()
	// Only 2 base units are untouched by other sales, but excluding this
	// sale's own depletion leaves 10, so growing 8 -> 10 passes.
	suite.mockInventoryRepo.On("RemainingByPurchaseItemForUpdate", suite.ctx, mock.Anything, []string{"pi-1"}, "sale-1").
		Return(map[string]decimal.Decimal{"pi-1": decimal.NewFromInt(10)}, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleItemInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(item domain.SaleItem) bool {
		return item.SaleItemID == "it-1" && item.Amount.Equal(decimal.NewFromInt(10))
	})).Return(nil).Once()
	suite.mockSaleRepo.On("UpdateSaleTotalsInTx", suite.ctx, mock.Anything, "sale-1",
		mock.Anything,
		mock.MatchedBy(func(total decimal.Decimal) bool { return total.Equal(decimal.NewFromInt(100)) }),
		mock.MatchedBy(func(base decimal.Decimal) bool { return base.Equal(decimal.NewFromInt(200)) }),
		"user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.UpdateSaleItem(suite.ctx, "sale-1", "it-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Items[0].Amount.Equal(decimal.NewFromInt(10)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestUpdateSaleItem_UnknownItem() {
	existing := &domain.Sale{
		SaleID: "sale-1",
		Items: []domain.SaleItem{
			{SaleItemID: "it-1", SaleID: "sale-1"},
		},
	}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(existing, nil).Once()

	_, err := suite.service.UpdateSaleItem(suite.ctx, "sale-1", "it-missing", dto.SaleItemRequest{}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeleteSaleItem_RecomputesTotals() {
	existing := &domain.Sale{
		SaleID:       "sale-1",
		CurrencyID:   "cur-1",
		ExchangeRate: decimal.NewFromInt(1),
		Items: []domain.SaleItem{
			{SaleItemID: "it-1", SaleID: "sale-1", ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1), Total: decimal.NewFromInt(100)},
			{SaleItemID: "it-2", SaleID: "sale-1", ProductID: "prod-2", UnitID: "unit-1", PerPrice: decimal.NewFromInt(50), Amount: decimal.NewFromInt(1), Total: decimal.NewFromInt(50)},
		},
	}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(existing, nil).Once()
	suite.expectTransaction()
	suite.mockSaleRepo.On("DeleteSaleItemInTx", suite.ctx, mock.Anything, "sale-1", "it-2").Return(nil).Once()
	suite.mockSaleRepo.On("UpdateSaleTotalsInTx", suite.ctx, mock.Anything, "sale-1",
		mock.Anything,
		mock.MatchedBy(func(total decimal.Decimal) bool { return total.Equal(decimal.NewFromInt(100)) }),
		mock.MatchedBy(func(base decimal.Decimal) bool { return base.Equal(decimal.NewFromInt(100)) }),
		"user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.DeleteSaleItem(suite.ctx, "sale-1", "it-2", "user-1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got.Items, 1)
	assert.Equal(suite.T(), "it-1", got.Items[0].SaleItemID)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeleteSaleItem_LastLineRefused() {
	existing := &domain.Sale{
		SaleID: "sale-1",
		Items: []domain.SaleItem{
			{SaleItemID: "it-1", SaleID: "sale-1"},
		},
	}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(existing, nil).Once()

	_, err := suite.service.DeleteSaleItem(suite.ctx, "sale-1", "it-1", "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *SaleServiceTestSuite) TestAddPayment_DepositsIntoAccount() {
	accountID := "acc-1"
	req := dto.CreatePaymentRequest{
		AccountID:   &accountID,
		Amount:      decimal.NewFromInt(120),
		CurrencyID:  "cur-1",
		PaymentDate: "2026-07-16",
	}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(&domain.Sale{SaleID: "sale-1"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSaleRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(p domain.SalePayment) bool {
		return p.SaleID == "sale-1" && p.Amount.Equal(decimal.NewFromInt(120))
	})).Return(nil).Once()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(120))
	}), "user-1").Return(nil).Once()
	suite.mockSaleRepo.On("SumPaymentsInTx", suite.ctx, mock.Anything, "sale-1").Return(decimal.NewFromInt(120), nil).Once()
	suite.mockSaleRepo.On("UpdatePaidAmountInTx", suite.ctx, mock.Anything, "sale-1", mock.MatchedBy(func(paid decimal.Decimal) bool {
		return paid.Equal(decimal.NewFromInt(120))
	}), "user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.AddPayment(suite.ctx, "sale-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.BaseAmount.Equal(decimal.NewFromInt(120)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestDeletePayment_WrongSale() {
	payment := &domain.SalePayment{PaymentID: "pay-1", SaleID: "sale-other"}
	suite.mockSaleRepo.On("FindPaymentByID", suite.ctx, "pay-1").Return(payment, nil).Once()

	err := suite.service.DeletePayment(suite.ctx, "sale-1", "pay-1", "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeletePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeleteSale_ReversesAccountPayments() {
	accountID := "acc-1"
	payments := []domain.SalePayment{
		{PaymentID: "pay-1", SaleID: "sale-1", AccountID: &accountID, Amount: decimal.NewFromInt(80), CurrencyID: "cur-1"},
		{PaymentID: "pay-2", SaleID: "sale-1", Amount: decimal.NewFromInt(20), CurrencyID: "cur-1"},
	}
	suite.mockSaleRepo.On("FindSaleByID", suite.ctx, "sale-1").Return(&domain.Sale{SaleID: "sale-1"}, nil).Once()
	suite.mockSaleRepo.On("ListPaymentsBySale", suite.ctx, "sale-1").Return(payments, nil).Once()
	suite.expectTransaction()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(-80))
	}), "user-1").Return(nil).Once()
	suite.mockSaleRepo.On("DeleteSaleInTx", suite.ctx, mock.Anything, "sale-1").Return(nil).Once()

	err := suite.service.DeleteSale(suite.ctx, "sale-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestListSales_PageFullReturnsToken() {
	saleDate := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		{SaleID: "sale-1", SaleDate: saleDate, AuditFields: domain.AuditFields{CreatedAt: created}},
		{SaleID: "sale-2", SaleDate: saleDate, AuditFields: domain.AuditFields{CreatedAt: created.Add(-time.Hour)}},
	}
	suite.mockSaleRepo.On("ListSales", suite.ctx, 2, time.Time{}, time.Time{}).Return(sales, nil).Once()

	got, nextToken, err := suite.service.ListSales(suite.ctx, dto.TokenListParams{Limit: 2})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.NotEmpty(suite.T(), nextToken)
}

func (suite *SaleServiceTestSuite) TestListSales_PartialPageEndsPagination() {
	sales := []domain.Sale{{SaleID: "sale-1"}}
	suite.mockSaleRepo.On("ListSales", suite.ctx, 2, time.Time{}, time.Time{}).Return(sales, nil).Once()

	got, nextToken, err := suite.service.ListSales(suite.ctx, dto.TokenListParams{Limit: 2})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	assert.Empty(suite.T(), nextToken)
}

func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
