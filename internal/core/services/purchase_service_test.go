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

// MockPurchaseRepository is a mock implementation of portsrepo.PurchaseRepositoryWithTx.
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.Purchase, error) {
	args := m.Called(ctx, limit, afterDate, afterCreatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPurchaseItemByID(ctx context.Context, purchaseItemID string) (*domain.PurchaseItem, error) {
	args := m.Called(ctx, purchaseItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseItem), args.Error(1)
}

func (m *MockPurchaseRepository) SavePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdatePurchaseInTx(ctx context.Context, tx pgx.Tx, purchase domain.Purchase) error {
	args := m.Called(ctx, tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchaseInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	args := m.Called(ctx, tx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdatePaidAmountInTx(ctx context.Context, tx pgx.Tx, purchaseID string, paidAmount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, purchaseID, paidAmount, userID, now)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SoldQuantityByPurchaseItem(ctx context.Context, tx pgx.Tx, purchaseID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.PurchasePayment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseRepository) ListPaymentsByPurchase(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasePayment), args.Error(1)
}

func (m *MockPurchaseRepository) DeletePaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string) error {
	args := m.Called(ctx, tx, paymentID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SumPaymentsInTx(ctx context.Context, tx pgx.Tx, purchaseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, purchaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPurchaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of portsrepo.SupplierRepositoryFacade.
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context, search string, limit int, offset int) ([]domain.Supplier, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockSequenceRepo *MockSequenceRepository
	mockCurrencyRepo *MockCurrencyReader
	mockSupplierRepo *MockSupplierRepository
	mockProductRepo  *MockProductRepository
	mockUnitRepo     *MockUnitRepository
	mockAccountSvc   *MockAccountService
	service          portssvc.PurchaseSvcFacade
	ctx              context.Context
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockSupplierRepo = new(MockSupplierRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPurchaseService(
		suite.mockPurchaseRepo,
		suite.mockSequenceRepo,
		suite.mockCurrencyRepo,
		suite.mockSupplierRepo,
		suite.mockProductRepo,
		suite.mockUnitRepo,
		suite.mockAccountSvc,
	)
	suite.ctx = context.Background()
}

func (suite *PurchaseServiceTestSuite) expectTransaction() {
	suite.mockPurchaseRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockPurchaseRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockPurchaseRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *PurchaseServiceTestSuite) expectCatalog() {
	suite.mockSupplierRepo.On("FindSupplierByID", suite.ctx, "sup-1").Return(&domain.Supplier{SupplierID: "sup-1"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(2)}, nil).Once()
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_InitialPaidAmount() {
	req := dto.CreatePurchaseRequest{
		SupplierID:   "sup-1",
		PurchaseDate: "2026-07-01",
		CurrencyID:   "cur-1",
		PaidAmount:   decimal.NewFromInt(100),
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(40)},
		},
	}
	suite.expectCatalog()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSequenceRepo.On("NextValueInTx", suite.ctx, mock.Anything, mock.Anything).Return(int64(12), nil).Once()
	suite.mockPurchaseRepo.On("SavePurchaseInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(p domain.Purchase) bool {
		return p.BatchNumber == "BATCH-000012" &&
			p.PaidAmount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	// Cash handed over at receiving lands as an account-less payment row at
	// the purchase's rate, without touching any account balance.
	suite.mockPurchaseRepo.On("SavePaymentInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(p domain.PurchasePayment) bool {
		return p.AccountID == nil &&
			p.Amount.Equal(decimal.NewFromInt(100)) &&
			p.Rate.Equal(decimal.NewFromInt(2)) &&
			p.BaseAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	got, err := suite.service.CreatePurchase(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.PaidAmount.Equal(decimal.NewFromInt(100)))
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ApplyMovementInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_NothingPaidSkipsPaymentRow() {
	req := dto.CreatePurchaseRequest{
		SupplierID:   "sup-1",
		PurchaseDate: "2026-07-01",
		CurrencyID:   "cur-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(40)},
		},
	}
	suite.expectCatalog()
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(&domain.Product{ProductID: "prod-1"}, nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-1").Return(&domain.Unit{UnitID: "unit-1", Ratio: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSequenceRepo.On("NextValueInTx", suite.ctx, mock.Anything, mock.Anything).Return(int64(13), nil).Once()
	suite.mockPurchaseRepo.On("SavePurchaseInTx", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreatePurchase(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "SavePaymentInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestCreatePurchase_NegativePaidAmount() {
	req := dto.CreatePurchaseRequest{
		SupplierID:   "sup-1",
		PurchaseDate: "2026-07-01",
		CurrencyID:   "cur-1",
		PaidAmount:   decimal.NewFromInt(-1),
		Items: []dto.PurchaseItemRequest{
			{ProductID: "prod-1", UnitID: "unit-1", PerPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(40)},
		},
	}
	suite.expectCatalog()

	_, err := suite.service.CreatePurchase(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
