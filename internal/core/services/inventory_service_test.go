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
)

// MockInventoryRepository is a mock implementation of portsrepo.InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListProductBatches(ctx context.Context, productID string, includeEmpty bool) ([]domain.ProductBatch, error) {
	args := m.Called(ctx, productID, includeEmpty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductBatch), args.Error(1)
}

func (m *MockInventoryRepository) GetProductStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) RemainingByPurchaseItemForUpdate(ctx context.Context, tx pgx.Tx, purchaseItemIDs []string, excludeSaleID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, tx, purchaseItemIDs, excludeSaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// MockProductRepository is a mock implementation of portsrepo.ProductRepositoryFacade.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, search string, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockProductRepo   *MockProductRepository
	mockUnitRepo      *MockUnitRepository
	service           portssvc.InventorySvcFacade
	ctx               context.Context
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockProductRepo, suite.mockUnitRepo)
	suite.ctx = context.Background()
}

func (suite *InventoryServiceTestSuite) TestListProductBatches() {
	product := &domain.Product{ProductID: "prod-1", Name: "Rice 5kg"}
	batches := []domain.ProductBatch{
		{PurchaseItemID: "pi-1", BatchNumber: "PUR-00001", PurchaseDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), PerPrice: decimal.NewFromInt(10), RemainingQuantity: decimal.NewFromInt(40)},
		{PurchaseItemID: "pi-2", BatchNumber: "PUR-00002", PurchaseDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), PerPrice: decimal.NewFromInt(11), RemainingQuantity: decimal.NewFromInt(100)},
	}
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(product, nil).Once()
	suite.mockInventoryRepo.On("ListProductBatches", suite.ctx, "prod-1", false).Return(batches, nil).Once()

	got, err := suite.service.ListProductBatches(suite.ctx, "prod-1", false)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), "PUR-00001", got[0].BatchNumber)
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListProductBatches_UnknownProduct() {
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListProductBatches(suite.ctx, "missing", true)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ListProductBatches", mock.Anything, mock.Anything, mock.Anything)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListProductBatches_NilBecomesEmpty() {
	product := &domain.Product{ProductID: "prod-1"}
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(product, nil).Once()
	suite.mockInventoryRepo.On("ListProductBatches", suite.ctx, "prod-1", true).Return(nil, nil).Once()

	got, err := suite.service.ListProductBatches(suite.ctx, "prod-1", true)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
	assert.Empty(suite.T(), got)
}

func (suite *InventoryServiceTestSuite) TestGetProductStock() {
	suite.mockInventoryRepo.On("GetProductStock", suite.ctx, "prod-1").Return(decimal.NewFromInt(140), nil).Once()

	got, err := suite.service.GetProductStock(suite.ctx, "prod-1", "")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Equal(decimal.NewFromInt(140)))
	suite.mockUnitRepo.AssertNotCalled(suite.T(), "FindUnitByID", mock.Anything, mock.Anything)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestGetProductStock_InTargetUnit() {
	suite.mockInventoryRepo.On("GetProductStock", suite.ctx, "prod-1").Return(decimal.NewFromInt(140), nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "unit-carton").
		Return(&domain.Unit{UnitID: "unit-carton", Ratio: decimal.NewFromInt(20)}, nil).Once()

	got, err := suite.service.GetProductStock(suite.ctx, "prod-1", "unit-carton")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Equal(decimal.NewFromInt(7)), "expected 7, got %s", got)
	suite.mockUnitRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestGetProductStock_UnknownUnit() {
	suite.mockInventoryRepo.On("GetProductStock", suite.ctx, "prod-1").Return(decimal.NewFromInt(140), nil).Once()
	suite.mockUnitRepo.On("FindUnitByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetProductStock(suite.ctx, "prod-1", "missing")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestGetProductStock_RepoError() {
	suite.mockInventoryRepo.On("GetProductStock", suite.ctx, "prod-1").Return(decimal.Zero, assert.AnError).Once()

	_, err := suite.service.GetProductStock(suite.ctx, "prod-1", "")

	assert.Error(suite.T(), err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
