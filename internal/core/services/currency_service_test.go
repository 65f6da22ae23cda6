package services_test

import (
	"context"
	"testing"

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

// MockCurrencyRepository is a mock implementation of portsrepo.CurrencyRepositoryWithTx.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	args := m.Called(ctx, currencyID)
	return args.Error(0)
}

func (m *MockCurrencyRepository) ClearBaseFlagInTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCurrencyRepository) SetBaseFlagInTx(ctx context.Context, tx pgx.Tx, currencyID string, userID string) error {
	args := m.Called(ctx, tx, currencyID, userID)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCurrencyRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
	ctx      context.Context
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *CurrencyServiceTestSuite) expectBaseSwap(currencyID string, userID string) {
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("ClearBaseFlagInTx", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("SetBaseFlagInTx", suite.ctx, mock.Anything, currencyID, userID).Return(nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	req := dto.CreateCurrencyRequest{Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromInt(92)}
	suite.mockRepo.On("SaveCurrency", suite.ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Name == "US Dollar" && !c.IsBase && c.Rate.Equal(decimal.NewFromInt(92))
	})).Return(nil).Once()

	got, err := suite.service.CreateCurrency(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), got.CurrencyID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_NonPositiveRate() {
	req := dto.CreateCurrencyRequest{Name: "US Dollar", Symbol: "$", Rate: decimal.Zero}

	_, err := suite.service.CreateCurrency(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_AsBasePinsRateAndSwaps() {
	req := dto.CreateCurrencyRequest{Name: "Toman", Symbol: "T", Rate: decimal.NewFromInt(50), IsBase: true}
	suite.mockRepo.On("SaveCurrency", suite.ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Rate.Equal(decimal.NewFromInt(1))
	})).Return(nil).Once()
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, mock.Anything).
		Return(&domain.Currency{CurrencyID: "cur-1", Name: "Toman", IsBase: true, Rate: decimal.NewFromInt(1)}, nil)
	suite.expectBaseSwap(mock.Anything, "user-1")

	got, err := suite.service.CreateCurrency(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsBase)
	assert.True(suite.T(), got.Rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_BaseRatePinned() {
	base := &domain.Currency{CurrencyID: "cur-1", Name: "Toman", IsBase: true, Rate: decimal.NewFromInt(1)}
	newRate := decimal.NewFromInt(2)
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(base, nil).Once()

	_, err := suite.service.UpdateCurrency(suite.ctx, "cur-1", dto.UpdateCurrencyRequest{Rate: &newRate}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_BaseRefused() {
	base := &domain.Currency{CurrencyID: "cur-1", IsBase: true}
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(base, nil).Once()

	err := suite.service.DeleteCurrency(suite.ctx, "cur-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestSetBaseCurrency() {
	currency := &domain.Currency{CurrencyID: "cur-2", Name: "US Dollar", Rate: decimal.NewFromInt(92)}
	promoted := &domain.Currency{CurrencyID: "cur-2", Name: "US Dollar", IsBase: true, Rate: decimal.NewFromInt(1)}
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "cur-2").Return(currency, nil).Once()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("ClearBaseFlagInTx", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("SetBaseFlagInTx", suite.ctx, mock.Anything, "cur-2", "user-1").Return(nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "cur-2").Return(promoted, nil).Once()

	got, err := suite.service.SetBaseCurrency(suite.ctx, "cur-2", "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsBase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_ThroughBase() {
	usd := &domain.Currency{CurrencyID: "usd", Rate: decimal.NewFromInt(92)}
	eur := &domain.Currency{CurrencyID: "eur", Rate: decimal.NewFromInt(100)}
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "usd").Return(usd, nil).Once()
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "eur").Return(eur, nil).Once()

	got, err := suite.service.ConvertAmount(suite.ctx, "usd", "eur", decimal.NewFromInt(50))

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Equal(decimal.NewFromInt(46)), "expected 46, got %s", got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestConvertAmount_UnknownCurrency() {
	suite.mockRepo.On("FindCurrencyByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ConvertAmount(suite.ctx, "missing", "eur", decimal.NewFromInt(50))

	assert.ErrorIs(suite.T(), err, apperrors.ErrCurrencyNotFound)
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
