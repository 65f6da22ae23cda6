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

// MockAccountRepository is a mock implementation of portsrepo.AccountRepositoryWithTx.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindCurrencyBalances(ctx context.Context, accountID string) ([]domain.AccountCurrencyBalance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCurrencyBalance), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindCurrencyBalanceForUpdate(ctx context.Context, tx pgx.Tx, accountID string, currencyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID, currencyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) ApplyCurrencyDelta(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, accountID, currencyID, delta)
	return args.Error(0)
}

func (m *MockAccountRepository) RecomputeCurrentBalance(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.AccountTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockAccountRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.AccountTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransaction), args.Error(1)
}

func (m *MockAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransaction), args.Error(1)
}

func (m *MockAccountRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error {
	args := m.Called(ctx, tx, transactionID)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockCOACategoryRepository is a mock implementation of portsrepo.COACategoryRepositoryFacade.
type MockCOACategoryRepository struct {
	mock.Mock
}

func (m *MockCOACategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.COACategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.COACategory), args.Error(1)
}

func (m *MockCOACategoryRepository) ListCategories(ctx context.Context) ([]domain.COACategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.COACategory), args.Error(1)
}

func (m *MockCOACategoryRepository) SaveCategory(ctx context.Context, category domain.COACategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCOACategoryRepository) UpdateCategory(ctx context.Context, category domain.COACategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCOACategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCOACategoryRepository) HasChildren(ctx context.Context, categoryID string) (bool, error) {
	args := m.Called(ctx, categoryID)
	return args.Bool(0), args.Error(1)
}

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockAccountRepository
	mockCurrencyRepo *MockCurrencyReader
	mockCOARepo      *MockCOACategoryRepository
	service          portssvc.AccountSvcFacade
	ctx              context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockCOARepo = new(MockCOACategoryRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockCurrencyRepo, suite.mockCOARepo)
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) expectTransaction() {
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *AccountServiceTestSuite) activeAccount(balance int64) *domain.Account {
	return &domain.Account{
		AccountID:      "acc-1",
		Name:           "Till",
		CurrencyID:     "cur-1",
		AccountType:    domain.AccountTypeAsset,
		CurrentBalance: decimal.NewFromInt(balance),
		IsActive:       true,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	req := dto.CreateAccountRequest{Name: "Till", CurrencyID: "missing", AccountType: domain.AccountTypeAsset}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_StartsAtInitialBalance() {
	req := dto.CreateAccountRequest{
		Name:           "Till",
		CurrencyID:     "cur-1",
		AccountType:    domain.AccountTypeAsset,
		InitialBalance: decimal.NewFromInt(500),
	}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1"}, nil).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.IsActive && a.CurrentBalance.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	got, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.CurrentBalance.Equal(got.InitialBalance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeposit_RecordsMovement() {
	req := dto.CreateAccountTransactionRequest{
		Amount:          decimal.NewFromInt(100),
		CurrencyID:      "cur-1",
		TransactionDate: "2026-07-01",
	}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(2)}, nil).Once()
	suite.expectTransaction()
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(0), nil).Once()
	suite.mockRepo.On("FindCurrencyBalanceForUpdate", suite.ctx, mock.Anything, "acc-1", "cur-1").Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("SaveTransactionInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(txn domain.AccountTransaction) bool {
		return txn.Type == domain.Deposit && txn.Total.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.mockRepo.On("ApplyCurrencyDelta", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	suite.mockRepo.On("RecomputeCurrentBalance", suite.ctx, mock.Anything, "acc-1", "user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.Deposit(suite.ctx, "acc-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Deposit, got.Type)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestWithdraw_InsufficientCurrencyBalance() {
	req := dto.CreateAccountTransactionRequest{
		Amount:          decimal.NewFromInt(100),
		CurrencyID:      "cur-1",
		TransactionDate: "2026-07-01",
	}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(40), nil).Once()
	suite.mockRepo.On("FindCurrencyBalanceForUpdate", suite.ctx, mock.Anything, "acc-1", "cur-1").Return(decimal.NewFromInt(40), nil).Once()

	_, err := suite.service.Withdraw(suite.ctx, "acc-1", req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestWithdraw_InactiveAccount() {
	req := dto.CreateAccountTransactionRequest{
		Amount:          decimal.NewFromInt(10),
		CurrencyID:      "cur-1",
		TransactionDate: "2026-07-01",
	}
	inactive := suite.activeAccount(100)
	inactive.IsActive = false
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.mockRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(inactive, nil).Once()

	_, err := suite.service.Withdraw(suite.ctx, "acc-1", req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestWithdraw_FullDrainsCurrencyBalance() {
	req := dto.CreateAccountTransactionRequest{
		CurrencyID:      "cur-1",
		TransactionDate: "2026-07-01",
		IsFull:          true,
	}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(75), nil).Once()
	suite.mockRepo.On("FindCurrencyBalanceForUpdate", suite.ctx, mock.Anything, "acc-1", "cur-1").Return(decimal.NewFromInt(75), nil).Once()
	suite.mockRepo.On("SaveTransactionInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(txn domain.AccountTransaction) bool {
		return txn.Type == domain.Withdraw && txn.Amount.Equal(decimal.NewFromInt(75)) && txn.IsFull
	})).Return(nil).Once()
	suite.mockRepo.On("ApplyCurrencyDelta", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-75))
	})).Return(nil).Once()
	suite.mockRepo.On("RecomputeCurrentBalance", suite.ctx, mock.Anything, "acc-1", "user-1", mock.Anything).Return(nil).Once()

	got, err := suite.service.Withdraw(suite.ctx, "acc-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Amount.Equal(decimal.NewFromInt(75)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteTransaction_WrongAccount() {
	txn := &domain.AccountTransaction{TransactionID: "txn-1", AccountID: "acc-other", Type: domain.Deposit, Amount: decimal.NewFromInt(10)}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, "txn-1").Return(txn, nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, "acc-1", "txn-1", "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteTransaction_ReversesDeposit() {
	txn := &domain.AccountTransaction{TransactionID: "txn-1", AccountID: "acc-1", CurrencyID: "cur-1", Type: domain.Deposit, Amount: decimal.NewFromInt(10)}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, "txn-1").Return(txn, nil).Once()
	suite.expectTransaction()
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(100), nil).Once()
	suite.mockRepo.On("FindCurrencyBalanceForUpdate", suite.ctx, mock.Anything, "acc-1", "cur-1").Return(decimal.NewFromInt(50), nil).Once()
	suite.mockRepo.On("ApplyCurrencyDelta", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-10))
	})).Return(nil).Once()
	suite.mockRepo.On("DeleteTransactionInTx", suite.ctx, mock.Anything, "txn-1").Return(nil).Once()
	suite.mockRepo.On("RecomputeCurrentBalance", suite.ctx, mock.Anything, "acc-1", "user-1", mock.Anything).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, "acc-1", "txn-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestApplyMovementInTx_ZeroIsNoop() {
	err := suite.service.ApplyMovementInTx(suite.ctx, nil, "acc-1", "cur-1", decimal.Zero, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestApplyMovementInTx_NegativeChecksBalance() {
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(100), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.mockRepo.On("FindCurrencyBalanceForUpdate", suite.ctx, mock.Anything, "acc-1", "cur-1").Return(decimal.NewFromInt(30), nil).Once()

	err := suite.service.ApplyMovementInTx(suite.ctx, nil, "acc-1", "cur-1", decimal.NewFromInt(-50), "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestApplyUncheckedMovementInTx_AllowsOverdraft() {
	suite.mockRepo.On("FindAccountByIDForUpdate", suite.ctx, mock.Anything, "acc-1").Return(suite.activeAccount(100), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.mockRepo.On("SaveTransactionInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(txn domain.AccountTransaction) bool {
		return txn.Type == domain.Withdraw && txn.Amount.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	suite.mockRepo.On("ApplyCurrencyDelta", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(-50))
	})).Return(nil).Once()
	suite.mockRepo.On("RecomputeCurrentBalance", suite.ctx, mock.Anything, "acc-1", "user-1", mock.Anything).Return(nil).Once()

	err := suite.service.ApplyUncheckedMovementInTx(suite.ctx, nil, "acc-1", "cur-1", decimal.NewFromInt(-50), "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCurrencyBalanceForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExpenseType() {
	req := dto.CreateAccountRequest{Name: "Office costs", CurrencyID: "cur-1", AccountType: domain.AccountTypeExpense}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1"}, nil).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.AccountTypeExpense
	})).Return(nil).Once()

	got, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.AccountTypeExpense, got.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
