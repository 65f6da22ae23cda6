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

// MockEmployeeRepository is a mock implementation of portsrepo.EmployeeRepositoryFacade.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, includeInactive bool) ([]domain.Employee, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, userID string, now time.Time) error {
	args := m.Called(ctx, employeeID, userID, now)
	return args.Error(0)
}

// MockSalaryRepository is a mock implementation of portsrepo.SalaryRepositoryFacade.
type MockSalaryRepository struct {
	mock.Mock
}

func (m *MockSalaryRepository) FindSalaryByID(ctx context.Context, salaryID string) (*domain.Salary, error) {
	args := m.Called(ctx, salaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) ListSalariesByEmployee(ctx context.Context, employeeID string, limit int, offset int) ([]domain.Salary, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) FindSalaryByPeriod(ctx context.Context, employeeID string, period string) (*domain.Salary, error) {
	args := m.Called(ctx, employeeID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryRepository) SaveSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error {
	args := m.Called(ctx, tx, salary)
	return args.Error(0)
}

func (m *MockSalaryRepository) UpdateSalaryInTx(ctx context.Context, tx pgx.Tx, salary domain.Salary) error {
	args := m.Called(ctx, tx, salary)
	return args.Error(0)
}

func (m *MockSalaryRepository) DeleteSalaryInTx(ctx context.Context, tx pgx.Tx, salaryID string) error {
	args := m.Called(ctx, tx, salaryID)
	return args.Error(0)
}

// MockCurrencyReader is a mock implementation of portsrepo.CurrencyReader.
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// MockTransactionManager is a mock implementation of portsrepo.TransactionManager.
// Begin hands out a nil pgx.Tx; the repositories under test are mocks too, so
// nothing dereferences it.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockAccountService is a mock implementation of portssvc.AccountSvcFacade.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, []domain.AccountCurrencyBalance, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	var balances []domain.AccountCurrencyBalance
	if args.Get(1) != nil {
		balances = args.Get(1).([]domain.AccountCurrencyBalance)
	}
	return account, balances, args.Error(2)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountTransaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTransaction), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) Deposit(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransaction), args.Error(1)
}

func (m *MockAccountService) Withdraw(ctx context.Context, accountID string, req dto.CreateAccountTransactionRequest, userID string) (*domain.AccountTransaction, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransaction), args.Error(1)
}

func (m *MockAccountService) DeleteTransaction(ctx context.Context, accountID string, transactionID string, userID string) error {
	args := m.Called(ctx, accountID, transactionID, userID)
	return args.Error(0)
}

func (m *MockAccountService) ApplyMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error {
	args := m.Called(ctx, tx, accountID, currencyID, amount, userID)
	return args.Error(0)
}

func (m *MockAccountService) ApplyUncheckedMovementInTx(ctx context.Context, tx pgx.Tx, accountID string, currencyID string, amount decimal.Decimal, userID string) error {
	args := m.Called(ctx, tx, accountID, currencyID, amount, userID)
	return args.Error(0)
}

type PayrollServiceTestSuite struct {
	suite.Suite
	mockEmployeeRepo *MockEmployeeRepository
	mockSalaryRepo   *MockSalaryRepository
	mockCurrencyRepo *MockCurrencyReader
	mockTxManager    *MockTransactionManager
	mockAccountSvc   *MockAccountService
	service          portssvc.PayrollSvcFacade
	ctx              context.Context
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockSalaryRepo = new(MockSalaryRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockTxManager = new(MockTransactionManager)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewPayrollService(
		suite.mockEmployeeRepo,
		suite.mockSalaryRepo,
		suite.mockCurrencyRepo,
		suite.mockTxManager,
		suite.mockAccountSvc,
	)
	suite.ctx = context.Background()
}

func (suite *PayrollServiceTestSuite) expectTransaction() {
	suite.mockTxManager.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockTxManager.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockTxManager.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *PayrollServiceTestSuite) TestCreateEmployee_Success() {
	req := dto.CreateEmployeeRequest{Name: "Reza", Position: "Cashier", BaseSalary: decimal.NewFromInt(1200), HiredAt: strPtr("2026-01-15")}
	suite.mockEmployeeRepo.On("SaveEmployee", suite.ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.Name == "Reza" && e.IsActive && e.HiredAt != nil
	})).Return(nil).Once()

	got, err := suite.service.CreateEmployee(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), got.EmployeeID)
	assert.True(suite.T(), got.IsActive)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateEmployee_NegativeBaseSalary() {
	req := dto.CreateEmployeeRequest{Name: "Reza", BaseSalary: decimal.NewFromInt(-1)}

	_, err := suite.service.CreateEmployee(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployee", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestDeactivateEmployee() {
	employee := &domain.Employee{EmployeeID: "emp-1", IsActive: true}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(employee, nil).Once()
	suite.mockEmployeeRepo.On("DeactivateEmployee", suite.ctx, "emp-1", "user-1", mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateEmployee(suite.ctx, "emp-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_WithdrawsNetFromAccount() {
	accountID := "acc-1"
	req := dto.CreateSalaryRequest{
		EmployeeID:  "emp-1",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(1000),
		AccountID:   &accountID,
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
		Deductions: []dto.DeductionRequest{
			{Title: "Tax", Amount: decimal.NewFromInt(100)},
			{Title: "Insurance", Amount: decimal.NewFromInt(50)},
		},
	}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1"}, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "emp-1", "2026-07").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSalaryRepo.On("SaveSalaryInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(s domain.Salary) bool {
		return s.NetAmount.Equal(decimal.NewFromInt(850)) && len(s.Deductions) == 2
	})).Return(nil).Once()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(-850))
	}), "user-1").Return(nil).Once()

	got, err := suite.service.CreateSalary(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.NetAmount.Equal(decimal.NewFromInt(850)))
	suite.mockSalaryRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_NoAccountSkipsLedger() {
	req := dto.CreateSalaryRequest{
		EmployeeID:  "emp-1",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(1000),
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
	}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1"}, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "emp-1", "2026-07").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSalaryRepo.On("SaveSalaryInTx", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateSalary(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ApplyMovementInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_DuplicatePeriod() {
	req := dto.CreateSalaryRequest{
		EmployeeID:  "emp-1",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(1000),
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
	}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1"}, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "emp-1", "2026-07").Return(&domain.Salary{SalaryID: "sal-1"}, nil).Once()

	_, err := suite.service.CreateSalary(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "SaveSalaryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_UnknownEmployee() {
	req := dto.CreateSalaryRequest{
		EmployeeID:  "missing",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(1000),
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
	}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSalary(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestCreateSalary_DeductionsExceedGross() {
	req := dto.CreateSalaryRequest{
		EmployeeID:  "emp-1",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(100),
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
		Deductions:  []dto.DeductionRequest{{Title: "Tax", Amount: decimal.NewFromInt(150)}},
	}
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1"}, nil).Once()
	suite.mockSalaryRepo.On("FindSalaryByPeriod", suite.ctx, "emp-1", "2026-07").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()

	_, err := suite.service.CreateSalary(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockSalaryRepo.AssertNotCalled(suite.T(), "SaveSalaryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestUpdateSalary_ReversesOldMovement() {
	oldAccount := "acc-old"
	newAccount := "acc-new"
	existing := &domain.Salary{
		SalaryID:    "sal-1",
		EmployeeID:  "emp-1",
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(500),
		NetAmount:   decimal.NewFromInt(500),
		AccountID:   &oldAccount,
		CurrencyID:  "cur-1",
	}
	req := dto.UpdateSalaryRequest{
		Period:      "2026-07",
		GrossAmount: decimal.NewFromInt(300),
		AccountID:   &newAccount,
		CurrencyID:  "cur-1",
		PaidAt:      "2026-07-31",
	}
	suite.mockSalaryRepo.On("FindSalaryByID", suite.ctx, "sal-1").Return(existing, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-old", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(500))
	}), "user-1").Return(nil).Once()
	suite.mockSalaryRepo.On("UpdateSalaryInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(s domain.Salary) bool {
		return s.NetAmount.Equal(decimal.NewFromInt(300)) && s.AccountID != nil && *s.AccountID == "acc-new"
	})).Return(nil).Once()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-new", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(-300))
	}), "user-1").Return(nil).Once()

	got, err := suite.service.UpdateSalary(suite.ctx, "sal-1", req, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.NetAmount.Equal(decimal.NewFromInt(300)))
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockSalaryRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestDeleteSalary_ReversesMovement() {
	accountID := "acc-1"
	existing := &domain.Salary{
		SalaryID:   "sal-1",
		EmployeeID: "emp-1",
		NetAmount:  decimal.NewFromInt(850),
		AccountID:  &accountID,
		CurrencyID: "cur-1",
	}
	suite.mockSalaryRepo.On("FindSalaryByID", suite.ctx, "sal-1").Return(existing, nil).Once()
	suite.expectTransaction()
	suite.mockSalaryRepo.On("DeleteSalaryInTx", suite.ctx, mock.Anything, "sal-1").Return(nil).Once()
	suite.mockAccountSvc.On("ApplyMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(850))
	}), "user-1").Return(nil).Once()

	err := suite.service.DeleteSalary(suite.ctx, "sal-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockSalaryRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestListSalaries_NilBecomesEmpty() {
	suite.mockEmployeeRepo.On("FindEmployeeByID", suite.ctx, "emp-1").Return(&domain.Employee{EmployeeID: "emp-1"}, nil).Once()
	suite.mockSalaryRepo.On("ListSalariesByEmployee", suite.ctx, "emp-1", 20, 0).Return(nil, nil).Once()

	got, err := suite.service.ListSalariesByEmployee(suite.ctx, "emp-1", dto.ListParams{Limit: 20, Offset: 0})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
	assert.Empty(suite.T(), got)
}

func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
