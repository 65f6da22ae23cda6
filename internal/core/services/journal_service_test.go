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

// MockJournalRepository is a mock implementation of portsrepo.JournalRepositoryWithTx.
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, afterDate time.Time, afterCreatedAt time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit, afterDate, afterCreatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntryInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	args := m.Called(ctx, tx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSequenceRepository is a mock implementation of portsrepo.SequenceRepository.
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	args := m.Called(ctx, tx, name)
	return args.Get(0).(int64), args.Error(1)
}

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockSequenceRepo *MockSequenceRepository
	mockCurrencyRepo *MockCurrencyReader
	mockAccountSvc   *MockAccountService
	service          portssvc.JournalSvcFacade
	ctx              context.Context
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockCurrencyRepo = new(MockCurrencyReader)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockSequenceRepo,
		suite.mockCurrencyRepo,
		suite.mockAccountSvc,
	)
	suite.ctx = context.Background()
}

func (suite *JournalServiceTestSuite) expectTransaction() {
	suite.mockJournalRepo.On("Begin", suite.ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Commit", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Rollback", suite.ctx, mock.Anything).Return(nil)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CreditLineSkipsFundsCheck() {
	req := dto.CreateJournalEntryRequest{
		EntryDate:   "2026-07-20",
		Description: "Opening correction",
		Lines: []dto.JournalLineRequest{
			{AccountID: "acc-1", CurrencyID: "cur-1", CreditAmount: decimal.NewFromInt(50)},
		},
	}
	suite.mockCurrencyRepo.On("FindCurrencyByID", suite.ctx, "cur-1").
		Return(&domain.Currency{CurrencyID: "cur-1", Rate: decimal.NewFromInt(1)}, nil).Once()
	suite.expectTransaction()
	suite.mockSequenceRepo.On("NextValueInTx", suite.ctx, mock.Anything, "journal_entry").Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", suite.ctx, mock.Anything, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.EntryNumber == "J000007" && len(e.Lines) == 1
	})).Return(nil).Once()
	// The account may hold nothing in this currency; the movement still applies.
	suite.mockAccountSvc.On("ApplyUncheckedMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(-50)) }),
		"user-1").Return(nil).Once()

	got, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "J000007", got.EntryNumber)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ApplyMovementInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineNeedsExactlyOneSide() {
	req := dto.CreateJournalEntryRequest{
		EntryDate: "2026-07-20",
		Lines: []dto.JournalLineRequest{
			{AccountID: "acc-1", CurrencyID: "cur-1", DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.NewFromInt(10)},
		},
	}

	_, err := suite.service.CreateEntry(suite.ctx, req, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_ReversesDebitLines() {
	existing := &domain.JournalEntry{
		EntryID:     "je-1",
		EntryNumber: "J000001",
		Lines: []domain.JournalEntryLine{
			{LineID: "ln-1", EntryID: "je-1", AccountID: "acc-1", CurrencyID: "cur-1", DebitAmount: decimal.NewFromInt(80)},
		},
	}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "je-1").Return(existing, nil).Once()
	suite.expectTransaction()
	suite.mockAccountSvc.On("ApplyUncheckedMovementInTx", suite.ctx, mock.Anything, "acc-1", "cur-1",
		mock.MatchedBy(func(delta decimal.Decimal) bool { return delta.Equal(decimal.NewFromInt(-80)) }),
		"user-1").Return(nil).Once()
	suite.mockJournalRepo.On("DeleteEntryInTx", suite.ctx, mock.Anything, "je-1").Return(nil).Once()

	err := suite.service.DeleteEntry(suite.ctx, "je-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
