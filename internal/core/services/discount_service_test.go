package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

// --- Mock DiscountCodeRepository ---
type MockDiscountCodeRepository struct {
	mock.Mock
}

func (m *MockDiscountCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, codeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountCodeRepository) FindByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountCodeRepository) ListCodes(ctx context.Context, limit int, offset int) ([]domain.DiscountCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountCodeRepository) SaveCode(ctx context.Context, code domain.DiscountCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDiscountCodeRepository) UpdateCode(ctx context.Context, code domain.DiscountCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDiscountCodeRepository) DeleteCode(ctx context.Context, codeID string) error {
	args := m.Called(ctx, codeID)
	return args.Error(0)
}

func (m *MockDiscountCodeRepository) IncrementUseCountInTx(ctx context.Context, tx pgx.Tx, codeID string) error {
	args := m.Called(ctx, tx, codeID)
	return args.Error(0)
}

// --- Test Suite ---
type DiscountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDiscountCodeRepository
	service  portssvc.DiscountSvcFacade
}

func (suite *DiscountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDiscountCodeRepository)
	suite.service = services.NewDiscountService(suite.mockRepo)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- Test Cases ---

func (suite *DiscountServiceTestSuite) TestCreateCode_NormalizesCode() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateDiscountCodeRequest{
		Code:  "  summer10 ",
		Type:  domain.DiscountPercent,
		Value: decimal.NewFromInt(10),
	}

	suite.mockRepo.On("SaveCode", ctx, mock.MatchedBy(func(c domain.DiscountCode) bool {
		return c.Code == "SUMMER10" && c.UseCount == 0 && c.CreatedBy == userID
	})).Return(nil).Once()

	code, err := suite.service.CreateCode(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal("SUMMER10", code.Code)
	suite.Zero(code.UseCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DiscountServiceTestSuite) TestCreateCode_PercentOverHundred() {
	ctx := context.Background()
	req := dto.CreateDiscountCodeRequest{
		Code:  "TOOBIG",
		Type:  domain.DiscountPercent,
		Value: decimal.NewFromInt(101),
	}

	code, err := suite.service.CreateCode(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(code)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCode")
}

func (suite *DiscountServiceTestSuite) TestCreateCode_NonPositiveValue() {
	ctx := context.Background()
	req := dto.CreateDiscountCodeRequest{
		Code:  "ZERO",
		Type:  domain.DiscountFixed,
		Value: decimal.Zero,
	}

	code, err := suite.service.CreateCode(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(code)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DiscountServiceTestSuite) TestCreateCode_WindowReversed() {
	ctx := context.Background()
	req := dto.CreateDiscountCodeRequest{
		Code:      "WINDOW",
		Type:      domain.DiscountFixed,
		Value:     decimal.NewFromInt(5),
		ValidFrom: strPtr("2026-02-01"),
		ValidTo:   strPtr("2026-01-01"),
	}

	code, err := suite.service.CreateCode(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(code)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DiscountServiceTestSuite) TestValidateCode_PercentDiscount() {
	ctx := context.Background()
	stored := &domain.DiscountCode{
		CodeID: uuid.NewString(),
		Code:   "TEN",
		Type:   domain.DiscountPercent,
		Value:  decimal.NewFromInt(10),
	}

	suite.mockRepo.On("FindByCode", ctx, "TEN").Return(stored, nil).Once()

	resp, err := suite.service.ValidateCode(ctx, "ten", decimal.NewFromInt(200))

	suite.Require().NoError(err)
	suite.True(resp.Valid)
	suite.True(resp.DiscountAmount.Equal(decimal.NewFromInt(20)),
		"expected 20, got %s", resp.DiscountAmount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DiscountServiceTestSuite) TestValidateCode_Expired() {
	ctx := context.Background()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	stored := &domain.DiscountCode{
		CodeID:  uuid.NewString(),
		Code:    "OLD",
		Type:    domain.DiscountFixed,
		Value:   decimal.NewFromInt(5),
		ValidTo: &yesterday,
	}

	suite.mockRepo.On("FindByCode", ctx, "OLD").Return(stored, nil).Once()

	resp, err := suite.service.ValidateCode(ctx, "OLD", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.False(resp.Valid)
	suite.Equal("code has expired", resp.Reason)
	suite.True(resp.DiscountAmount.IsZero())
}

func (suite *DiscountServiceTestSuite) TestValidateCode_BelowMinPurchase() {
	ctx := context.Background()
	stored := &domain.DiscountCode{
		CodeID:      uuid.NewString(),
		Code:        "BIGORDER",
		Type:        domain.DiscountFixed,
		Value:       decimal.NewFromInt(5),
		MinPurchase: decimal.NewFromInt(50),
	}

	suite.mockRepo.On("FindByCode", ctx, "BIGORDER").Return(stored, nil).Once()

	resp, err := suite.service.ValidateCode(ctx, "BIGORDER", decimal.NewFromInt(49))

	suite.Require().NoError(err)
	suite.False(resp.Valid)
	suite.Contains(resp.Reason, "minimum purchase")
}

func (suite *DiscountServiceTestSuite) TestValidateCode_UsageLimitReached() {
	ctx := context.Background()
	stored := &domain.DiscountCode{
		CodeID:   uuid.NewString(),
		Code:     "LIMITED",
		Type:     domain.DiscountFixed,
		Value:    decimal.NewFromInt(5),
		MaxUses:  intPtr(3),
		UseCount: 3,
	}

	suite.mockRepo.On("FindByCode", ctx, "LIMITED").Return(stored, nil).Once()

	resp, err := suite.service.ValidateCode(ctx, "LIMITED", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.False(resp.Valid)
	suite.Equal("code has reached its usage limit", resp.Reason)
}

func (suite *DiscountServiceTestSuite) TestValidateCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindByCode", ctx, "MISSING").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ValidateCode(ctx, "MISSING", decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DiscountServiceTestSuite) TestRedeemCodeInTx_BumpsUseCount() {
	ctx := context.Background()
	stored := &domain.DiscountCode{
		CodeID:   uuid.NewString(),
		Code:     "TEN",
		Type:     domain.DiscountPercent,
		Value:    decimal.NewFromInt(10),
		UseCount: 1,
	}

	suite.mockRepo.On("FindByCode", ctx, "TEN").Return(stored, nil).Once()
	suite.mockRepo.On("IncrementUseCountInTx", ctx, mock.Anything, stored.CodeID).Return(nil).Once()

	code, err := suite.service.RedeemCodeInTx(ctx, nil, "TEN", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.Equal(2, code.UseCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DiscountServiceTestSuite) TestRedeemCodeInTx_ExpiredFails() {
	ctx := context.Background()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	stored := &domain.DiscountCode{
		CodeID:  uuid.NewString(),
		Code:    "OLD",
		Type:    domain.DiscountFixed,
		Value:   decimal.NewFromInt(5),
		ValidTo: &yesterday,
	}

	suite.mockRepo.On("FindByCode", ctx, "OLD").Return(stored, nil).Once()

	code, err := suite.service.RedeemCodeInTx(ctx, nil, "OLD", decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.Nil(code)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "IncrementUseCountInTx")
}

func (suite *DiscountServiceTestSuite) TestUpdateCode_RevalidatesCombined() {
	ctx := context.Background()
	stored := &domain.DiscountCode{
		CodeID: uuid.NewString(),
		Code:   "TEN",
		Type:   domain.DiscountPercent,
		Value:  decimal.NewFromInt(10),
	}
	tooBig := decimal.NewFromInt(150)

	suite.mockRepo.On("FindCodeByID", ctx, stored.CodeID).Return(stored, nil).Once()

	code, err := suite.service.UpdateCode(ctx, stored.CodeID, dto.UpdateDiscountCodeRequest{Value: &tooBig}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(code)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCode")
}

func (suite *DiscountServiceTestSuite) TestListCodes_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("ListCodes", ctx, 20, 0).Return(nil, nil).Once()

	codes, err := suite.service.ListCodes(ctx, dto.ListParams{Limit: 20})

	suite.Require().NoError(err)
	suite.NotNil(codes)
	suite.Empty(codes)
}

func (suite *DiscountServiceTestSuite) TestDeleteCode_RepoError() {
	ctx := context.Background()
	codeID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindCodeByID", ctx, codeID).Return(&domain.DiscountCode{CodeID: codeID}, nil).Once()
	suite.mockRepo.On("DeleteCode", ctx, codeID).Return(expectedErr).Once()

	err := suite.service.DeleteCode(ctx, codeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestDiscountService(t *testing.T) {
	suite.Run(t, new(DiscountServiceTestSuite))
}
