package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/core/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/utils"
	"github.com/hesabix/hesabix_backend/pkg/config"
)

// MockTokenService is a mock implementation of portssvc.TokenSvcFacade.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	args := m.Called(ctx, tokenString)
	return args.String(0), args.Error(1)
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockUserRepository
	mockToken *MockTokenService
	service   portssvc.AuthSvcFacade
	ctx       context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockToken = new(MockTokenService)
	suite.service = services.NewAuthService(suite.mockRepo, suite.mockToken)
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	req := dto.RegisterUserRequest{Name: "  Sara  ", Email: "Sara@Example.com", Password: "correct-horse"}
	expiresAt := time.Now().Add(time.Hour)

	suite.mockRepo.On("FindUserByEmail", suite.ctx, "sara@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "sara@example.com" &&
			u.Name == "Sara" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" && u.PasswordHash != "correct-horse"
	})).Return(nil).Once()
	suite.mockToken.On("GenerateAccessToken", suite.ctx, mock.Anything).Return("signed-token", expiresAt, nil).Once()

	resp, err := suite.service.Register(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "signed-token", resp.Token)
	assert.Equal(suite.T(), "sara@example.com", resp.User.Email)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockToken.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	req := dto.RegisterUserRequest{Name: "Sara", Email: "sara@example.com", Password: "correct-horse"}
	existing := &domain.User{UserID: "user-1", Email: "sara@example.com"}
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "sara@example.com").Return(existing, nil).Once()

	_, err := suite.service.Register(suite.ctx, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       "user-1",
		Name:         "Sara",
		Email:        "sara@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}
	expiresAt := time.Now().Add(time.Hour)
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "sara@example.com").Return(user, nil).Once()
	suite.mockToken.On("GenerateAccessToken", suite.ctx, user).Return("signed-token", expiresAt, nil).Once()

	resp, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "Sara@Example.com", Password: "correct-horse"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "signed-token", resp.Token)
	assert.Equal(suite.T(), expiresAt, resp.ExpiresAt)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockToken.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	assert.EqualError(suite.T(), err, "invalid email or password")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       "user-1",
		Email:        "sara@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "sara@example.com").Return(user, nil).Once()

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Email: "sara@example.com", Password: "wrong-horse"})

	// Same message as the unknown-email case so callers cannot probe for accounts.
	assert.EqualError(suite.T(), err, "invalid email or password")
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_OAuthOnlyAccount() {
	user := &domain.User{
		UserID:       "user-1",
		Email:        "sara@example.com",
		AuthProvider: domain.ProviderGoogle,
	}
	suite.mockRepo.On("FindUserByEmail", suite.ctx, "sara@example.com").Return(user, nil).Once()

	_, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "sara@example.com", Password: "correct-horse"})

	assert.EqualError(suite.T(), err, "invalid email or password")
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestTokenService_RoundTrip(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "hesabix_backend",
	}
	svc := services.NewTokenService(cfg)
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	token, expiresAt, err := svc.GenerateAccessToken(ctx, user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := svc.ValidateAccessToken(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{UserID: "user-1"}

	signer := services.NewTokenService(&config.Config{JWTSecret: "secret-a", JWTExpiryDuration: time.Hour, JWTIssuer: "hesabix_backend"})
	verifier := services.NewTokenService(&config.Config{JWTSecret: "secret-b", JWTExpiryDuration: time.Hour, JWTIssuer: "hesabix_backend"})

	token, _, err := signer.GenerateAccessToken(ctx, user)
	assert.NoError(t, err)

	_, err = verifier.ValidateAccessToken(ctx, token)
	assert.Error(t, err)
}
