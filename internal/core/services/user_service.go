package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hesabix/hesabix_backend/internal/apperrors"
	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portsrepo "github.com/hesabix/hesabix_backend/internal/core/ports/repositories"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
)

// userService manages application operators.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListParams) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actorID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindOrCreateOAuthUser returns the user matching the OAuth identity,
// creating one on first sign-in. A local user with the same verified email is
// linked to the provider rather than duplicated.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByProviderID(ctx, provider, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: oauth profile has no email", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !info.VerifiedEmail {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
		}
		providerID := info.ID
		existing.AuthProvider = provider
		existing.ProviderUserID = &providerID
		existing.IsVerified = true
		existing.LastUpdatedAt = time.Now().UTC()
		existing.LastUpdatedBy = existing.UserID
		if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
			return nil, err
		}
		logger.Info("Linked existing user to oauth provider", "user_id", existing.UserID)
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	providerID := info.ID
	now := time.Now().UTC()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:         userID,
		Name:           info.Name,
		Email:          email,
		AuthProvider:   provider,
		ProviderUserID: &providerID,
		IsVerified:     info.VerifiedEmail,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, err
	}
	logger.Info("Created user from oauth sign-in", "user_id", newUser.UserID)
	return &newUser, nil
}
