package services

import (
	"context"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// GetUserByID retrieves a user by identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, params dto.ListParams) ([]domain.User, error)

	// UpdateUser updates a user's details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorID string) (*domain.User, error)

	// FindOrCreateOAuthUser returns the user matching the OAuth identity,
	// creating one on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, info domain.GoogleUserInfo) (*domain.User, error)
}
