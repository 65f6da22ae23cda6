package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	"github.com/hesabix/hesabix_backend/internal/dto"
)

// AuthSvcFacade defines local credential authentication.
type AuthSvcFacade interface {
	// Register creates a local user with a hashed password and signs them in.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.AuthResponse, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

// TokenSvcFacade defines access token issuance and verification.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken verifies a token and returns the subject user ID.
	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
}

// GoogleOAuthSvcFacade defines the Google OAuth sign-in flow.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a CSRF token for the OAuth round-trip.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the consent screen URL for the given state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo fetches the Google profile behind the token.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)

	// ValidateGoogleIDToken verifies an ID token against our client ID and
	// returns the verified payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
