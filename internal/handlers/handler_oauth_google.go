package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hesabix/hesabix_backend/internal/core/domain"
	portssvc "github.com/hesabix/hesabix_backend/internal/core/ports/services"
	"github.com/hesabix/hesabix_backend/internal/dto"
	"github.com/hesabix/hesabix_backend/internal/middleware"
)

const oauthStateCookie = "oauth_state"

// googleOAuthHandler handles the Google OAuth sign-in round-trip.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newGoogleOAuthHandler(oauthService portssvc.GoogleOAuthSvcFacade, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{
		oauthService: oauthService,
		userService:  userService,
		tokenService: tokenService,
	}
}

// registerGoogleOAuthRoutes sets up the public Google login routes.
func registerGoogleOAuthRoutes(r *gin.Engine, oauthService portssvc.GoogleOAuthSvcFacade, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade) {
	h := newGoogleOAuthHandler(oauthService, userService, tokenService)

	google := r.Group("/auth/google")
	{
		google.GET("/login", h.login)
		google.POST("/callback", h.callback)
	}
}

// login godoc
// @Summary Begin Google OAuth login
// @Description Redirects to the Google consent screen with a CSRF state cookie
// @Tags auth
// @Success 307
// @Failure 500 {object} map[string]string "Failed to start OAuth flow"
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// State round-trips through a short-lived cookie for CSRF verification.
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callback godoc
// @Summary Complete Google OAuth login
// @Description Exchanges the authorization code, finds or creates the user and returns a signed access token
// @Tags auth
// @Accept json
// @Produce json
// @Param callback body dto.GoogleCallbackRequest true "Authorization code and state"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string "Invalid code or state"
// @Router /auth/google/callback [post]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	var req dto.GoogleCallbackRequest
	if !bindJSON(c, &req) {
		return
	}

	if cookieState, err := c.Cookie(oauthStateCookie); err == nil && cookieState != "" {
		if req.State != cookieState {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OAuth state mismatch"})
			return
		}
		c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange authorization code"})
		return
	}
	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch Google profile"})
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(c.Request.Context(), domain.ProviderGoogle, *info)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Google sign-in completed", "user_id", user.UserID)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}
