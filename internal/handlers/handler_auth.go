package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	googleOAuth  portssvc.GoogleOAuthHandlerSvcFacade
	secureCookie bool
}

// registerAuthRoutes sets up the public authentication routes. Credential
// endpoints share the login limiter.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter, isProduction bool) {
	h := &authHandler{
		authService:  services.Auth,
		googleOAuth:  services.GoogleOAuthHandler,
		secureCookie: isProduction,
	}

	auth := rg.Group("/auth")
	if loginLimiter != nil {
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
		auth.POST("/google", middleware.RateLimit(loginLimiter), h.loginWithGoogle)
	} else {
		auth.POST("/login", h.login)
		auth.POST("/google", h.loginWithGoogle)
	}
	auth.GET("/google/url", h.googleLoginURL)
	auth.GET("/google/callback", h.googleCallback)
}

// login godoc
// @Summary User login
// @Description Authenticates a user with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

// loginWithGoogle godoc
// @Summary Login with a Google ID token
// @Description Authenticates an existing user from a Google Sign-In ID token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.authService.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in with Google")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// googleLoginURL godoc
// @Summary Google OAuth consent URL
// @Description Returns the Google consent URL and sets the CSRF state cookie checked on callback.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/url [get]
func (h *authHandler) googleLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuth.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start Google login")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{
		URL:   h.googleOAuth.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// googleCallback godoc
// @Summary Google OAuth callback
// @Description Completes the redirect flow: checks the state and exchanges the code for an application token.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state := c.Query("state")
	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != expected {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	resp, err := h.authService.LoginWithGoogleCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Failed to complete Google login")
		return
	}
	c.JSON(http.StatusOK, resp)
}
