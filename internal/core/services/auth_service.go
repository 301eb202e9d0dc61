package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/platform/config"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, now: time.Now}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	claims := utils.Claims{
		Name:           user.Name,
		Role:           string(user.Role),
		OrganisationID: user.OrganisationID,
	}
	claims.Subject = user.UserID
	return utils.GenerateJWT(claims, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
}

// ParseAccessToken validates an access token and returns the caller it identifies.
func (s *tokenService) ParseAccessToken(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	role := domain.Role(claims.Role)
	if !role.IsValid() || claims.OrganisationID == "" {
		return nil, fmt.Errorf("%w: token claims incomplete", apperrors.ErrUnauthorized)
	}
	return &domain.Principal{
		UserID:         claims.Subject,
		OrganisationID: claims.OrganisationID,
		Name:           claims.Name,
		Role:           role,
	}, nil
}

// authService turns verified credentials into an access token and user payload.
type authService struct {
	BaseService
	userSvc   portssvc.UserSvcFacade
	tokenSvc  portssvc.TokenSvcFacade
	googleSvc portssvc.GoogleOAuthHandlerSvcFacade
}

// NewAuthService creates a new AuthService.
func NewAuthService(userSvc portssvc.UserSvcFacade, tokenSvc portssvc.TokenSvcFacade, googleSvc portssvc.GoogleOAuthHandlerSvcFacade) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, tokenSvc: tokenSvc, googleSvc: googleSvc}
}

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userSvc.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.GetLogger(ctx).Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, errInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	payload, err := s.googleSvc.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		s.GetLogger(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	return s.loginFromGooglePayload(ctx, payload)
}

func (s *authService) LoginWithGoogleCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, err := s.googleSvc.ExchangeCodeForToken(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange Google authorization code")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: google response carries no id_token", apperrors.ErrUnauthorized)
	}
	return s.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: rawIDToken})
}

// loginFromGooglePayload only signs in users an administrator already created.
func (s *authService) loginFromGooglePayload(ctx context.Context, payload *idtoken.Payload) (*dto.AuthResponse, error) {
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, fmt.Errorf("%w: google account email is missing or unverified", apperrors.ErrUnauthorized)
	}

	user, err := s.userSvc.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account is registered for %s", apperrors.ErrUnauthorized, email)
		}
		s.LogError(ctx, err, "Failed to look up user for Google login")
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
