package services

import (
	"context"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// UserSvcFacade defines user management operations
type UserSvcFacade interface {
	// CreateUser adds a user to the caller's organisation. Admin only.
	CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by login email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// BootstrapAdmin creates an organisation and its ADMIN user unless the email is already registered.
	// The boolean reports whether anything was created.
	BootstrapAdmin(ctx context.Context, organisationName, name, email, password string) (*domain.User, bool, error)
}

// TokenSvcFacade issues and parses access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ParseAccessToken(ctx context.Context, token string) (*domain.Principal, error)
}

// AuthSvcFacade authenticates users and returns a session payload.
type AuthSvcFacade interface {
	// Login checks an email/password pair.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// LoginWithGoogle authenticates an existing user from a Google ID token.
	LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error)

	// LoginWithGoogleCode completes the OAuth redirect flow from an authorization code.
	LoginWithGoogleCode(ctx context.Context, code string) (*dto.AuthResponse, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
