package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/core/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/handlers"
	"github.com/SscSPs/farm_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAuth    *MockAuthService
	mockGoogle  *MockGoogleOAuthService
	loginRate   string
	authPayload *dto.AuthResponse
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, &AuthHandlerTestSuite{loginRate: "2-M"})
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	suite.mockAuth = new(MockAuthService)
	suite.mockGoogle = new(MockGoogleOAuthService)

	loginLimiter, err := middleware.NewLimiter(suite.loginRate)
	suite.Require().NoError(err)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Cloture:            new(MockClotureService),
		Ledger:             new(MockLedgerService),
		User:               new(MockUserService),
		Token:              services.NewTokenService(cfg),
		Auth:               suite.mockAuth,
		GoogleOAuthHandler: suite.mockGoogle,
	}, loginLimiter)

	suite.authPayload = &dto.AuthResponse{
		Token:     "signed-token",
		ExpiresAt: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		User: dto.UserResponse{
			UserID:         "u-1",
			OrganisationID: testOrganisationID,
			Name:           "Marie",
			Email:          "marie@ferme.fr",
			Role:           domain.RoleAdmin,
		},
	}
}

func (suite *AuthHandlerTestSuite) postLogin(body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	req := dto.LoginRequest{Email: "marie@ferme.fr", Password: "secret-pass"}
	suite.mockAuth.On("Login", mock.Anything, req).Return(suite.authPayload, nil).Once()

	w := suite.postLogin(req)

	suite.Equal(http.StatusOK, w.Code)
	var got map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("signed-token", got["userToken"])
	userData, ok := got["userData"].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("ADMIN", userData["role"])
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	req := dto.LoginRequest{Email: "marie@ferme.fr", Password: "wrong"}
	suite.mockAuth.On("Login", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)).Once()

	w := suite.postLogin(req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidBody() {
	w := suite.postLogin(map[string]string{"email": "not-an-email"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_RateLimited() {
	req := dto.LoginRequest{Email: "marie@ferme.fr", Password: "wrong"}
	suite.mockAuth.On("Login", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized))

	suite.Equal(http.StatusUnauthorized, suite.postLogin(req).Code)
	suite.Equal(http.StatusUnauthorized, suite.postLogin(req).Code)
	w := suite.postLogin(req)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.mockAuth.AssertNumberOfCalls(suite.T(), "Login", 2)
}

func (suite *AuthHandlerTestSuite) TestGoogleLoginURL_SetsStateCookie() {
	suite.mockGoogle.On("GenerateStateString", mock.Anything).Return("state-123", nil).Once()
	suite.mockGoogle.On("GetGoogleLoginURL", mock.Anything, "state-123").Return("https://accounts.google.com/o/oauth2/auth?state=state-123").Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/url", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Set-Cookie"), "oauth_state=state-123")
	var got dto.GoogleLoginURLResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("state-123", got.State)
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_StateMismatch() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-123"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "LoginWithGoogleCode", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_Success() {
	suite.mockAuth.On("LoginWithGoogleCode", mock.Anything, "abc").Return(suite.authPayload, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=abc&state=state-123", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-123"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "signed-token")
}
