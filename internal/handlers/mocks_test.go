package handlers_test

import (
	"context"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock ClotureService ---
type MockClotureService struct {
	mock.Mock
}

var _ portssvc.ClotureSvcFacade = (*MockClotureService)(nil)

func (m *MockClotureService) ListClotures(ctx context.Context, actor domain.Principal, annee int) ([]domain.PeriodClosure, error) {
	args := m.Called(ctx, actor, annee)
	closures, _ := args.Get(0).([]domain.PeriodClosure)
	return closures, args.Error(1)
}

func (m *MockClotureService) GetCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, actor, clotureID)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureService) CreateCloture(ctx context.Context, actor domain.Principal, mois, annee int) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, actor, mois, annee)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureService) ValidateCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, actor, clotureID)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureService) CloseCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, actor, clotureID)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureService) ExportClotures(ctx context.Context, actor domain.Principal, annee int) (*domain.ExportFile, error) {
	args := m.Called(ctx, actor, annee)
	file, _ := args.Get(0).(*domain.ExportFile)
	return file, args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, actor, req)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, actor domain.Principal) ([]domain.Account, error) {
	args := m.Called(ctx, actor)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockLedgerService) PostJournal(ctx context.Context, actor domain.Principal, req dto.CreateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, actor, req)
	journal, _ := args.Get(0).(*domain.Journal)
	return journal, args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) CreateUser(ctx context.Context, actor domain.Principal, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserService) BootstrapAdmin(ctx context.Context, organisationName, name, email, password string) (*domain.User, bool, error) {
	args := m.Called(ctx, organisationName, name, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Bool(1), args.Error(2)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *MockAuthService) LoginWithGoogleCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, code)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

// --- Mock GoogleOAuthHandlerService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	token, _ := args.Get(0).(*oauth2.Token)
	return token, args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	payload, _ := args.Get(0).(*idtoken.Payload)
	return payload, args.Error(1)
}
