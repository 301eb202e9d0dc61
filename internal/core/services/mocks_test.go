package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a live pgx transaction; repositories are mocked so it is never used.
type fakeTx struct {
	pgx.Tx
}

// --- Mock ClotureRepository ---
type MockClotureRepository struct {
	mock.Mock
}

func (m *MockClotureRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockClotureRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockClotureRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockClotureRepository) FindClotureByID(ctx context.Context, organisationID, clotureID string) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, organisationID, clotureID)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureRepository) ListCloturesByYear(ctx context.Context, organisationID string, annee int) ([]domain.PeriodClosure, error) {
	args := m.Called(ctx, organisationID, annee)
	closures, _ := args.Get(0).([]domain.PeriodClosure)
	return closures, args.Error(1)
}

func (m *MockClotureRepository) SaveCloture(ctx context.Context, cloture domain.PeriodClosure) error {
	return m.Called(ctx, cloture).Error(0)
}

func (m *MockClotureRepository) FindClotureByIDForUpdate(ctx context.Context, tx pgx.Tx, organisationID, clotureID string) (*domain.PeriodClosure, error) {
	args := m.Called(ctx, tx, organisationID, clotureID)
	closure, _ := args.Get(0).(*domain.PeriodClosure)
	return closure, args.Error(1)
}

func (m *MockClotureRepository) UpdateClotureStatusInTx(ctx context.Context, tx pgx.Tx, clotureID string, status domain.ClotureStatus, figures domain.Financials, actorID string, at time.Time) error {
	return m.Called(ctx, tx, clotureID, status, figures, actorID, at).Error(0)
}

func (m *MockClotureRepository) FindClotureStatusForShare(ctx context.Context, tx pgx.Tx, organisationID string, mois, annee int) (*domain.ClotureStatus, error) {
	args := m.Called(ctx, tx, organisationID, mois, annee)
	status, _ := args.Get(0).(*domain.ClotureStatus)
	return status, args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetLedgerTotals(ctx context.Context, organisationID string, from, to time.Time) (domain.LedgerTotals, error) {
	args := m.Called(ctx, organisationID, from, to)
	totals, _ := args.Get(0).(domain.LedgerTotals)
	return totals, args.Error(1)
}

func (m *MockLedgerRepository) FindAccountsByIDs(ctx context.Context, organisationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organisationID, accountIDs)
	accounts, _ := args.Get(0).(map[string]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockLedgerRepository) ListAccounts(ctx context.Context, organisationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organisationID)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockLedgerRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	return m.Called(ctx, tx, journal).Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Mock Locker ---
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Obtain(ctx context.Context, key string) (portssvc.Unlocker, error) {
	args := m.Called(ctx, key)
	lock, _ := args.Get(0).(portssvc.Unlocker)
	return lock, args.Error(1)
}

type MockUnlocker struct {
	mock.Mock
}

func (m *MockUnlocker) Release(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- Stub exporter ---
type stubExporter struct {
	content []byte
	err     error
	got     []domain.PeriodClosure
}

func (e *stubExporter) Export(annee int, closures []domain.PeriodClosure) ([]byte, error) {
	e.got = closures
	return e.content, e.err
}

func (e *stubExporter) Filename(annee int) string { return "clotures.xlsx" }

func (e *stubExporter) MimeType() string { return "application/test" }

func (m *MockUserRepository) SaveOrganisationWithAdmin(ctx context.Context, org domain.Organisation, admin domain.User) error {
	return m.Called(ctx, org, admin).Error(0)
}
