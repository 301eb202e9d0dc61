package repositories

import (
	"context"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by login email (case-insensitive).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. It returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// SaveOrganisationWithAdmin creates an organisation and its first user atomically.
	SaveOrganisationWithAdmin(ctx context.Context, org domain.Organisation, admin domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	ClotureRepo ClotureRepositoryWithTx
	LedgerRepo  LedgerRepositoryFacade
	UserRepo    UserRepositoryFacade
}
