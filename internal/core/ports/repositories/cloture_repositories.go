package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ClotureReader defines read operations for period closures
type ClotureReader interface {
	// FindClotureByID retrieves a closure of an organisation by its identifier.
	FindClotureByID(ctx context.Context, organisationID, clotureID string) (*domain.PeriodClosure, error)

	// ListCloturesByYear retrieves all closures of a year, most recent month first.
	ListCloturesByYear(ctx context.Context, organisationID string, annee int) ([]domain.PeriodClosure, error)
}

// ClotureWriter defines write operations for period closures
type ClotureWriter interface {
	// SaveCloture persists a new closure. It returns apperrors.ErrDuplicate when
	// the organisation already has a closure for the same month.
	SaveCloture(ctx context.Context, cloture domain.PeriodClosure) error
}

// ClotureTransitionSupport defines the locked read-modify-write used by status transitions
type ClotureTransitionSupport interface {
	// FindClotureByIDForUpdate selects a closure and locks its row within tx.
	FindClotureByIDForUpdate(ctx context.Context, tx pgx.Tx, organisationID, clotureID string) (*domain.PeriodClosure, error)

	// UpdateClotureStatusInTx moves a closure to status, stamping the matching
	// audit columns and storing the given figures.
	UpdateClotureStatusInTx(ctx context.Context, tx pgx.Tx, clotureID string, status domain.ClotureStatus, figures domain.Financials, actorID string, at time.Time) error

	// FindClotureStatusForShare returns the status of the closure covering
	// (mois, annee) under a share lock, or nil when no closure exists.
	FindClotureStatusForShare(ctx context.Context, tx pgx.Tx, organisationID string, mois, annee int) (*domain.ClotureStatus, error)
}

// ClotureRepositoryFacade combines all closure-related repository interfaces
type ClotureRepositoryFacade interface {
	ClotureReader
	ClotureWriter
	ClotureTransitionSupport
}

// ClotureRepositoryWithTx extends ClotureRepositoryFacade with transaction capabilities
type ClotureRepositoryWithTx interface {
	ClotureRepositoryFacade
	TransactionManager
}
