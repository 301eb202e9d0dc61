package services

import (
	"context"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
)

// ClotureReaderSvc defines read operations for period closures
type ClotureReaderSvc interface {
	// ListClotures returns all closures of a year for the caller's organisation, most recent month first.
	ListClotures(ctx context.Context, actor domain.Principal, annee int) ([]domain.PeriodClosure, error)

	// GetCloture returns one closure of the caller's organisation.
	GetCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error)
}

// ClotureWorkflowSvc defines the closure lifecycle operations
type ClotureWorkflowSvc interface {
	// CreateCloture opens the closure of (mois, annee) with figures computed from the ledger.
	CreateCloture(ctx context.Context, actor domain.Principal, mois, annee int) (*domain.PeriodClosure, error)

	// ValidateCloture moves an ouverte closure to validee.
	ValidateCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error)

	// CloseCloture moves a validee closure to cloturee. This is irreversible.
	CloseCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error)
}

// ClotureExportSvc defines export operations for period closures
type ClotureExportSvc interface {
	// ExportClotures renders the closures of a year as a spreadsheet.
	ExportClotures(ctx context.Context, actor domain.Principal, annee int) (*domain.ExportFile, error)
}

// ClotureSvcFacade combines all closure-related service interfaces
type ClotureSvcFacade interface {
	ClotureReaderSvc
	ClotureWorkflowSvc
	ClotureExportSvc
}

// Unlocker releases a lock obtained from a Locker.
type Unlocker interface {
	Release(ctx context.Context) error
}

// Locker serializes work on a key across server instances.
type Locker interface {
	// Obtain acquires the lock for key or returns apperrors.ErrLocked when it is held elsewhere.
	Obtain(ctx context.Context, key string) (Unlocker, error)
}

// ClotureExporter renders closures into a downloadable document.
type ClotureExporter interface {
	Export(annee int, closures []domain.PeriodClosure) ([]byte, error)
	Filename(annee int) string
	MimeType() string
}
