package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations on the farm ledger
type LedgerReader interface {
	// GetLedgerTotals aggregates posted journal lines by account category.
	// Flow figures cover [from, to); balance figures are taken at to.
	GetLedgerTotals(ctx context.Context, organisationID string, from, to time.Time) (domain.LedgerTotals, error)

	// FindAccountsByIDs retrieves the accounts of an organisation keyed by ID.
	FindAccountsByIDs(ctx context.Context, organisationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts of an organisation ordered by name.
	ListAccounts(ctx context.Context, organisationID string) ([]domain.Account, error)
}

// LedgerWriter defines write operations on the farm ledger
type LedgerWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveJournalInTx persists a journal and its lines within tx.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
