package services

import (
	"context"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/dto"
)

// LedgerSvcFacade defines the ledger operations that feed period closures
type LedgerSvcFacade interface {
	// CreateAccount adds a ledger account to the caller's organisation.
	CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error)

	// ListAccounts returns the accounts of the caller's organisation.
	ListAccounts(ctx context.Context, actor domain.Principal) ([]domain.Account, error)

	// PostJournal records a balanced journal. Months whose closure is validated
	// or closed reject new journals.
	PostJournal(ctx context.Context, actor domain.Principal, req dto.CreateJournalRequest) (*domain.Journal, error)
}
