package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/utils/accounting"
	"github.com/google/uuid"
)

var (
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// ledgerService records the accounts and journals that closure figures are computed from.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	clotureRepo portsrepo.ClotureRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, clotureRepo portsrepo.ClotureRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		clotureRepo: clotureRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateAccount(ctx context.Context, actor domain.Principal, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleComptable); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !req.Category.CompatibleWith(req.AccountType) {
		return nil, fmt.Errorf("%w: category %s cannot be used on a %s account", apperrors.ErrValidation, req.Category, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganisationID: actor.OrganisationID,
		Name:           strings.TrimSpace(req.Name),
		AccountType:    req.AccountType,
		Category:       req.Category,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", account.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, actor domain.Principal) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleLecteur); err != nil {
		return nil, err
	}
	accounts, err := s.ledgerRepo.ListAccounts(ctx, actor.OrganisationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *ledgerService) PostJournal(ctx context.Context, actor domain.Principal, req dto.CreateJournalRequest) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleComptable); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing.Error())
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	journalDate := req.JournalDate.UTC()

	transactions := make([]domain.Transaction, len(req.Transactions))
	accountIDs := make([]string, 0, len(req.Transactions))
	seen := make(map[string]bool, len(req.Transactions))
	for i, line := range req.Transactions {
		transactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       line.AccountID,
			Amount:          line.Amount,
			TransactionType: line.TransactionType,
			Notes:           line.Notes,
		}
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	if len(accountIDs) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinAccounts.Error())
	}

	accounts, err := s.ledgerRepo.FindAccountsByIDs(ctx, actor.OrganisationID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accounts))
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s: ID %s", apperrors.ErrValidation, ErrAccountNotFound.Error(), id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	if err := accounting.ValidateJournalBalance(transactions, accountTypes); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	journal := domain.Journal{
		JournalID:      journalID,
		OrganisationID: actor.OrganisationID,
		JournalDate:    journalDate,
		Description:    description,
		Status:         domain.Posted,
		Transactions:   transactions,
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}

	tx, err := s.clotureRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.clotureRepo.Rollback(ctx, tx)
		}
	}()

	// The share lock makes posting wait for, or block, a concurrent validation of the same month.
	mois, annee := int(journalDate.Month()), journalDate.Year()
	status, err := s.clotureRepo.FindClotureStatusForShare(ctx, tx, actor.OrganisationID, mois, annee)
	if err != nil {
		s.LogError(ctx, err, "Failed to read closure status for journal period")
		return nil, fmt.Errorf("failed to read closure status: %w", err)
	}
	if status != nil && *status != domain.StatutOuverte {
		return nil, fmt.Errorf("%w: period %02d/%d is %s", apperrors.ErrLocked, mois, annee, *status)
	}

	if err := s.ledgerRepo.SaveJournalInTx(ctx, tx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save journal")
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}
	if err := s.clotureRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit journal")
		return nil, fmt.Errorf("failed to commit journal: %w", err)
	}
	committed = true

	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID), slog.Int("lines", len(transactions)))
	return &journal, nil
}
