package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// clotureService implements the ClotureSvcFacade interface
type clotureService struct {
	BaseService
	clotureRepo portsrepo.ClotureRepositoryWithTx
	ledgerRepo  portsrepo.LedgerReader
	locker      portssvc.Locker
	exporter    portssvc.ClotureExporter
	now         func() time.Time
}

// ClotureServiceOption is a functional option for configuring the closure service
type ClotureServiceOption func(*clotureService)

// WithLocker serializes transitions of the same closure across server instances.
func WithLocker(locker portssvc.Locker) ClotureServiceOption {
	return func(s *clotureService) {
		s.locker = locker
	}
}

// WithExporter sets the spreadsheet renderer used by ExportClotures.
func WithExporter(exporter portssvc.ClotureExporter) ClotureServiceOption {
	return func(s *clotureService) {
		s.exporter = exporter
	}
}

// WithClock overrides the time source used for audit stamps.
func WithClock(now func() time.Time) ClotureServiceOption {
	return func(s *clotureService) {
		s.now = now
	}
}

// NewClotureService creates a new closure service with the provided options
func NewClotureService(clotureRepo portsrepo.ClotureRepositoryWithTx, ledgerRepo portsrepo.LedgerReader, options ...ClotureServiceOption) portssvc.ClotureSvcFacade {
	svc := &clotureService{
		clotureRepo: clotureRepo,
		ledgerRepo:  ledgerRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClotureSvcFacade = (*clotureService)(nil)

func (s *clotureService) ListClotures(ctx context.Context, actor domain.Principal, annee int) ([]domain.PeriodClosure, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleLecteur); err != nil {
		return nil, err
	}
	if annee < domain.MinClotureYear || annee > domain.MaxClotureYear {
		return nil, fmt.Errorf("%w: annee must be between %d and %d", apperrors.ErrValidation, domain.MinClotureYear, domain.MaxClotureYear)
	}

	closures, err := s.clotureRepo.ListCloturesByYear(ctx, actor.OrganisationID, annee)
	if err != nil {
		s.LogError(ctx, err, "Failed to list closures", slog.Int("annee", annee))
		return nil, fmt.Errorf("failed to list closures: %w", err)
	}
	if closures == nil {
		closures = []domain.PeriodClosure{}
	}
	return closures, nil
}

func (s *clotureService) GetCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleLecteur); err != nil {
		return nil, err
	}

	closure, err := s.clotureRepo.FindClotureByID(ctx, actor.OrganisationID, clotureID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get closure", slog.String("cloture_id", clotureID))
		}
		return nil, fmt.Errorf("failed to get closure %s: %w", clotureID, err)
	}
	return closure, nil
}

func (s *clotureService) CreateCloture(ctx context.Context, actor domain.Principal, mois, annee int) (*domain.PeriodClosure, error) {
	if err := s.AuthorizeUser(ctx, actor, domain.RoleComptable); err != nil {
		return nil, err
	}
	if err := domain.ValidatePeriod(mois, annee); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	figures, err := s.computeFigures(ctx, actor.OrganisationID, mois, annee)
	if err != nil {
		return nil, err
	}

	now := s.now()
	name := actor.Name
	closure := domain.PeriodClosure{
		ID:             uuid.NewString(),
		OrganisationID: actor.OrganisationID,
		Mois:           mois,
		Annee:          annee,
		Statut:         domain.StatutOuverte,
		Financials:     figures,
		CreeParID:      actor.UserID,
		CreeParNom:     &name,
		DateCreation:   &now,
	}

	if err := s.clotureRepo.SaveCloture(ctx, closure); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a closure already exists for %02d/%d", apperrors.ErrDuplicate, mois, annee)
		}
		s.LogError(ctx, err, "Failed to save closure", slog.Int("mois", mois), slog.Int("annee", annee))
		return nil, fmt.Errorf("failed to save closure: %w", err)
	}

	s.LogInfo(ctx, "Closure created",
		slog.String("cloture_id", closure.ID),
		slog.Int("mois", mois),
		slog.Int("annee", annee))
	return &closure, nil
}

func (s *clotureService) ValidateCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	return s.transition(ctx, actor, clotureID, domain.ActionValidate)
}

func (s *clotureService) CloseCloture(ctx context.Context, actor domain.Principal, clotureID string) (*domain.PeriodClosure, error) {
	return s.transition(ctx, actor, clotureID, domain.ActionClose)
}

// transition applies action under a row lock, and under the distributed lock when one is configured.
func (s *clotureService) transition(ctx context.Context, actor domain.Principal, clotureID string, action domain.ClotureAction) (*domain.PeriodClosure, error) {
	if err := s.AuthorizeUser(ctx, actor, action.RequiredRole()); err != nil {
		return nil, err
	}

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "cloture:"+clotureID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrLocked) {
				s.LogError(ctx, err, "Failed to obtain closure lock", slog.String("cloture_id", clotureID))
			}
			return nil, fmt.Errorf("failed to lock closure %s: %w", clotureID, err)
		}
		defer func() {
			if err := lock.Release(ctx); err != nil {
				s.LogError(ctx, err, "Failed to release closure lock", slog.String("cloture_id", clotureID))
			}
		}()
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

	current, err := s.clotureRepo.FindClotureByIDForUpdate(ctx, tx, actor.OrganisationID, clotureID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock closure row", slog.String("cloture_id", clotureID))
		}
		return nil, fmt.Errorf("failed to find closure %s: %w", clotureID, err)
	}

	if !current.Actions().Allows(action) {
		return nil, fmt.Errorf("%w: cannot %s a closure in status %s", apperrors.ErrInvalidTransition, action, current.Statut)
	}

	figures := current.Financials
	if action == domain.ActionValidate {
		// Journals posted since creation are picked up before the figures are frozen.
		figures, err = s.computeFigures(ctx, actor.OrganisationID, current.Mois, current.Annee)
		if err != nil {
			return nil, err
		}
	}

	target := action.TargetStatus()
	if err := s.clotureRepo.UpdateClotureStatusInTx(ctx, tx, clotureID, target, figures, actor.UserID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to update closure status", slog.String("cloture_id", clotureID), slog.String("target", string(target)))
		return nil, fmt.Errorf("failed to update closure status: %w", err)
	}

	if err := s.clotureRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit closure transition", slog.String("cloture_id", clotureID))
		return nil, fmt.Errorf("failed to commit closure transition: %w", err)
	}
	committed = true

	s.LogInfo(ctx, "Closure status changed",
		slog.String("cloture_id", clotureID),
		slog.String("from", string(current.Statut)),
		slog.String("to", string(target)))

	return s.clotureRepo.FindClotureByID(ctx, actor.OrganisationID, clotureID)
}

func (s *clotureService) ExportClotures(ctx context.Context, actor domain.Principal, annee int) (*domain.ExportFile, error) {
	if s.exporter == nil {
		return nil, apperrors.NewAppError(http.StatusNotImplemented, "export is not configured", nil)
	}

	closures, err := s.ListClotures(ctx, actor, annee)
	if err != nil {
		return nil, err
	}

	content, err := s.exporter.Export(annee, closures)
	if err != nil {
		s.LogError(ctx, err, "Failed to render closure export", slog.Int("annee", annee))
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	return &domain.ExportFile{
		Filename:      s.exporter.Filename(annee),
		MimeType:      s.exporter.MimeType(),
		ContentBase64: base64.StdEncoding.EncodeToString(content),
	}, nil
}

func (s *clotureService) computeFigures(ctx context.Context, organisationID string, mois, annee int) (domain.Financials, error) {
	from, to := domain.MonthBounds(mois, annee)
	totals, err := s.ledgerRepo.GetLedgerTotals(ctx, organisationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger", slog.Int("mois", mois), slog.Int("annee", annee))
		return domain.Financials{}, fmt.Errorf("failed to aggregate ledger: %w", err)
	}
	return domain.ComputeFinancials(totals), nil
}
