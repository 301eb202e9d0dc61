package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClotureRepository struct {
	BaseRepository
}

func newPgxClotureRepository(db *pgxpool.Pool) portsrepo.ClotureRepositoryWithTx {
	return &PgxClotureRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ClotureRepositoryWithTx = (*PgxClotureRepository)(nil)

// clotureSelect resolves audit user names; deleted users keep their name.
const clotureSelect = `
	SELECT c.cloture_id, c.organisation_id, c.mois, c.annee, c.statut,
		c.chiffre_affaires, c.total_achats, c.charges_personnel, c.autres_charges,
		c.total_charges, c.resultat_brut, c.variation_tresorerie,
		c.creances_clients, c.dettes_fournisseurs,
		c.cree_par, uc.name, c.date_creation,
		c.valide_par, uv.name, c.date_validation,
		c.cloture_par, ucl.name, c.date_cloture
	FROM clotures c
	LEFT JOIN users uc ON uc.user_id = c.cree_par
	LEFT JOIN users uv ON uv.user_id = c.valide_par
	LEFT JOIN users ucl ON ucl.user_id = c.cloture_par`

func scanCloture(row pgx.Row) (*domain.PeriodClosure, error) {
	var c domain.PeriodClosure
	var statut string
	if err := row.Scan(
		&c.ID,
		&c.OrganisationID,
		&c.Mois,
		&c.Annee,
		&statut,
		&c.ChiffreAffaires,
		&c.TotalAchats,
		&c.ChargesPersonnel,
		&c.AutresCharges,
		&c.TotalCharges,
		&c.ResultatBrut,
		&c.VariationTresorerie,
		&c.CreancesClients,
		&c.DettesFournisseurs,
		&c.CreeParID,
		&c.CreeParNom,
		&c.DateCreation,
		&c.ValideParID,
		&c.ValideParNom,
		&c.DateValidation,
		&c.ClotureParID,
		&c.ClotureParNom,
		&c.DateCloture,
	); err != nil {
		return nil, err
	}
	c.Statut = domain.ClotureStatus(statut)
	return &c, nil
}

func (r *PgxClotureRepository) FindClotureByID(ctx context.Context, organisationID, clotureID string) (*domain.PeriodClosure, error) {
	query := clotureSelect + ` WHERE c.cloture_id = $1 AND c.organisation_id = $2;`
	c, err := scanCloture(r.Pool.QueryRow(ctx, query, clotureID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closure %s: %w", clotureID, err)
	}
	return c, nil
}

func (r *PgxClotureRepository) ListCloturesByYear(ctx context.Context, organisationID string, annee int) ([]domain.PeriodClosure, error) {
	query := clotureSelect + ` WHERE c.organisation_id = $1 AND c.annee = $2 ORDER BY c.mois DESC;`
	rows, err := r.Pool.Query(ctx, query, organisationID, annee)
	if err != nil {
		return nil, fmt.Errorf("failed to query closures: %w", err)
	}
	defer rows.Close()

	closures := []domain.PeriodClosure{}
	for rows.Next() {
		c, err := scanCloture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closure row: %w", err)
		}
		closures = append(closures, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating closure rows: %w", err)
	}
	return closures, nil
}

func (r *PgxClotureRepository) SaveCloture(ctx context.Context, c domain.PeriodClosure) error {
	query := `
		INSERT INTO clotures (cloture_id, organisation_id, mois, annee, statut,
			chiffre_affaires, total_achats, charges_personnel, autres_charges,
			total_charges, resultat_brut, variation_tresorerie,
			creances_clients, dettes_fournisseurs, cree_par, date_creation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		c.ID,
		c.OrganisationID,
		c.Mois,
		c.Annee,
		string(c.Statut),
		c.ChiffreAffaires,
		c.TotalAchats,
		c.ChargesPersonnel,
		c.AutresCharges,
		c.TotalCharges,
		c.ResultatBrut,
		c.VariationTresorerie,
		c.CreancesClients,
		c.DettesFournisseurs,
		c.CreeParID,
		c.DateCreation,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: closure %02d/%d", apperrors.ErrDuplicate, c.Mois, c.Annee)
		}
		return fmt.Errorf("failed to save closure: %w", err)
	}
	return nil
}

func (r *PgxClotureRepository) FindClotureByIDForUpdate(ctx context.Context, tx pgx.Tx, organisationID, clotureID string) (*domain.PeriodClosure, error) {
	query := clotureSelect + ` WHERE c.cloture_id = $1 AND c.organisation_id = $2 FOR UPDATE OF c;`
	c, err := scanCloture(tx.QueryRow(ctx, query, clotureID, organisationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock closure %s: %w", clotureID, err)
	}
	return c, nil
}

func (r *PgxClotureRepository) UpdateClotureStatusInTx(ctx context.Context, tx pgx.Tx, clotureID string, status domain.ClotureStatus, figures domain.Financials, actorID string, at time.Time) error {
	var auditColumns string
	switch status {
	case domain.StatutValidee:
		auditColumns = "valide_par = $12, date_validation = $13"
	case domain.StatutCloturee:
		auditColumns = "cloture_par = $12, date_cloture = $13"
	default:
		return fmt.Errorf("%w: cannot move a closure to %s", apperrors.ErrInvalidTransition, status)
	}

	query := `
		UPDATE clotures SET statut = $2,
			chiffre_affaires = $3, total_achats = $4, charges_personnel = $5,
			autres_charges = $6, total_charges = $7, resultat_brut = $8,
			variation_tresorerie = $9, creances_clients = $10, dettes_fournisseurs = $11,
			` + auditColumns + `
		WHERE cloture_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		clotureID,
		string(status),
		figures.ChiffreAffaires,
		figures.TotalAchats,
		figures.ChargesPersonnel,
		figures.AutresCharges,
		figures.TotalCharges,
		figures.ResultatBrut,
		figures.VariationTresorerie,
		figures.CreancesClients,
		figures.DettesFournisseurs,
		actorID,
		at,
	)
	if err != nil {
		return fmt.Errorf("failed to update closure %s: %w", clotureID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClotureRepository) FindClotureStatusForShare(ctx context.Context, tx pgx.Tx, organisationID string, mois, annee int) (*domain.ClotureStatus, error) {
	query := `
		SELECT statut FROM clotures
		WHERE organisation_id = $1 AND mois = $2 AND annee = $3
		FOR SHARE;
	`
	var statut string
	if err := tx.QueryRow(ctx, query, organisationID, mois, annee).Scan(&statut); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read closure status: %w", err)
	}
	status := domain.ClotureStatus(statut)
	return &status, nil
}
