package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// GetLedgerTotals aggregates posted lines by account category. Amounts are debit-positive;
// SALES and PAYABLE figures are negated so that their normal credit balance reads positive.
func (r *PgxLedgerRepository) GetLedgerTotals(ctx context.Context, organisationID string, from, to time.Time) (domain.LedgerTotals, error) {
	query := `
		WITH lines AS (
			SELECT a.category, j.journal_date,
				CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END AS debit_amount
			FROM transactions t
			JOIN journals j ON j.journal_id = t.journal_id
			JOIN accounts a ON a.account_id = t.account_id
			WHERE j.organisation_id = $1
				AND j.status = 'POSTED'
				AND j.journal_date < $3::date
				AND a.category IS NOT NULL
		)
		SELECT
			COALESCE(-SUM(debit_amount) FILTER (WHERE category = 'SALES' AND journal_date >= $2::date), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE category = 'PURCHASES' AND journal_date >= $2::date), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE category = 'PAYROLL' AND journal_date >= $2::date), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE category = 'OTHER_EXPENSE' AND journal_date >= $2::date), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE category = 'CASH' AND journal_date >= $2::date), 0),
			COALESCE(SUM(debit_amount) FILTER (WHERE category = 'RECEIVABLE'), 0),
			COALESCE(-SUM(debit_amount) FILTER (WHERE category = 'PAYABLE'), 0)
		FROM lines;
	`
	var t domain.LedgerTotals
	err := r.Pool.QueryRow(ctx, query, organisationID, dateParam(from), dateParam(to)).Scan(
		&t.Sales,
		&t.Purchases,
		&t.Payroll,
		&t.OtherExpenses,
		&t.CashMovement,
		&t.Receivables,
		&t.Payables,
	)
	if err != nil {
		return domain.LedgerTotals{}, fmt.Errorf("error aggregating ledger totals: %w", err)
	}
	return t, nil
}

const accountColumns = `account_id, organisation_id, name, account_type, COALESCE(category, ''), is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	var accountType, category string
	err := row.Scan(
		&a.AccountID,
		&a.OrganisationID,
		&a.Name,
		&accountType,
		&category,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	a.AccountType = domain.AccountType(accountType)
	a.Category = domain.AccountCategory(category)
	return a, err
}

func (r *PgxLedgerRepository) FindAccountsByIDs(ctx context.Context, organisationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organisation_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, organisationID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxLedgerRepository) ListAccounts(ctx context.Context, organisationID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organisation_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, organisationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, organisation_id, name, account_type, category, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.OrganisationID,
		account.Name,
		string(account.AccountType),
		string(account.Category),
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	journalQuery := `
		INSERT INTO journals (journal_id, organisation_id, journal_date, description, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, journalQuery,
		journal.JournalID,
		journal.OrganisationID,
		dateParam(journal.JournalDate),
		journal.Description,
		string(journal.Status),
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal: %w", err)
	}

	batch := &pgx.Batch{}
	for _, txn := range journal.Transactions {
		batch.Queue(`
			INSERT INTO transactions (transaction_id, journal_id, account_id, amount, transaction_type, notes)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			txn.TransactionID,
			journal.JournalID,
			txn.AccountID,
			txn.Amount,
			string(txn.TransactionType),
			txn.Notes,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert journal transactions: %w", err)
	}
	return nil
}
