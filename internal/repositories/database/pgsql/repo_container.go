package pgsql

import (
	portsrepo "github.com/SscSPs/farm_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository on a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClotureRepo: newPgxClotureRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
