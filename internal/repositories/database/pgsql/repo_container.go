package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntityRepo:  newPgxEntityRepository(dbPool),
		FundRepo:    newPgxFundRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		GLRepo:      newPgxGLRepository(dbPool),
	}
}
