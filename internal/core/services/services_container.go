package services

import (
	portsrepo "github.com/openfmis/ipsas_ledger/internal/core/ports/repositories"
	portssvc "github.com/openfmis/ipsas_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Entity service first since fund and GL services depend on it
	container.Entity = NewEntityService(repos.EntityRepo)
	container.Fund = NewFundService(repos.FundRepo, container.Entity)
	container.Account = NewAccountService(repos.AccountRepo, container.Fund)
	container.GL = NewGLService(repos.GLRepo, repos.AccountRepo, container.Entity, container.Fund)

	return container
}
