package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	EntityRepo  EntityRepositoryFacade
	FundRepo    FundRepositoryFacade
	AccountRepo AccountRepositoryFacade
	GLRepo      GLRepositoryWithTx
}
