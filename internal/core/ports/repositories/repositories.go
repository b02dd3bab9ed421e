package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	RoleRepo         RoleRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	TaskRepo         TaskRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	ChatRepo         ChatRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	HRRepo           HRRepositoryFacade
	ProjectRepo      ProjectRepositoryFacade
	ReportRepo       ReportRepositoryFacade
}
