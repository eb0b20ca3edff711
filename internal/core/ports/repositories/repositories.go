package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	ContactRepo      ContactRepositoryFacade
	BankAccountRepo  BankAccountRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	SettlementRepo   SettlementRepositoryFacade
	RecurringRepo    RecurringRepositoryFacade
	StockRepo        StockRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
