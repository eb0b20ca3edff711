package services

// ServiceContainer holds all service interfaces for dependency injection.
type ServiceContainer struct {
	UserSvc         UserSvcFacade
	TokenSvc        TokenSvc
	CompanySvc      CompanySvcFacade
	ContactSvc      ContactSvcFacade
	BankAccountSvc  BankAccountSvcFacade
	CategorySvc     CategorySvcFacade
	LedgerSvc       LedgerSvcFacade
	SettlementSvc   SettlementSvcFacade
	RecurrenceSvc   RecurrenceSvcFacade
	StockSvc        StockSvcFacade
	NotificationSvc NotificationSvcFacade
}
