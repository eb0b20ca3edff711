package services

import (
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/pkg/config"
)

// NewServiceContainer wires every service with its dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.TokenSvc = NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenExpiry, cfg.CompanyTokenExpiry)
	container.UserSvc = NewUserService(repos.UserRepo, container.TokenSvc)

	// Company service first: every scoped service routes authorization
	// through it.
	container.CompanySvc = NewCompanyService(repos.CompanyRepo, container.TokenSvc)

	container.ContactSvc = NewContactService(repos.ContactRepo, container.CompanySvc)
	container.BankAccountSvc = NewBankAccountService(repos.BankAccountRepo, repos.TransactionRepo, container.CompanySvc)
	container.CategorySvc = NewCategoryService(repos.CategoryRepo, container.CompanySvc)
	container.LedgerSvc = NewLedgerService(repos.TransactionRepo, repos.BankAccountRepo, repos.CategoryRepo, repos.ContactRepo, container.CompanySvc)
	container.SettlementSvc = NewSettlementService(repos.SettlementRepo, repos.BankAccountRepo, repos.CategoryRepo, repos.ContactRepo, container.CompanySvc)
	container.RecurrenceSvc = NewRecurrenceService(repos.RecurringRepo, repos.CategoryRepo, repos.ContactRepo, container.CompanySvc)

	container.NotificationSvc = NewNotificationService(repos.NotificationRepo, repos.StockRepo, repos.SettlementRepo, container.CompanySvc)
	container.StockSvc = NewStockService(repos.StockRepo, container.CompanySvc, container.NotificationSvc)

	return container
}
