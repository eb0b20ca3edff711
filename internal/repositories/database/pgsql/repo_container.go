package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		ContactRepo:      newPgxContactRepository(dbPool),
		BankAccountRepo:  newPgxBankAccountRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		SettlementRepo:   newPgxSettlementRepository(dbPool),
		RecurringRepo:    newPgxRecurringRepository(dbPool),
		StockRepo:        newPgxStockRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
