package repositories

import (
	"context"
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// BillReader defines read operations for bills and incomes.
type BillReader interface {
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	ListBillsByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Bill, error)
	// ListBillsDueWithin lists pending bills across all companies whose due
	// date falls in [from, to]. Used by the due-date alert sweep.
	ListBillsDueWithin(ctx context.Context, from, to time.Time) ([]domain.Bill, error)

	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomesByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Income, error)
	ListIncomesDueWithin(ctx context.Context, from, to time.Time) ([]domain.Income, error)
}

// BillWriter defines write operations for bills and incomes.
type BillWriter interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	// UpdateBill may only touch pending bills; settled history is immutable.
	UpdateBill(ctx context.Context, bill domain.Bill) error
	DeleteBill(ctx context.Context, billID string) error

	SaveIncome(ctx context.Context, income domain.Income) error
	UpdateIncome(ctx context.Context, income domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error

	// SettleBill inserts the payment transaction and flips the bill from
	// pending to settled in one unit of work. The status flip is a guarded
	// UPDATE (WHERE status = 'pending'); if another settlement won the race,
	// nothing is persisted and ErrConflict is returned.
	SettleBill(ctx context.Context, bill domain.Bill, txn domain.Transaction) error

	// SettleIncome is the revenue-side mirror of SettleBill.
	SettleIncome(ctx context.Context, income domain.Income, txn domain.Transaction) error
}

// SettlementRepositoryFacade combines bill/income repository interfaces.
type SettlementRepositoryFacade interface {
	BillReader
	BillWriter
}
