package repositories

import (
	"context"
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// RecurringRepositoryFacade defines persistence operations for recurring
// templates and the generation sweep.
type RecurringRepositoryFacade interface {
	SaveRecurringBill(ctx context.Context, template domain.RecurringBill) error
	FindRecurringBillByID(ctx context.Context, templateID string) (*domain.RecurringBill, error)
	ListRecurringBillsByCompany(ctx context.Context, companyID string) ([]domain.RecurringBill, error)
	// ListDueRecurringBills lists active templates across all companies with
	// next_due_date <= asOf. The sweep is global; tenant scoping is carried
	// on each row.
	ListDueRecurringBills(ctx context.Context, asOf time.Time) ([]domain.RecurringBill, error)

	// GenerateBillFromTemplate inserts the generated pending bill and
	// advances the template past prevDueDate in one unit of work. The
	// advance is guarded (WHERE next_due_date = prevDueDate) so a re-run or
	// a concurrent sweep cannot generate the same occurrence twice; losing
	// the guard returns ErrConflict with nothing persisted.
	GenerateBillFromTemplate(ctx context.Context, bill domain.Bill, template domain.RecurringBill, prevDueDate time.Time) error

	// UpdateRecurringBill persists template edits. When propagateAmount is
	// set, all pending bills generated from the template take the new amount
	// within the same unit of work; settled bills are never touched.
	UpdateRecurringBill(ctx context.Context, template domain.RecurringBill, propagateAmount bool) error
	DeleteRecurringBill(ctx context.Context, templateID string) error

	SaveRecurringIncome(ctx context.Context, template domain.RecurringIncome) error
	FindRecurringIncomeByID(ctx context.Context, templateID string) (*domain.RecurringIncome, error)
	ListRecurringIncomesByCompany(ctx context.Context, companyID string) ([]domain.RecurringIncome, error)
	ListDueRecurringIncomes(ctx context.Context, asOf time.Time) ([]domain.RecurringIncome, error)
	GenerateIncomeFromTemplate(ctx context.Context, income domain.Income, template domain.RecurringIncome, prevDueDate time.Time) error
	UpdateRecurringIncome(ctx context.Context, template domain.RecurringIncome, propagateAmount bool) error
	DeleteRecurringIncome(ctx context.Context, templateID string) error
}
