package services

import (
	"context"
	"time"

	"github.com/fintelis/erp_backend/internal/dto"
)

// RecurrenceSvcFacade defines recurring templates and the generation sweep.
type RecurrenceSvcFacade interface {
	CreateRecurringBill(ctx context.Context, companyID string, req dto.CreateRecurringBillRequest, userID string) (*dto.RecurringBillResponse, error)
	GetRecurringBillByID(ctx context.Context, companyID, templateID, userID string) (*dto.RecurringBillResponse, error)
	ListRecurringBills(ctx context.Context, companyID, userID string) ([]dto.RecurringBillResponse, error)
	UpdateRecurringBill(ctx context.Context, companyID, templateID string, req dto.UpdateRecurringTemplateRequest, userID string) (*dto.RecurringBillResponse, error)
	DeleteRecurringBill(ctx context.Context, companyID, templateID, userID string) error

	CreateRecurringIncome(ctx context.Context, companyID string, req dto.CreateRecurringIncomeRequest, userID string) (*dto.RecurringIncomeResponse, error)
	GetRecurringIncomeByID(ctx context.Context, companyID, templateID, userID string) (*dto.RecurringIncomeResponse, error)
	ListRecurringIncomes(ctx context.Context, companyID, userID string) ([]dto.RecurringIncomeResponse, error)
	UpdateRecurringIncome(ctx context.Context, companyID, templateID string, req dto.UpdateRecurringTemplateRequest, userID string) (*dto.RecurringIncomeResponse, error)
	DeleteRecurringIncome(ctx context.Context, companyID, templateID, userID string) error

	// GenerateDue runs the global sweep as of the given instant: every active
	// template whose next due date has arrived yields one pending document
	// and advances. Failures on one template are logged and do not stop the
	// sweep. Returns the number of documents generated.
	GenerateDue(ctx context.Context, asOf time.Time) (int, error)
}
