package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// SettlementSvcFacade defines bills, incomes and their settlement. Settling
// is the only path that turns a scheduled document into a ledger entry, and
// it happens exactly once per document.
type SettlementSvcFacade interface {
	CreateBill(ctx context.Context, companyID string, req dto.CreateBillRequest, userID string) (*dto.BillResponse, error)
	GetBillByID(ctx context.Context, companyID, billID, userID string) (*dto.BillResponse, error)
	ListBills(ctx context.Context, companyID string, params dto.ListBillsParams, userID string) ([]dto.BillResponse, error)
	UpdateBill(ctx context.Context, companyID, billID string, req dto.UpdateBillRequest, userID string) (*dto.BillResponse, error)
	DeleteBill(ctx context.Context, companyID, billID, userID string) error

	// SettleBill posts the payment transaction and flips the bill to settled
	// in one atomic step. A second settlement attempt returns ErrConflict.
	SettleBill(ctx context.Context, companyID, billID string, req dto.SettleRequest, userID string) (*dto.BillResponse, error)

	CreateIncome(ctx context.Context, companyID string, req dto.CreateIncomeRequest, userID string) (*dto.IncomeResponse, error)
	GetIncomeByID(ctx context.Context, companyID, incomeID, userID string) (*dto.IncomeResponse, error)
	ListIncomes(ctx context.Context, companyID string, params dto.ListBillsParams, userID string) ([]dto.IncomeResponse, error)
	UpdateIncome(ctx context.Context, companyID, incomeID string, req dto.UpdateIncomeRequest, userID string) (*dto.IncomeResponse, error)
	DeleteIncome(ctx context.Context, companyID, incomeID, userID string) error
	SettleIncome(ctx context.Context, companyID, incomeID string, req dto.SettleRequest, userID string) (*dto.IncomeResponse, error)
}
