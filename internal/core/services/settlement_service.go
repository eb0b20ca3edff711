package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// settlementService implements bills, incomes and their one-shot settlement.
type settlementService struct {
	settleRepo   portsrepo.SettlementRepositoryFacade
	accountRepo  portsrepo.BankAccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	contactRepo  portsrepo.ContactRepositoryFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(settleRepo portsrepo.SettlementRepositoryFacade, accountRepo portsrepo.BankAccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, contactRepo portsrepo.ContactRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.SettlementSvcFacade {
	return &settlementService{settleRepo: settleRepo, accountRepo: accountRepo, categoryRepo: categoryRepo, contactRepo: contactRepo, companySvc: companySvc}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// checkDocumentRefs validates the classification references of a bill or
// income payload: bills take expense categories and supplier contacts,
// incomes take revenue categories and customer contacts.
func (s *settlementService) checkDocumentRefs(ctx context.Context, companyID string, categoryID, costCenterID, contactID *string, payable bool) error {
	if categoryID != nil {
		kind := domain.KindRevenue
		if payable {
			kind = domain.KindExpense
		}
		if err := checkCategoryRef(ctx, s.categoryRepo, companyID, *categoryID, kind); err != nil {
			return err
		}
	}
	if costCenterID != nil {
		if err := checkCostCenterRef(ctx, s.categoryRepo, companyID, *costCenterID); err != nil {
			return err
		}
	}
	if contactID != nil {
		if err := checkDocumentContact(ctx, s.contactRepo, companyID, *contactID, payable); err != nil {
			return err
		}
	}
	return nil
}

func (s *settlementService) CreateBill(ctx context.Context, companyID string, req dto.CreateBillRequest, userID string) (*dto.BillResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if err := s.checkDocumentRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, true); err != nil {
		return nil, err
	}

	bill := domain.Bill{
		BillID:       uuid.NewString(),
		CompanyID:    companyID,
		CategoryID:   req.CategoryID,
		CostCenterID: req.CostCenterID,
		ContactID:    req.ContactID,
		Description:  req.Description,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		Status:       domain.StatusPending,
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.settleRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	resp := dto.ToBillResponse(&bill)
	return &resp, nil
}

func (s *settlementService) findScopedBill(ctx context.Context, companyID, billID string) (*domain.Bill, error) {
	bill, err := s.settleRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "bill", billID, companyID)
	}
	return bill, nil
}

func (s *settlementService) GetBillByID(ctx context.Context, companyID, billID, userID string) (*dto.BillResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	bill, err := s.findScopedBill(ctx, companyID, billID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToBillResponse(bill)
	return &resp, nil
}

func (s *settlementService) ListBills(ctx context.Context, companyID string, params dto.ListBillsParams, userID string) ([]dto.BillResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	bills, err := s.settleRepo.ListBillsByCompany(ctx, companyID, params.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return dto.ToBillResponses(bills), nil
}

func (s *settlementService) UpdateBill(ctx context.Context, companyID, billID string, req dto.UpdateBillRequest, userID string) (*dto.BillResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	bill, err := s.findScopedBill(ctx, companyID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status == domain.StatusSettled {
		return nil, apperrors.NewAppError(409, "settled bills are immutable", apperrors.ErrConflict)
	}

	if req.Description != nil {
		bill.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
		}
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if err := s.checkDocumentRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, true); err != nil {
		return nil, err
	}
	if req.ContactID != nil {
		bill.ContactID = req.ContactID
	}
	if req.CategoryID != nil {
		bill.CategoryID = req.CategoryID
	}
	if req.CostCenterID != nil {
		bill.CostCenterID = req.CostCenterID
	}
	bill.Touch(userID, time.Now())

	if err := s.settleRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	resp := dto.ToBillResponse(bill)
	return &resp, nil
}

func (s *settlementService) DeleteBill(ctx context.Context, companyID, billID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	bill, err := s.findScopedBill(ctx, companyID, billID)
	if err != nil {
		return err
	}
	if bill.Status == domain.StatusSettled {
		return apperrors.NewAppError(409, "settled bills cannot be deleted", apperrors.ErrConflict)
	}
	return s.settleRepo.DeleteBill(ctx, billID)
}

func (s *settlementService) SettleBill(ctx context.Context, companyID, billID string, req dto.SettleRequest, userID string) (*dto.BillResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	bill, err := s.findScopedBill(ctx, companyID, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status == domain.StatusSettled {
		return nil, apperrors.NewAppError(409, "bill is already settled", apperrors.ErrConflict)
	}

	account, err := s.accountRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "bank account", req.BankAccountID, companyID)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	description := "Pagamento - " + bill.Description
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   req.BankAccountID,
		CategoryID:      bill.CategoryID,
		CostCenterID:    bill.CostCenterID,
		ContactID:       bill.ContactID,
		Description:     description,
		Amount:          bill.Amount,
		Type:            domain.TypeExpense,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	bill.Status = domain.StatusSettled
	bill.PaymentTransactionID = &txn.TransactionID
	bill.Touch(userID, now)

	// One unit of work: transaction insert plus guarded status flip. A race
	// with another settlement leaves nothing persisted and returns ErrConflict.
	if err := s.settleRepo.SettleBill(ctx, *bill, txn); err != nil {
		logger.Warn("Bill settlement failed", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, err
	}

	logger.Info("Bill settled", slog.String("bill_id", billID), slog.String("transaction_id", txn.TransactionID))
	resp := dto.ToBillResponse(bill)
	txnResp := dto.ToTransactionResponse(&txn)
	resp.PaymentTransaction = &txnResp
	return &resp, nil
}

func (s *settlementService) CreateIncome(ctx context.Context, companyID string, req dto.CreateIncomeRequest, userID string) (*dto.IncomeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if err := s.checkDocumentRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, false); err != nil {
		return nil, err
	}

	income := domain.Income{
		IncomeID:     uuid.NewString(),
		CompanyID:    companyID,
		CategoryID:   req.CategoryID,
		CostCenterID: req.CostCenterID,
		ContactID:    req.ContactID,
		Description:  req.Description,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		Status:       domain.StatusPending,
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.settleRepo.SaveIncome(ctx, income); err != nil {
		logger.Error("Failed to save income", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save income: %w", err)
	}

	resp := dto.ToIncomeResponse(&income)
	return &resp, nil
}

func (s *settlementService) findScopedIncome(ctx context.Context, companyID, incomeID string) (*domain.Income, error) {
	income, err := s.settleRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if income.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "income", incomeID, companyID)
	}
	return income, nil
}

func (s *settlementService) GetIncomeByID(ctx context.Context, companyID, incomeID, userID string) (*dto.IncomeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	income, err := s.findScopedIncome(ctx, companyID, incomeID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToIncomeResponse(income)
	return &resp, nil
}

func (s *settlementService) ListIncomes(ctx context.Context, companyID string, params dto.ListBillsParams, userID string) ([]dto.IncomeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	incomes, err := s.settleRepo.ListIncomesByCompany(ctx, companyID, params.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return dto.ToIncomeResponses(incomes), nil
}

func (s *settlementService) UpdateIncome(ctx context.Context, companyID, incomeID string, req dto.UpdateIncomeRequest, userID string) (*dto.IncomeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	income, err := s.findScopedIncome(ctx, companyID, incomeID)
	if err != nil {
		return nil, err
	}
	if income.Status == domain.StatusSettled {
		return nil, apperrors.NewAppError(409, "settled incomes are immutable", apperrors.ErrConflict)
	}

	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
		}
		income.Amount = *req.Amount
	}
	if req.DueDate != nil {
		income.DueDate = *req.DueDate
	}
	if err := s.checkDocumentRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, false); err != nil {
		return nil, err
	}
	if req.ContactID != nil {
		income.ContactID = req.ContactID
	}
	if req.CategoryID != nil {
		income.CategoryID = req.CategoryID
	}
	if req.CostCenterID != nil {
		income.CostCenterID = req.CostCenterID
	}
	income.Touch(userID, time.Now())

	if err := s.settleRepo.UpdateIncome(ctx, *income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	resp := dto.ToIncomeResponse(income)
	return &resp, nil
}

func (s *settlementService) DeleteIncome(ctx context.Context, companyID, incomeID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	income, err := s.findScopedIncome(ctx, companyID, incomeID)
	if err != nil {
		return err
	}
	if income.Status == domain.StatusSettled {
		return apperrors.NewAppError(409, "settled incomes cannot be deleted", apperrors.ErrConflict)
	}
	return s.settleRepo.DeleteIncome(ctx, incomeID)
}

func (s *settlementService) SettleIncome(ctx context.Context, companyID, incomeID string, req dto.SettleRequest, userID string) (*dto.IncomeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	income, err := s.findScopedIncome(ctx, companyID, incomeID)
	if err != nil {
		return nil, err
	}
	if income.Status == domain.StatusSettled {
		return nil, apperrors.NewAppError(409, "income is already settled", apperrors.ErrConflict)
	}

	account, err := s.accountRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "bank account", req.BankAccountID, companyID)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	description := "Recebimento - " + income.Description
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   req.BankAccountID,
		CategoryID:      income.CategoryID,
		CostCenterID:    income.CostCenterID,
		ContactID:       income.ContactID,
		Description:     description,
		Amount:          income.Amount,
		Type:            domain.TypeRevenue,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	income.Status = domain.StatusSettled
	income.PaymentTransactionID = &txn.TransactionID
	income.Touch(userID, now)

	if err := s.settleRepo.SettleIncome(ctx, *income, txn); err != nil {
		logger.Warn("Income settlement failed", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return nil, err
	}

	logger.Info("Income settled", slog.String("income_id", incomeID), slog.String("transaction_id", txn.TransactionID))
	resp := dto.ToIncomeResponse(income)
	txnResp := dto.ToTransactionResponse(&txn)
	resp.PaymentTransaction = &txnResp
	return &resp, nil
}
