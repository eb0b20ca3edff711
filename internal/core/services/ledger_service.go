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

var oneHundred = decimal.NewFromInt(100)

// ledgerService posts transactions, transfers and refunds. Every multi-row
// effect is delegated to a repository method that runs it in one database
// transaction.
type ledgerService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.BankAccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	contactRepo  portsrepo.ContactRepositoryFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.BankAccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, contactRepo portsrepo.ContactRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{txnRepo: txnRepo, accountRepo: accountRepo, categoryRepo: categoryRepo, contactRepo: contactRepo, companySvc: companySvc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// categoryKindFor maps a transaction type to the category polarity it must be
// classified with. Reversals undo revenue, so they keep revenue categories.
func categoryKindFor(t domain.TransactionType) domain.CategoryKind {
	if t == domain.TypeExpense {
		return domain.KindExpense
	}
	return domain.KindRevenue
}

// checkAccountScope verifies the referenced bank account belongs to the
// active company.
func (s *ledgerService) checkAccountScope(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "bank account", bankAccountID, companyID)
	}
	return account, nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, userID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if req.Type != domain.TypeRevenue && req.Type != domain.TypeExpense {
		return nil, apperrors.NewAppError(400, "only revenue and expense entries can be posted directly", apperrors.ErrValidation)
	}

	// Register-originated entries always land on the register's default
	// account. A user-supplied account is only accepted when it names that
	// same default, and point-of-sale entries carry no contact.
	bankAccountID := req.BankAccountID
	if req.CashRegisterID != nil {
		register, err := s.accountRepo.FindCashRegisterByID(ctx, *req.CashRegisterID)
		if err != nil {
			return nil, err
		}
		if register.CompanyID != companyID {
			return nil, notFoundOutsideScope(ctx, "cash register", *req.CashRegisterID, companyID)
		}
		if req.ContactID != nil {
			return nil, apperrors.NewAppError(400, "register-originated entries cannot carry a contact", apperrors.ErrValidation)
		}
		if bankAccountID != "" && bankAccountID != register.DefaultBankAccountID {
			return nil, apperrors.NewAppError(400, "bankAccountID does not match the register's default account", apperrors.ErrValidation)
		}
		bankAccountID = register.DefaultBankAccountID
	} else if bankAccountID == "" {
		return nil, apperrors.NewAppError(400, "bankAccountID is required without a cash register", apperrors.ErrValidation)
	}
	if _, err := s.checkAccountScope(ctx, companyID, bankAccountID); err != nil {
		return nil, err
	}

	if req.CategoryID == nil {
		return nil, apperrors.NewAppError(400, "categoryID is required", apperrors.ErrValidation)
	}
	if err := checkCategoryRef(ctx, s.categoryRepo, companyID, *req.CategoryID, categoryKindFor(req.Type)); err != nil {
		return nil, err
	}
	if req.CostCenterID != nil {
		if err := checkCostCenterRef(ctx, s.categoryRepo, companyID, *req.CostCenterID); err != nil {
			return nil, err
		}
	}
	if req.ContactID != nil {
		if _, err := checkContactRef(ctx, s.contactRepo, companyID, *req.ContactID); err != nil {
			return nil, err
		}
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   bankAccountID,
		CategoryID:      req.CategoryID,
		CostCenterID:    req.CostCenterID,
		CashRegisterID:  req.CashRegisterID,
		ContactID:       req.ContactID,
		Description:     req.Description,
		Amount:          req.Amount,
		Type:            req.Type,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("type", string(txn.Type)))
	resp := dto.ToTransactionResponse(&txn)
	return &resp, nil
}

func (s *ledgerService) GetTransactionByID(ctx context.Context, companyID, transactionID, userID string) (*dto.TransactionResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "transaction", transactionID, companyID)
	}
	resp := dto.ToTransactionResponse(txn)
	return &resp, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, companyID string, params dto.ListTransactionsParams, userID string) (*dto.ListTransactionsResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var (
		txns  []domain.Transaction
		token *string
		err   error
	)
	if params.BankAccountID != nil {
		if _, err := s.checkAccountScope(ctx, companyID, *params.BankAccountID); err != nil {
			return nil, err
		}
		txns, token, err = s.txnRepo.ListTransactionsByBankAccount(ctx, companyID, *params.BankAccountID, limit, params.NextToken)
	} else {
		txns, token, err = s.txnRepo.ListTransactionsByCompany(ctx, companyID, limit, params.NextToken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    token,
	}, nil
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, companyID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*dto.TransactionResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "transaction", transactionID, companyID)
	}

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.CategoryID != nil {
		if txn.Type == domain.TypeInternalTransfer || txn.Type == domain.TypeExternalTransfer {
			return nil, apperrors.NewAppError(400, "transfer legs carry no category", apperrors.ErrValidation)
		}
		if err := checkCategoryRef(ctx, s.categoryRepo, companyID, *req.CategoryID, categoryKindFor(txn.Type)); err != nil {
			return nil, err
		}
		txn.CategoryID = req.CategoryID
	}
	if req.CostCenterID != nil {
		if err := checkCostCenterRef(ctx, s.categoryRepo, companyID, *req.CostCenterID); err != nil {
			return nil, err
		}
		txn.CostCenterID = req.CostCenterID
	}
	if req.ContactID != nil {
		if _, err := checkContactRef(ctx, s.contactRepo, companyID, *req.ContactID); err != nil {
			return nil, err
		}
		txn.ContactID = req.ContactID
	}
	txn.Touch(userID, time.Now())

	if err := s.txnRepo.UpdateTransactionMetadata(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	resp := dto.ToTransactionResponse(txn)
	return &resp, nil
}

func (s *ledgerService) Transfer(ctx context.Context, companyID string, req dto.TransferRequest, userID string) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromBankAccountID == req.ToBankAccountID {
		return nil, apperrors.NewAppError(400, "source and destination accounts must differ", apperrors.ErrValidation)
	}
	if _, err := s.checkAccountScope(ctx, companyID, req.FromBankAccountID); err != nil {
		return nil, err
	}
	if _, err := s.checkAccountScope(ctx, companyID, req.ToBankAccountID); err != nil {
		return nil, err
	}

	// The incoming leg is net of the optional deduction; the difference is
	// the cost of moving the money (card processor fees and the like).
	incomingAmount := req.Amount
	if req.DeductionPercentage != nil {
		pct := *req.DeductionPercentage
		if pct.IsNegative() || pct.GreaterThanOrEqual(oneHundred) {
			return nil, apperrors.NewAppError(400, "deduction percentage must be in [0, 100)", apperrors.ErrValidation)
		}
		incomingAmount = req.Amount.Mul(oneHundred.Sub(pct)).Div(oneHundred).Round(2)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	now := time.Now()

	outgoing := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   req.FromBankAccountID,
		Description:     "Saída: " + req.Description,
		Amount:          req.Amount,
		Type:            domain.TypeExternalTransfer,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	incoming := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   req.ToBankAccountID,
		Description:     "Entrada: " + req.Description,
		Amount:          incomingAmount,
		Type:            domain.TypeInternalTransfer,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	outgoing.LinkedTransactionID = &incoming.TransactionID
	incoming.LinkedTransactionID = &outgoing.TransactionID

	if err := s.txnRepo.SaveTransferPair(ctx, outgoing, incoming); err != nil {
		logger.Error("Failed to save transfer pair", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer posted",
		slog.String("outgoing_id", outgoing.TransactionID),
		slog.String("incoming_id", incoming.TransactionID),
		slog.String("gross", req.Amount.String()),
		slog.String("net", incomingAmount.String()))

	return &dto.TransferResponse{
		Outgoing: dto.ToTransactionResponse(&outgoing),
		Incoming: dto.ToTransactionResponse(&incoming),
	}, nil
}

func (s *ledgerService) Refund(ctx context.Context, companyID, transactionID string, req dto.RefundRequest, userID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "refund amount must be positive", apperrors.ErrValidation)
	}

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "transaction", transactionID, companyID)
	}
	if original.Type != domain.TypeRevenue {
		return nil, apperrors.NewAppError(400, "only revenue transactions can be refunded", apperrors.ErrValidation)
	}

	// Pre-check against the remaining balance for a friendly error; the
	// repository re-checks under a row lock before inserting.
	reversed, err := s.txnRepo.SumReversedAmount(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum prior reversals: %w", err)
	}
	remaining := original.Amount.Sub(reversed)
	if req.Amount.GreaterThan(remaining) {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("refund of %s exceeds remaining refundable balance %s", req.Amount, remaining),
			apperrors.ErrValidation)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	description := req.Description
	if description == "" {
		description = original.Description
	}

	reversal := domain.Transaction{
		TransactionID:        uuid.NewString(),
		CompanyID:            companyID,
		BankAccountID:        original.BankAccountID,
		CategoryID:           original.CategoryID,
		CostCenterID:         original.CostCenterID,
		CashRegisterID:       original.CashRegisterID,
		ContactID:            original.ContactID,
		Description:          "Estorno: " + description,
		Amount:               req.Amount,
		Type:                 domain.TypeReversal,
		TransactionDate:      date,
		RelatedTransactionID: &original.TransactionID,
		AuditFields:          domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.txnRepo.SaveReversal(ctx, reversal); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("original_id", transactionID))
		return nil, err
	}

	logger.Info("Refund posted", slog.String("reversal_id", reversal.TransactionID), slog.String("original_id", transactionID), slog.String("amount", req.Amount.String()))
	resp := dto.ToTransactionResponse(&reversal)
	return &resp, nil
}
