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

// bankAccountService implements accounts, registers and derived balances.
type bankAccountService struct {
	accountRepo portsrepo.BankAccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{accountRepo: accountRepo, txnRepo: txnRepo, companySvc: companySvc}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func (s *bankAccountService) findScopedAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "bank account", bankAccountID, companyID)
	}
	return account, nil
}

func (s *bankAccountService) findScopedRegister(ctx context.Context, companyID, cashRegisterID string) (*domain.CashRegister, error) {
	register, err := s.accountRepo.FindCashRegisterByID(ctx, cashRegisterID)
	if err != nil {
		return nil, err
	}
	if register.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "cash register", cashRegisterID, companyID)
	}
	return register, nil
}

func (s *bankAccountService) CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, userID string) (*dto.BankAccountResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	resp := dto.ToBankAccountResponse(&account)
	return &resp, nil
}

func (s *bankAccountService) GetBankAccountByID(ctx context.Context, companyID, bankAccountID, userID string) (*dto.BankAccountResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.findScopedAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToBankAccountResponse(account)
	return &resp, nil
}

func (s *bankAccountService) ListBankAccounts(ctx context.Context, companyID, userID string) ([]dto.BankAccountResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListBankAccountsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return dto.ToBankAccountResponses(accounts), nil
}

func (s *bankAccountService) GetBankAccountDetails(ctx context.Context, companyID, bankAccountID string, limit int, nextToken *string, userID string) (*dto.BankAccountDetailsResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.findScopedAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, err
	}

	balance, err := s.accountRepo.CurrentBalance(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}
	txns, token, err := s.txnRepo.ListTransactionsByBankAccount(ctx, companyID, bankAccountID, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list account transactions: %w", err)
	}

	return &dto.BankAccountDetailsResponse{
		BankAccountResponse: dto.ToBankAccountResponse(account),
		CurrentBalance:      balance,
		Transactions:        dto.ToTransactionResponses(txns),
		NextToken:           token,
	}, nil
}

func (s *bankAccountService) GetBalance(ctx context.Context, companyID, bankAccountID, userID string) (*dto.BalanceResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findScopedAccount(ctx, companyID, bankAccountID); err != nil {
		return nil, err
	}
	balance, err := s.accountRepo.CurrentBalance(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	return &dto.BalanceResponse{Balance: balance}, nil
}

func (s *bankAccountService) GetTotalBalance(ctx context.Context, companyID string, params dto.TotalBalanceParams, userID string) (*dto.BalanceResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	for _, t := range params.ExcludeTypes {
		if !domain.ValidBankAccountType(t) {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown account type %q", t), apperrors.ErrValidation)
		}
	}
	balance, err := s.accountRepo.TotalBalanceByCompany(ctx, companyID, params.ExcludeTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total balance: %w", err)
	}
	return &dto.BalanceResponse{Balance: balance}, nil
}

func (s *bankAccountService) UpdateBankAccount(ctx context.Context, companyID, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*dto.BankAccountResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	account, err := s.findScopedAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	account.Touch(userID, time.Now())

	if err := s.accountRepo.UpdateBankAccount(ctx, *account); err != nil {
		logger.Error("Failed to update bank account", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}

	resp := dto.ToBankAccountResponse(account)
	return &resp, nil
}

func (s *bankAccountService) DeleteBankAccount(ctx context.Context, companyID, bankAccountID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.findScopedAccount(ctx, companyID, bankAccountID); err != nil {
		return err
	}

	hasTxns, err := s.accountRepo.HasTransactions(ctx, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to check account transactions: %w", err)
	}
	if hasTxns {
		logger.Warn("Refusing to delete account with transactions", slog.String("bank_account_id", bankAccountID))
		return apperrors.NewAppError(409, "account has transactions and cannot be deleted", apperrors.ErrConflict)
	}

	return s.accountRepo.DeleteBankAccount(ctx, bankAccountID)
}

func (s *bankAccountService) CreateCashRegister(ctx context.Context, companyID string, req dto.CreateCashRegisterRequest, userID string) (*dto.CashRegisterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	// The backing account must exist and belong to the same company.
	if _, err := s.findScopedAccount(ctx, companyID, req.DefaultBankAccountID); err != nil {
		return nil, err
	}

	register := domain.CashRegister{
		CashRegisterID:       uuid.NewString(),
		CompanyID:            companyID,
		Name:                 req.Name,
		DefaultBankAccountID: req.DefaultBankAccountID,
		AuditFields:          domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.accountRepo.SaveCashRegister(ctx, register); err != nil {
		return nil, fmt.Errorf("failed to save cash register: %w", err)
	}

	resp := dto.ToCashRegisterResponse(&register)
	return &resp, nil
}

func (s *bankAccountService) GetCashRegisterByID(ctx context.Context, companyID, cashRegisterID, userID string) (*dto.CashRegisterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	register, err := s.findScopedRegister(ctx, companyID, cashRegisterID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCashRegisterResponse(register)
	return &resp, nil
}

func (s *bankAccountService) ListCashRegisters(ctx context.Context, companyID, userID string) ([]dto.CashRegisterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	registers, err := s.accountRepo.ListCashRegistersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash registers: %w", err)
	}
	return dto.ToCashRegisterResponses(registers), nil
}

func (s *bankAccountService) DeleteCashRegister(ctx context.Context, companyID, cashRegisterID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.findScopedRegister(ctx, companyID, cashRegisterID); err != nil {
		return err
	}
	return s.accountRepo.DeleteCashRegister(ctx, cashRegisterID)
}

func (s *bankAccountService) Withdraw(ctx context.Context, companyID, cashRegisterID string, req dto.WithdrawRequest, userID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	register, err := s.findScopedRegister(ctx, companyID, cashRegisterID)
	if err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "withdrawal amount must be positive", apperrors.ErrValidation)
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	description := req.Description
	if description == "" {
		description = "Sangria: " + register.Name
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		CompanyID:       companyID,
		BankAccountID:   register.DefaultBankAccountID,
		CashRegisterID:  &register.CashRegisterID,
		Description:     description,
		Amount:          req.Amount,
		Type:            domain.TypeExpense,
		TransactionDate: date,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save withdrawal", slog.String("error", err.Error()), slog.String("cash_register_id", cashRegisterID))
		return nil, fmt.Errorf("failed to save withdrawal: %w", err)
	}

	logger.Info("Cash withdrawn", slog.String("cash_register_id", cashRegisterID), slog.String("transaction_id", txn.TransactionID))
	resp := dto.ToTransactionResponse(&txn)
	return &resp, nil
}
