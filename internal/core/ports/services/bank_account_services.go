package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// BankAccountReaderSvc defines read operations for accounts and registers.
type BankAccountReaderSvc interface {
	GetBankAccountByID(ctx context.Context, companyID, bankAccountID, userID string) (*dto.BankAccountResponse, error)
	ListBankAccounts(ctx context.Context, companyID, userID string) ([]dto.BankAccountResponse, error)

	// GetBankAccountDetails returns the account, its derived balance and a
	// page of its transactions.
	GetBankAccountDetails(ctx context.Context, companyID, bankAccountID string, limit int, nextToken *string, userID string) (*dto.BankAccountDetailsResponse, error)

	// GetBalance computes initial balance plus signed transaction sum.
	GetBalance(ctx context.Context, companyID, bankAccountID, userID string) (*dto.BalanceResponse, error)

	// GetTotalBalance aggregates balances company-wide minus excluded types.
	GetTotalBalance(ctx context.Context, companyID string, params dto.TotalBalanceParams, userID string) (*dto.BalanceResponse, error)

	GetCashRegisterByID(ctx context.Context, companyID, cashRegisterID, userID string) (*dto.CashRegisterResponse, error)
	ListCashRegisters(ctx context.Context, companyID, userID string) ([]dto.CashRegisterResponse, error)
}

// BankAccountWriterSvc defines write operations for accounts and registers.
type BankAccountWriterSvc interface {
	CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, userID string) (*dto.BankAccountResponse, error)
	UpdateBankAccount(ctx context.Context, companyID, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*dto.BankAccountResponse, error)
	// DeleteBankAccount refuses once the account has transactions.
	DeleteBankAccount(ctx context.Context, companyID, bankAccountID, userID string) error

	CreateCashRegister(ctx context.Context, companyID string, req dto.CreateCashRegisterRequest, userID string) (*dto.CashRegisterResponse, error)
	DeleteCashRegister(ctx context.Context, companyID, cashRegisterID, userID string) error

	// Withdraw posts an expense against the register's default account.
	Withdraw(ctx context.Context, companyID, cashRegisterID string, req dto.WithdrawRequest, userID string) (*dto.TransactionResponse, error)
}

// BankAccountSvcFacade combines bank account service interfaces.
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
