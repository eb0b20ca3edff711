package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank accounts and registers.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error)

	// CurrentBalance computes initial_balance plus the signed sum of all
	// transactions referencing the account, in a single query.
	CurrentBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error)

	// TotalBalanceByCompany sums current balances across the company's
	// accounts, excluding the given account types.
	TotalBalanceByCompany(ctx context.Context, companyID string, exclude []domain.BankAccountType) (decimal.Decimal, error)

	// HasTransactions reports whether any transaction references the account.
	HasTransactions(ctx context.Context, bankAccountID string) (bool, error)

	FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error)
	ListCashRegistersByCompany(ctx context.Context, companyID string) ([]domain.CashRegister, error)
}

// BankAccountWriter defines write operations for bank accounts and registers.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
	DeleteBankAccount(ctx context.Context, bankAccountID string) error

	SaveCashRegister(ctx context.Context, register domain.CashRegister) error
	UpdateCashRegister(ctx context.Context, register domain.CashRegister) error
	DeleteCashRegister(ctx context.Context, cashRegisterID string) error
}

// BankAccountRepositoryFacade combines bank-account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
