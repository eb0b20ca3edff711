package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Type           domain.BankAccountType `json:"type" binding:"required,oneof=checking savings credit_vault petty_cash"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
	BankName       string                 `json:"bankName"`
	AccountNumber  string                 `json:"accountNumber"`
}

// UpdateBankAccountRequest defines the mutable fields of a bank account.
// Type and initial balance are immutable once the account has transactions.
type UpdateBankAccountRequest struct {
	Name          *string `json:"name"`
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string                 `json:"bankAccountID"`
	Name           string                 `json:"name"`
	Type           domain.BankAccountType `json:"type"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
	BankName       string                 `json:"bankName,omitempty"`
	AccountNumber  string                 `json:"accountNumber,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// BankAccountDetailsResponse adds the computed balance and recent movements.
type BankAccountDetailsResponse struct {
	BankAccountResponse
	CurrentBalance decimal.Decimal       `json:"currentBalance"`
	Transactions   []TransactionResponse `json:"transactions"`
	NextToken      *string               `json:"nextToken,omitempty"`
}

// BalanceResponse carries a single computed balance figure.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  a.BankAccountID,
		Name:           a.Name,
		Type:           a.Type,
		InitialBalance: a.InitialBalance,
		BankName:       a.BankName,
		AccountNumber:  a.AccountNumber,
		CreatedAt:      a.CreatedAt,
	}
}

// ToBankAccountResponses converts a slice of bank accounts.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}

// CreateCashRegisterRequest defines the data needed to create a cash register.
type CreateCashRegisterRequest struct {
	Name                 string `json:"name" binding:"required"`
	DefaultBankAccountID string `json:"defaultBankAccountID" binding:"required"`
}

// CashRegisterResponse defines the data returned for a cash register.
type CashRegisterResponse struct {
	CashRegisterID       string    `json:"cashRegisterID"`
	Name                 string    `json:"name"`
	DefaultBankAccountID string    `json:"defaultBankAccountID"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ToCashRegisterResponse converts a domain.CashRegister to CashRegisterResponse.
func ToCashRegisterResponse(r *domain.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		CashRegisterID:       r.CashRegisterID,
		Name:                 r.Name,
		DefaultBankAccountID: r.DefaultBankAccountID,
		CreatedAt:            r.CreatedAt,
	}
}

// ToCashRegisterResponses converts a slice of cash registers.
func ToCashRegisterResponses(registers []domain.CashRegister) []CashRegisterResponse {
	res := make([]CashRegisterResponse, len(registers))
	for i := range registers {
		res[i] = ToCashRegisterResponse(&registers[i])
	}
	return res
}

// WithdrawRequest records a cash withdrawal from a register's backing account.
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// TotalBalanceParams filters the company-wide balance aggregate.
type TotalBalanceParams struct {
	ExcludeTypes []domain.BankAccountType `form:"excludeTypes"`
}
