package domain

import "github.com/shopspring/decimal"

// BankAccountType classifies the destination of money.
type BankAccountType string

const (
	AccountChecking    BankAccountType = "checking"
	AccountSavings     BankAccountType = "savings"
	AccountCreditVault BankAccountType = "credit_vault"
	AccountPettyCash   BankAccountType = "petty_cash"
)

// ValidBankAccountType reports whether t is a known account type.
func ValidBankAccountType(t BankAccountType) bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditVault, AccountPettyCash:
		return true
	}
	return false
}

// BankAccount is the destination of money movement. Its current balance is
// always derived: initial_balance plus the signed sum of every transaction
// referencing it.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	Type           BankAccountType `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	BankName       string          `json:"bankName,omitempty"`
	AccountNumber  string          `json:"accountNumber,omitempty"`
	AuditFields
}

// CashRegister is a point-of-sale processor. Register-originated transactions
// always settle into its default bank account.
type CashRegister struct {
	CashRegisterID       string `json:"cashRegisterID"`
	CompanyID            string `json:"companyID"`
	Name                 string `json:"name"`
	DefaultBankAccountID string `json:"defaultBankAccountID"`
	AuditFields
}
