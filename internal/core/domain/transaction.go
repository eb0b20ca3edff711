package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the ledger effect of a transaction.
type TransactionType string

const (
	TypeRevenue          TransactionType = "revenue"
	TypeExpense          TransactionType = "expense"
	TypeInternalTransfer TransactionType = "internal_transfer" // incoming leg of a transfer
	TypeExternalTransfer TransactionType = "external_transfer" // outgoing leg of a transfer
	TypeReversal         TransactionType = "reversal"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeRevenue, TypeExpense, TypeInternalTransfer, TypeExternalTransfer, TypeReversal:
		return true
	}
	return false
}

// IsTransfer reports whether t is either leg of a bank transfer.
func (t TransactionType) IsTransfer() bool {
	return t == TypeInternalTransfer || t == TypeExternalTransfer
}

// Transaction is the immutable fact of money movement. Amount, type and bank
// account never change after creation; only descriptive metadata may.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	CompanyID     string          `json:"companyID"`
	BankAccountID string          `json:"bankAccountID"`
	CategoryID    *string         `json:"categoryID,omitempty"`   // required unless transfer type
	CostCenterID  *string         `json:"costCenterID,omitempty"`
	CashRegisterID *string        `json:"cashRegisterID,omitempty"` // set only for register-originated entries
	ContactID     *string         `json:"contactID,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // always positive; sign comes from the type
	Type          TransactionType `json:"type"`
	TransactionDate time.Time     `json:"transactionDate"`
	// LinkedTransactionID pairs the two legs of a transfer.
	LinkedTransactionID *string `json:"linkedTransactionID,omitempty"`
	// RelatedTransactionID points a reversal at the transaction it offsets.
	RelatedTransactionID *string `json:"relatedTransactionID,omitempty"`
	AuditFields
}

// BalanceDelta returns the signed effect of the transaction on its bank
// account's balance. Revenue and incoming transfers add; expenses, outgoing
// transfers and reversals (which only offset revenue) subtract.
func (t Transaction) BalanceDelta() decimal.Decimal {
	switch t.Type {
	case TypeRevenue, TypeInternalTransfer:
		return t.Amount
	case TypeExpense, TypeExternalTransfer, TypeReversal:
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// IsReversal reports whether the transaction offsets a prior one.
func (t Transaction) IsReversal() bool {
	return t.Type == TypeReversal
}
