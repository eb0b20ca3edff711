package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a single revenue or expense entry.
// BankAccountID is mandatory unless CashRegisterID is set, in which case the
// entry lands on the register's default account.
type CreateTransactionRequest struct {
	BankAccountID string                 `json:"bankAccountID"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=revenue expense"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Description   string                 `json:"description" binding:"required"`
	Date          time.Time              `json:"date"`
	CategoryID    *string                `json:"categoryID"`
	CostCenterID  *string                `json:"costCenterID"`
	ContactID     *string                `json:"contactID"`
	CashRegisterID *string               `json:"cashRegisterID"`
}

// UpdateTransactionRequest edits descriptive metadata only. Amount, type and
// account are immutable after posting.
type UpdateTransactionRequest struct {
	Description  *string `json:"description"`
	CategoryID   *string `json:"categoryID"`
	CostCenterID *string `json:"costCenterID"`
	ContactID    *string `json:"contactID"`
}

// TransferRequest moves funds between two accounts of the same company.
// DeductionPercentage, when set, shrinks the incoming leg; the outgoing leg
// always carries the gross amount.
type TransferRequest struct {
	FromBankAccountID   string           `json:"fromBankAccountID" binding:"required"`
	ToBankAccountID     string           `json:"toBankAccountID" binding:"required"`
	Amount              decimal.Decimal  `json:"amount" binding:"required"`
	Description         string           `json:"description" binding:"required"`
	Date                time.Time        `json:"date"`
	DeductionPercentage *decimal.Decimal `json:"deductionPercentage"`
}

// RefundRequest reverses part or all of a revenue transaction.
type RefundRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	BankAccountID        string                 `json:"bankAccountID"`
	Type                 domain.TransactionType `json:"type"`
	Amount               decimal.Decimal        `json:"amount"`
	Description          string                 `json:"description"`
	Date                 time.Time              `json:"date"`
	CategoryID           *string                `json:"categoryID,omitempty"`
	CostCenterID         *string                `json:"costCenterID,omitempty"`
	ContactID            *string                `json:"contactID,omitempty"`
	CashRegisterID       *string                `json:"cashRegisterID,omitempty"`
	LinkedTransactionID  *string                `json:"linkedTransactionID,omitempty"`
	RelatedTransactionID *string                `json:"relatedTransactionID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// TransferResponse returns both legs of a completed transfer.
type TransferResponse struct {
	Outgoing TransactionResponse `json:"outgoing"`
	Incoming TransactionResponse `json:"incoming"`
}

// ListTransactionsResponse is a paginated transaction page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListTransactionsParams defines query parameters for transaction listing.
type ListTransactionsParams struct {
	BankAccountID *string `form:"bankAccountID"`
	Limit         int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken     *string `form:"nextToken"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		BankAccountID:        t.BankAccountID,
		Type:                 t.Type,
		Amount:               t.Amount,
		Description:          t.Description,
		Date:                 t.TransactionDate,
		CategoryID:           t.CategoryID,
		CostCenterID:         t.CostCenterID,
		ContactID:            t.ContactID,
		CashRegisterID:       t.CashRegisterID,
		LinkedTransactionID:  t.LinkedTransactionID,
		RelatedTransactionID: t.RelatedTransactionID,
		CreatedAt:            t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
