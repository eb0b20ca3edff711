package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillRequest defines the data needed to create a payable bill.
type CreateBillRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
	ContactID    *string         `json:"contactID"`
	CategoryID   *string         `json:"categoryID"`
	CostCenterID *string         `json:"costCenterID"`
}

// UpdateBillRequest edits a pending bill. Settled bills are immutable.
type UpdateBillRequest struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	DueDate      *time.Time       `json:"dueDate"`
	ContactID    *string          `json:"contactID"`
	CategoryID   *string          `json:"categoryID"`
	CostCenterID *string          `json:"costCenterID"`
}

// SettleRequest records the payment (or receipt) that settles a bill or
// income against a bank account. The settling transaction always carries the
// document's own amount.
type SettleRequest struct {
	BankAccountID string    `json:"bankAccountID" binding:"required"`
	Date          time.Time `json:"date"`
	Description   *string   `json:"description"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID               string                  `json:"billID"`
	Description          string                  `json:"description"`
	Amount               decimal.Decimal         `json:"amount"`
	DueDate              time.Time               `json:"dueDate"`
	Status               domain.SettlementStatus `json:"status"`
	ContactID            *string                 `json:"contactID,omitempty"`
	CategoryID           *string                 `json:"categoryID,omitempty"`
	CostCenterID         *string                 `json:"costCenterID,omitempty"`
	PaymentTransactionID *string                 `json:"paymentTransactionID,omitempty"`
	RecurringBillID      *string                 `json:"recurringBillID,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`

	// PaymentTransaction is populated only on the settlement response.
	PaymentTransaction *TransactionResponse `json:"paymentTransaction,omitempty"`
}

// ListBillsParams filters bill listing by settlement status.
type ListBillsParams struct {
	Status *domain.SettlementStatus `form:"status" binding:"omitempty,oneof=pending settled"`
}

// ToBillResponse converts a domain.Bill to BillResponse.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:               b.BillID,
		Description:          b.Description,
		Amount:               b.Amount,
		DueDate:              b.DueDate,
		Status:               b.Status,
		ContactID:            b.ContactID,
		CategoryID:           b.CategoryID,
		CostCenterID:         b.CostCenterID,
		PaymentTransactionID: b.PaymentTransactionID,
		RecurringBillID:      b.RecurringBillID,
		CreatedAt:            b.CreatedAt,
	}
}

// ToBillResponses converts a slice of bills.
func ToBillResponses(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i := range bills {
		res[i] = ToBillResponse(&bills[i])
	}
	return res
}

// CreateIncomeRequest defines the data needed to create a receivable income.
type CreateIncomeRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDate      time.Time       `json:"dueDate" binding:"required"`
	ContactID    *string         `json:"contactID"`
	CategoryID   *string         `json:"categoryID"`
	CostCenterID *string         `json:"costCenterID"`
}

// UpdateIncomeRequest edits a pending income. Settled incomes are immutable.
type UpdateIncomeRequest struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	DueDate      *time.Time       `json:"dueDate"`
	ContactID    *string          `json:"contactID"`
	CategoryID   *string          `json:"categoryID"`
	CostCenterID *string          `json:"costCenterID"`
}

// IncomeResponse defines the data returned for an income.
type IncomeResponse struct {
	IncomeID             string                  `json:"incomeID"`
	Description          string                  `json:"description"`
	Amount               decimal.Decimal         `json:"amount"`
	DueDate              time.Time               `json:"dueDate"`
	Status               domain.SettlementStatus `json:"status"`
	ContactID            *string                 `json:"contactID,omitempty"`
	CategoryID           *string                 `json:"categoryID,omitempty"`
	CostCenterID         *string                 `json:"costCenterID,omitempty"`
	PaymentTransactionID *string                 `json:"paymentTransactionID,omitempty"`
	RecurringIncomeID    *string                 `json:"recurringIncomeID,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`

	// PaymentTransaction is populated only on the settlement response.
	PaymentTransaction *TransactionResponse `json:"paymentTransaction,omitempty"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse.
func ToIncomeResponse(in *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:             in.IncomeID,
		Description:          in.Description,
		Amount:               in.Amount,
		DueDate:              in.DueDate,
		Status:               in.Status,
		ContactID:            in.ContactID,
		CategoryID:           in.CategoryID,
		CostCenterID:         in.CostCenterID,
		PaymentTransactionID: in.PaymentTransactionID,
		RecurringIncomeID:    in.RecurringIncomeID,
		CreatedAt:            in.CreatedAt,
	}
}

// ToIncomeResponses converts a slice of incomes.
func ToIncomeResponses(incomes []domain.Income) []IncomeResponse {
	res := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		res[i] = ToIncomeResponse(&incomes[i])
	}
	return res
}
