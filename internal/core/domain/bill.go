package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the lifecycle state of a bill or income.
type SettlementStatus string

const (
	StatusPending SettlementStatus = "pending"
	StatusSettled SettlementStatus = "settled"
)

// Bill is a promise of future expense. Settlement ("baixa") turns it into an
// expense transaction exactly once; there is no un-settlement path.
type Bill struct {
	BillID       string           `json:"billID"`
	CompanyID    string           `json:"companyID"`
	CategoryID   *string          `json:"categoryID,omitempty"` // expense category
	CostCenterID *string          `json:"costCenterID,omitempty"`
	ContactID    *string          `json:"contactID,omitempty"` // supplier
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	DueDate      time.Time        `json:"dueDate"`
	Status       SettlementStatus `json:"status"`
	// PaymentTransactionID is set exactly once, on settlement.
	PaymentTransactionID *string `json:"paymentTransactionID,omitempty"`
	// RecurringBillID back-references the template that generated this instance.
	RecurringBillID *string `json:"recurringBillID,omitempty"`
	AuditFields
}

// Income is a promise of future revenue, the mirror of Bill.
type Income struct {
	IncomeID     string           `json:"incomeID"`
	CompanyID    string           `json:"companyID"`
	CategoryID   *string          `json:"categoryID,omitempty"` // revenue category
	CostCenterID *string          `json:"costCenterID,omitempty"`
	ContactID    *string          `json:"contactID,omitempty"` // customer
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	DueDate      time.Time        `json:"dueDate"`
	Status       SettlementStatus `json:"status"`
	PaymentTransactionID *string  `json:"paymentTransactionID,omitempty"`
	RecurringIncomeID    *string  `json:"recurringIncomeID,omitempty"`
	AuditFields
}
