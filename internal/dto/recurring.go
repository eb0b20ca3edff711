package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringBillRequest defines a recurring payable template.
type CreateRecurringBillRequest struct {
	Description  string           `json:"description" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Frequency    domain.Frequency `json:"frequency" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	StartDate    time.Time        `json:"startDate" binding:"required"`
	EndDate      *time.Time       `json:"endDate"`
	ContactID    *string          `json:"contactID"`
	CategoryID   *string          `json:"categoryID"`
	CostCenterID *string          `json:"costCenterID"`
}

// UpdateRecurringTemplateRequest edits a template. An amount change also
// applies to already generated occurrences that are still pending.
type UpdateRecurringTemplateRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	EndDate     *time.Time       `json:"endDate"`
	IsActive    *bool            `json:"isActive"`
}

// RecurringBillResponse defines the data returned for a recurring template.
type RecurringBillResponse struct {
	RecurringBillID string           `json:"recurringBillID"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	Frequency       domain.Frequency `json:"frequency"`
	NextDueDate     time.Time        `json:"nextDueDate"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	IsActive        bool             `json:"isActive"`
	ContactID       *string          `json:"contactID,omitempty"`
	CategoryID      *string          `json:"categoryID,omitempty"`
	CostCenterID    *string          `json:"costCenterID,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ToRecurringBillResponse converts a domain.RecurringBill.
func ToRecurringBillResponse(t *domain.RecurringBill) RecurringBillResponse {
	return RecurringBillResponse{
		RecurringBillID: t.RecurringBillID,
		Description:     t.Description,
		Amount:          t.Amount,
		Frequency:       t.Frequency,
		NextDueDate:     t.NextDueDate,
		EndDate:         t.EndDate,
		IsActive:        t.IsActive,
		ContactID:       t.ContactID,
		CategoryID:      t.CategoryID,
		CostCenterID:    t.CostCenterID,
		CreatedAt:       t.CreatedAt,
	}
}

// ToRecurringBillResponses converts a slice of recurring bill templates.
func ToRecurringBillResponses(templates []domain.RecurringBill) []RecurringBillResponse {
	res := make([]RecurringBillResponse, len(templates))
	for i := range templates {
		res[i] = ToRecurringBillResponse(&templates[i])
	}
	return res
}

// CreateRecurringIncomeRequest defines a recurring receivable template.
type CreateRecurringIncomeRequest struct {
	Description  string           `json:"description" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Frequency    domain.Frequency `json:"frequency" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	StartDate    time.Time        `json:"startDate" binding:"required"`
	EndDate      *time.Time       `json:"endDate"`
	ContactID    *string          `json:"contactID"`
	CategoryID   *string          `json:"categoryID"`
	CostCenterID *string          `json:"costCenterID"`
}

// RecurringIncomeResponse defines the data returned for a recurring template.
type RecurringIncomeResponse struct {
	RecurringIncomeID string           `json:"recurringIncomeID"`
	Description       string           `json:"description"`
	Amount            decimal.Decimal  `json:"amount"`
	Frequency         domain.Frequency `json:"frequency"`
	NextDueDate       time.Time        `json:"nextDueDate"`
	EndDate           *time.Time       `json:"endDate,omitempty"`
	IsActive          bool             `json:"isActive"`
	ContactID         *string          `json:"contactID,omitempty"`
	CategoryID        *string          `json:"categoryID,omitempty"`
	CostCenterID      *string          `json:"costCenterID,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// ToRecurringIncomeResponse converts a domain.RecurringIncome.
func ToRecurringIncomeResponse(t *domain.RecurringIncome) RecurringIncomeResponse {
	return RecurringIncomeResponse{
		RecurringIncomeID: t.RecurringIncomeID,
		Description:       t.Description,
		Amount:            t.Amount,
		Frequency:         t.Frequency,
		NextDueDate:       t.NextDueDate,
		EndDate:           t.EndDate,
		IsActive:          t.IsActive,
		ContactID:         t.ContactID,
		CategoryID:        t.CategoryID,
		CostCenterID:      t.CostCenterID,
		CreatedAt:         t.CreatedAt,
	}
}

// ToRecurringIncomeResponses converts a slice of recurring income templates.
func ToRecurringIncomeResponses(templates []domain.RecurringIncome) []RecurringIncomeResponse {
	res := make([]RecurringIncomeResponse, len(templates))
	for i := range templates {
		res[i] = ToRecurringIncomeResponse(&templates[i])
	}
	return res
}
