package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the generation cadence of a recurring template.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// ValidFrequency reports whether f is a known frequency.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// NextAfter returns the due date following current for this frequency.
// Month-based frequencies use calendar-aware addition so a Jan 31 template
// lands on Feb 28/29 instead of drifting.
func (f Frequency) NextAfter(current time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return current.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return current.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return AddMonths(current, 1)
	case FrequencyQuarterly:
		return AddMonths(current, 3)
	case FrequencyYearly:
		return AddMonths(current, 12)
	}
	return current
}

// AddMonths adds months to a date, clamping the day to the length of the
// target month. time.AddDate would normalize Jan 31 + 1 month to Mar 3;
// ledger due dates must not skip months.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) - 1 + months
	year += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		year--
	}
	targetMonth := time.Month(m + 1)
	if last := daysIn(year, targetMonth); day > last {
		day = last
	}
	return time.Date(year, targetMonth, day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RecurringBill is a template generating pending Bill instances on a schedule.
// next_due_date always holds the next unprocessed occurrence; once it passes
// end_date the template deactivates and generation stops.
type RecurringBill struct {
	RecurringBillID string          `json:"recurringBillID"`
	CompanyID       string          `json:"companyID"`
	CategoryID      *string         `json:"categoryID,omitempty"`
	CostCenterID    *string         `json:"costCenterID,omitempty"`
	ContactID       *string         `json:"contactID,omitempty"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Frequency       Frequency       `json:"frequency"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	NextDueDate     time.Time       `json:"nextDueDate"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// RecurringIncome is the revenue-side template, the mirror of RecurringBill.
type RecurringIncome struct {
	RecurringIncomeID string          `json:"recurringIncomeID"`
	CompanyID         string          `json:"companyID"`
	CategoryID        *string         `json:"categoryID,omitempty"`
	CostCenterID      *string         `json:"costCenterID,omitempty"`
	ContactID         *string         `json:"contactID,omitempty"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         Frequency       `json:"frequency"`
	StartDate         time.Time       `json:"startDate"`
	EndDate           *time.Time      `json:"endDate,omitempty"`
	NextDueDate       time.Time       `json:"nextDueDate"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
