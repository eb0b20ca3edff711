package domain

// Notification is a company-scoped alert. At most one unread low-stock
// notification exists per stock item at any time; due-date alerts follow the
// same dedupe rule keyed on the bill or income.
type Notification struct {
	NotificationID string  `json:"notificationID"`
	CompanyID      string  `json:"companyID"`
	Title          string  `json:"title"`
	Message        string  `json:"message"`
	IsRead         bool    `json:"isRead"`
	StockItemID    *string `json:"stockItemID,omitempty"`
	BillID         *string `json:"billID,omitempty"`
	IncomeID       *string `json:"incomeID,omitempty"`
	AuditFields
}
