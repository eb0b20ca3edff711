package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	StockItemID    *string   `json:"stockItemID,omitempty"`
	BillID         *string   `json:"billID,omitempty"`
	IncomeID       *string   `json:"incomeID,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListNotificationsParams filters the notification listing.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unreadOnly"`
}

// ToNotificationResponse converts a domain.Notification.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		IsRead:         n.IsRead,
		StockItemID:    n.StockItemID,
		BillID:         n.BillID,
		IncomeID:       n.IncomeID,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		res[i] = ToNotificationResponse(&notifications[i])
	}
	return res
}
