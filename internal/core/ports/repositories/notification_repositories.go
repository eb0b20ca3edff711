package repositories

import (
	"context"
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence operations for alerts.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotificationsByCompany(ctx context.Context, companyID string, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string, readAt time.Time) error

	// HasUnreadForStockItem backs the low-stock dedupe rule: at most one
	// unread alert per stock item.
	HasUnreadForStockItem(ctx context.Context, stockItemID string) (bool, error)
	HasUnreadForBill(ctx context.Context, billID string) (bool, error)
	HasUnreadForIncome(ctx context.Context, incomeID string) (bool, error)
}
