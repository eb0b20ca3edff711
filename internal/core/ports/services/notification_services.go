package services

import (
	"context"
	"time"

	"github.com/fintelis/erp_backend/internal/dto"
)

// NotificationSvcFacade defines alert listing and the due-date sweep.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, companyID string, params dto.ListNotificationsParams, userID string) ([]dto.NotificationResponse, error)
	MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string) error

	// CheckLowStock creates a low-stock alert for the item if its quantity
	// sits at or below the product's minimum and no unread alert for the
	// item already exists.
	CheckLowStock(ctx context.Context, stockItemID string, quantityOnHand int64) error

	// SweepDueDates alerts on pending bills and incomes due within the lead
	// window, deduped against unread alerts per document. Returns the number
	// of alerts created.
	SweepDueDates(ctx context.Context, asOf time.Time, leadDays int) (int, error)
}
