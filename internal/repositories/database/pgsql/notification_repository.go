package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
)

// PgxNotificationRepository implements the notification repository using pgx.
type PgxNotificationRepository struct {
	BaseRepository
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func newPgxNotificationRepository(db *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository{Pool: db}}
}

const notificationColumns = `notification_id, company_id, title, message, is_read,
	stock_item_id, bill_id, income_id,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		notification.NotificationID, notification.CompanyID, notification.Title, notification.Message, notification.IsRead,
		notification.StockItemID, notification.BillID, notification.IncomeID,
		notification.CreatedAt, notification.CreatedBy, notification.LastUpdatedAt, notification.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save notification", err)
	}
	return nil
}

func (r *PgxNotificationRepository) ListNotificationsByCompany(ctx context.Context, companyID string, unreadOnly bool) ([]domain.Notification, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE company_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC`,
		companyID, unreadOnly,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list notifications", err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.NotificationID, &n.CompanyID, &n.Title, &n.Message, &n.IsRead,
			&n.StockItemID, &n.BillID, &n.IncomeID,
			&n.CreatedAt, &n.CreatedBy, &n.LastUpdatedAt, &n.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string, readAt time.Time) error {
	// Scoped by company so one tenant cannot acknowledge another's alerts.
	tag, err := r.Pool.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, last_updated_at = $1, last_updated_by = $2
		WHERE notification_id = $3 AND company_id = $4`,
		readAt, userID, notificationID, companyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxNotificationRepository) HasUnreadForStockItem(ctx context.Context, stockItemID string) (bool, error) {
	return r.hasUnread(ctx, `stock_item_id`, stockItemID)
}

func (r *PgxNotificationRepository) HasUnreadForBill(ctx context.Context, billID string) (bool, error) {
	return r.hasUnread(ctx, `bill_id`, billID)
}

func (r *PgxNotificationRepository) HasUnreadForIncome(ctx context.Context, incomeID string) (bool, error) {
	return r.hasUnread(ctx, `income_id`, incomeID)
}

func (r *PgxNotificationRepository) hasUnread(ctx context.Context, column, id string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE `+column+` = $1 AND NOT is_read)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check unread notifications", err)
	}
	return exists, nil
}
