package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// notificationService implements alerts. Dedupe is against unread alerts
// only: reading an alert re-arms the trigger.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	stockRepo        portsrepo.StockRepositoryFacade
	settleRepo       portsrepo.SettlementRepositoryFacade
	companySvc       portssvc.CompanySvcFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, stockRepo portsrepo.StockRepositoryFacade, settleRepo portsrepo.SettlementRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		stockRepo:        stockRepo,
		settleRepo:       settleRepo,
		companySvc:       companySvc,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListNotifications(ctx context.Context, companyID string, params dto.ListNotificationsParams, userID string) ([]dto.NotificationResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListNotificationsByCompany(ctx, companyID, params.UnreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return dto.ToNotificationResponses(notifications), nil
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return err
	}
	return s.notificationRepo.MarkNotificationRead(ctx, companyID, notificationID, userID, time.Now())
}

func (s *notificationService) CheckLowStock(ctx context.Context, stockItemID string, quantityOnHand int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	detail, err := s.stockRepo.FindStockItemDetail(ctx, stockItemID)
	if err != nil {
		return fmt.Errorf("failed to load stock item detail: %w", err)
	}
	if quantityOnHand > detail.MinStockLevel {
		return nil
	}

	hasUnread, err := s.notificationRepo.HasUnreadForStockItem(ctx, stockItemID)
	if err != nil {
		return fmt.Errorf("failed to check unread alerts: %w", err)
	}
	if hasUnread {
		return nil
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		CompanyID:      detail.Item.CompanyID,
		Title:          "Estoque baixo",
		Message: fmt.Sprintf("%s em %s: %d unidade(s) em estoque (mínimo %d)",
			detail.ProductName, detail.InventoryName, quantityOnHand, detail.MinStockLevel),
		StockItemID: &detail.Item.StockItemID,
		AuditFields: domain.NewAuditFields(detail.Item.LastUpdatedBy, time.Now()),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to save low-stock notification: %w", err)
	}

	logger.Info("Low-stock alert created",
		slog.String("stock_item_id", stockItemID),
		slog.Int64("quantity_on_hand", quantityOnHand),
		slog.Int64("min_stock_level", detail.MinStockLevel))
	return nil
}

// SweepDueDates alerts on pending bills and incomes with due dates inside
// [asOf, asOf + leadDays]. Already-overdue documents alert too.
func (s *notificationService) SweepDueDates(ctx context.Context, asOf time.Time, leadDays int) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	created := 0

	// Zero lower bound picks up everything still pending, however old.
	from := time.Time{}
	to := asOf.AddDate(0, 0, leadDays)

	bills, err := s.settleRepo.ListBillsDueWithin(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list due bills: %w", err)
	}
	for i := range bills {
		bill := &bills[i]
		hasUnread, err := s.notificationRepo.HasUnreadForBill(ctx, bill.BillID)
		if err != nil {
			logger.Error("Failed to check unread bill alerts", slog.String("error", err.Error()), slog.String("bill_id", bill.BillID))
			continue
		}
		if hasUnread {
			continue
		}

		notification := domain.Notification{
			NotificationID: uuid.NewString(),
			CompanyID:      bill.CompanyID,
			Title:          "Conta a pagar vencendo",
			Message:        fmt.Sprintf("%s: %s vence em %s", bill.Description, bill.Amount, bill.DueDate.Format("2006-01-02")),
			BillID:         &bill.BillID,
			AuditFields:    domain.NewAuditFields(bill.CreatedBy, time.Now()),
		}
		if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
			logger.Error("Failed to save bill due alert", slog.String("error", err.Error()), slog.String("bill_id", bill.BillID))
			continue
		}
		created++
	}

	incomes, err := s.settleRepo.ListIncomesDueWithin(ctx, from, to)
	if err != nil {
		return created, fmt.Errorf("failed to list due incomes: %w", err)
	}
	for i := range incomes {
		income := &incomes[i]
		hasUnread, err := s.notificationRepo.HasUnreadForIncome(ctx, income.IncomeID)
		if err != nil {
			logger.Error("Failed to check unread income alerts", slog.String("error", err.Error()), slog.String("income_id", income.IncomeID))
			continue
		}
		if hasUnread {
			continue
		}

		notification := domain.Notification{
			NotificationID: uuid.NewString(),
			CompanyID:      income.CompanyID,
			Title:          "Conta a receber vencendo",
			Message:        fmt.Sprintf("%s: %s vence em %s", income.Description, income.Amount, income.DueDate.Format("2006-01-02")),
			IncomeID:       &income.IncomeID,
			AuditFields:    domain.NewAuditFields(income.CreatedBy, time.Now()),
		}
		if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
			logger.Error("Failed to save income due alert", slog.String("error", err.Error()), slog.String("income_id", income.IncomeID))
			continue
		}
		created++
	}

	if created > 0 {
		logger.Info("Due-date sweep complete", slog.Int("alerts_created", created))
	}
	return created, nil
}
