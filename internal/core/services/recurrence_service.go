package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// recurrenceService implements recurring templates and the generation sweep.
type recurrenceService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
	contactRepo   portsrepo.ContactRepositoryFacade
	companySvc    portssvc.CompanySvcFacade
}

// NewRecurrenceService creates a new recurrence service.
func NewRecurrenceService(recurringRepo portsrepo.RecurringRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, contactRepo portsrepo.ContactRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.RecurrenceSvcFacade {
	return &recurrenceService{recurringRepo: recurringRepo, categoryRepo: categoryRepo, contactRepo: contactRepo, companySvc: companySvc}
}

var _ portssvc.RecurrenceSvcFacade = (*recurrenceService)(nil)

// checkTemplateRefs validates the references a template stamps onto every
// generated document. Same polarity rules as the documents themselves.
func (s *recurrenceService) checkTemplateRefs(ctx context.Context, companyID string, categoryID, costCenterID, contactID *string, payable bool) error {
	if categoryID != nil {
		kind := domain.KindRevenue
		if payable {
			kind = domain.KindExpense
		}
		if err := checkCategoryRef(ctx, s.categoryRepo, companyID, *categoryID, kind); err != nil {
			return err
		}
	}
	if costCenterID != nil {
		if err := checkCostCenterRef(ctx, s.categoryRepo, companyID, *costCenterID); err != nil {
			return err
		}
	}
	if contactID != nil {
		if err := checkDocumentContact(ctx, s.contactRepo, companyID, *contactID, payable); err != nil {
			return err
		}
	}
	return nil
}

func (s *recurrenceService) CreateRecurringBill(ctx context.Context, companyID string, req dto.CreateRecurringBillRequest, userID string) (*dto.RecurringBillResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewAppError(400, "end date precedes start date", apperrors.ErrValidation)
	}
	if err := s.checkTemplateRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, true); err != nil {
		return nil, err
	}

	template := domain.RecurringBill{
		RecurringBillID: uuid.NewString(),
		CompanyID:       companyID,
		CategoryID:      req.CategoryID,
		CostCenterID:    req.CostCenterID,
		ContactID:       req.ContactID,
		Description:     req.Description,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		NextDueDate:     req.StartDate,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.recurringRepo.SaveRecurringBill(ctx, template); err != nil {
		logger.Error("Failed to save recurring bill", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save recurring bill: %w", err)
	}

	resp := dto.ToRecurringBillResponse(&template)
	return &resp, nil
}

func (s *recurrenceService) findScopedBillTemplate(ctx context.Context, companyID, templateID string) (*domain.RecurringBill, error) {
	template, err := s.recurringRepo.FindRecurringBillByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "recurring bill", templateID, companyID)
	}
	return template, nil
}

func (s *recurrenceService) GetRecurringBillByID(ctx context.Context, companyID, templateID, userID string) (*dto.RecurringBillResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	template, err := s.findScopedBillTemplate(ctx, companyID, templateID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToRecurringBillResponse(template)
	return &resp, nil
}

func (s *recurrenceService) ListRecurringBills(ctx context.Context, companyID, userID string) ([]dto.RecurringBillResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	templates, err := s.recurringRepo.ListRecurringBillsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring bills: %w", err)
	}
	return dto.ToRecurringBillResponses(templates), nil
}

func (s *recurrenceService) UpdateRecurringBill(ctx context.Context, companyID, templateID string, req dto.UpdateRecurringTemplateRequest, userID string) (*dto.RecurringBillResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	template, err := s.findScopedBillTemplate(ctx, companyID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
		}
		template.Amount = *req.Amount
	}
	if req.EndDate != nil {
		template.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	template.Touch(userID, time.Now())

	// An amount edit always reaches pending occurrences already generated.
	propagate := req.Amount != nil
	if err := s.recurringRepo.UpdateRecurringBill(ctx, *template, propagate); err != nil {
		logger.Error("Failed to update recurring bill", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to update recurring bill: %w", err)
	}

	resp := dto.ToRecurringBillResponse(template)
	return &resp, nil
}

func (s *recurrenceService) DeleteRecurringBill(ctx context.Context, companyID, templateID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.findScopedBillTemplate(ctx, companyID, templateID); err != nil {
		return err
	}
	// Generated bills keep their back-reference; only the template goes.
	return s.recurringRepo.DeleteRecurringBill(ctx, templateID)
}

func (s *recurrenceService) CreateRecurringIncome(ctx context.Context, companyID string, req dto.CreateRecurringIncomeRequest, userID string) (*dto.RecurringIncomeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewAppError(400, "end date precedes start date", apperrors.ErrValidation)
	}
	if err := s.checkTemplateRefs(ctx, companyID, req.CategoryID, req.CostCenterID, req.ContactID, false); err != nil {
		return nil, err
	}

	template := domain.RecurringIncome{
		RecurringIncomeID: uuid.NewString(),
		CompanyID:         companyID,
		CategoryID:        req.CategoryID,
		CostCenterID:      req.CostCenterID,
		ContactID:         req.ContactID,
		Description:       req.Description,
		Amount:            req.Amount,
		Frequency:         req.Frequency,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		NextDueDate:       req.StartDate,
		IsActive:          true,
		AuditFields:       domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.recurringRepo.SaveRecurringIncome(ctx, template); err != nil {
		logger.Error("Failed to save recurring income", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save recurring income: %w", err)
	}

	resp := dto.ToRecurringIncomeResponse(&template)
	return &resp, nil
}

func (s *recurrenceService) findScopedIncomeTemplate(ctx context.Context, companyID, templateID string) (*domain.RecurringIncome, error) {
	template, err := s.recurringRepo.FindRecurringIncomeByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "recurring income", templateID, companyID)
	}
	return template, nil
}

func (s *recurrenceService) GetRecurringIncomeByID(ctx context.Context, companyID, templateID, userID string) (*dto.RecurringIncomeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	template, err := s.findScopedIncomeTemplate(ctx, companyID, templateID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToRecurringIncomeResponse(template)
	return &resp, nil
}

func (s *recurrenceService) ListRecurringIncomes(ctx context.Context, companyID, userID string) ([]dto.RecurringIncomeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	templates, err := s.recurringRepo.ListRecurringIncomesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring incomes: %w", err)
	}
	return dto.ToRecurringIncomeResponses(templates), nil
}

func (s *recurrenceService) UpdateRecurringIncome(ctx context.Context, companyID, templateID string, req dto.UpdateRecurringTemplateRequest, userID string) (*dto.RecurringIncomeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	template, err := s.findScopedIncomeTemplate(ctx, companyID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
		}
		template.Amount = *req.Amount
	}
	if req.EndDate != nil {
		template.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	template.Touch(userID, time.Now())

	propagate := req.Amount != nil
	if err := s.recurringRepo.UpdateRecurringIncome(ctx, *template, propagate); err != nil {
		logger.Error("Failed to update recurring income", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to update recurring income: %w", err)
	}

	resp := dto.ToRecurringIncomeResponse(template)
	return &resp, nil
}

func (s *recurrenceService) DeleteRecurringIncome(ctx context.Context, companyID, templateID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.findScopedIncomeTemplate(ctx, companyID, templateID); err != nil {
		return err
	}
	return s.recurringRepo.DeleteRecurringIncome(ctx, templateID)
}

// GenerateDue processes every template whose next due date has arrived. One
// failing template is logged and skipped; the sweep keeps going. The guarded
// advance inside the repository makes re-runs and concurrent sweeps safe.
func (s *recurrenceService) GenerateDue(ctx context.Context, asOf time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	generated := 0

	billTemplates, err := s.recurringRepo.ListDueRecurringBills(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to list due recurring bills: %w", err)
	}
	for i := range billTemplates {
		// Catch up templates that are several occurrences behind.
		for billTemplates[i].IsActive && !billTemplates[i].NextDueDate.After(asOf) {
			if !s.generateOneBill(ctx, &billTemplates[i], asOf) {
				break
			}
			generated++
		}
	}

	incomeTemplates, err := s.recurringRepo.ListDueRecurringIncomes(ctx, asOf)
	if err != nil {
		return generated, fmt.Errorf("failed to list due recurring incomes: %w", err)
	}
	for i := range incomeTemplates {
		for incomeTemplates[i].IsActive && !incomeTemplates[i].NextDueDate.After(asOf) {
			if !s.generateOneIncome(ctx, &incomeTemplates[i], asOf) {
				break
			}
			generated++
		}
	}

	if generated > 0 {
		logger.Info("Recurrence sweep complete", slog.Int("generated", generated), slog.Time("as_of", asOf))
	}
	return generated, nil
}

func (s *recurrenceService) generateOneBill(ctx context.Context, template *domain.RecurringBill, asOf time.Time) bool {
	logger := middleware.GetLoggerFromCtx(ctx)

	prevDue := template.NextDueDate
	next := template.Frequency.NextAfter(prevDue)

	bill := domain.Bill{
		BillID:          uuid.NewString(),
		CompanyID:       template.CompanyID,
		CategoryID:      template.CategoryID,
		CostCenterID:    template.CostCenterID,
		ContactID:       template.ContactID,
		Description:     template.Description,
		Amount:          template.Amount,
		DueDate:         prevDue,
		Status:          domain.StatusPending,
		RecurringBillID: &template.RecurringBillID,
		AuditFields:     domain.NewAuditFields(template.CreatedBy, asOf),
	}

	template.NextDueDate = next
	if template.EndDate != nil && next.After(*template.EndDate) {
		template.IsActive = false
	}
	template.LastUpdatedAt = asOf

	if err := s.recurringRepo.GenerateBillFromTemplate(ctx, bill, *template, prevDue); err != nil {
		logger.Error("Failed to generate bill from template",
			slog.String("error", err.Error()),
			slog.String("template_id", template.RecurringBillID))
		return false
	}
	return true
}

func (s *recurrenceService) generateOneIncome(ctx context.Context, template *domain.RecurringIncome, asOf time.Time) bool {
	logger := middleware.GetLoggerFromCtx(ctx)

	prevDue := template.NextDueDate
	next := template.Frequency.NextAfter(prevDue)

	income := domain.Income{
		IncomeID:          uuid.NewString(),
		CompanyID:         template.CompanyID,
		CategoryID:        template.CategoryID,
		CostCenterID:      template.CostCenterID,
		ContactID:         template.ContactID,
		Description:       template.Description,
		Amount:            template.Amount,
		DueDate:           prevDue,
		Status:            domain.StatusPending,
		RecurringIncomeID: &template.RecurringIncomeID,
		AuditFields:       domain.NewAuditFields(template.CreatedBy, asOf),
	}

	template.NextDueDate = next
	if template.EndDate != nil && next.After(*template.EndDate) {
		template.IsActive = false
	}
	template.LastUpdatedAt = asOf

	if err := s.recurringRepo.GenerateIncomeFromTemplate(ctx, income, *template, prevDue); err != nil {
		logger.Error("Failed to generate income from template",
			slog.String("error", err.Error()),
			slog.String("template_id", template.RecurringIncomeID))
		return false
	}
	return true
}
