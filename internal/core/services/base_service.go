package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// notFoundOutsideScope logs a cross-company access attempt and returns a
// plain not-found. Callers outside the owning company must not learn that
// the entity exists.
func notFoundOutsideScope(ctx context.Context, entity, entityID, requestedCompanyID string) error {
	middleware.GetLoggerFromCtx(ctx).Warn("Entity requested from outside its company",
		slog.String("entity", entity),
		slog.String("entity_id", entityID),
		slog.String("requested_company_id", requestedCompanyID),
	)
	return apperrors.NewNotFoundError(entity + " not found")
}

// checkCategoryRef re-fetches a payload-supplied category and rejects it when
// it belongs to another company or its kind does not match the polarity of
// the entry being classified.
func checkCategoryRef(ctx context.Context, repo portsrepo.CategoryRepositoryFacade, companyID, categoryID string, kind domain.CategoryKind) error {
	category, err := repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.CompanyID != companyID {
		return apperrors.NewAppError(403, "categoryID references a category of another company", apperrors.ErrScope)
	}
	if category.Kind != kind {
		return apperrors.NewAppError(400,
			fmt.Sprintf("category %s is a %s category and cannot classify a %s entry", category.Code, category.Kind, kind),
			apperrors.ErrValidation)
	}
	return nil
}

// checkCostCenterRef re-fetches a payload-supplied cost center and rejects it
// when it belongs to another company.
func checkCostCenterRef(ctx context.Context, repo portsrepo.CategoryRepositoryFacade, companyID, costCenterID string) error {
	costCenter, err := repo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return err
	}
	if costCenter.CompanyID != companyID {
		return apperrors.NewAppError(403, "costCenterID references a cost center of another company", apperrors.ErrScope)
	}
	return nil
}

// checkContactRef re-fetches a payload-supplied contact and rejects it when
// it belongs to another company. Kind constraints are the caller's business.
func checkContactRef(ctx context.Context, repo portsrepo.ContactRepositoryFacade, companyID, contactID string) (*domain.Contact, error) {
	contact, err := repo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.CompanyID != companyID {
		return nil, apperrors.NewAppError(403, "contactID references a contact of another company", apperrors.ErrScope)
	}
	return contact, nil
}

// checkDocumentContact applies the contact rule shared by bills, incomes and
// their recurring templates: same company, and suppliers on payables,
// customers on receivables.
func checkDocumentContact(ctx context.Context, repo portsrepo.ContactRepositoryFacade, companyID, contactID string, supplier bool) error {
	contact, err := checkContactRef(ctx, repo, companyID, contactID)
	if err != nil {
		return err
	}
	if supplier && !contact.CanSupply() {
		return apperrors.NewAppError(400, "contact is not a supplier", apperrors.ErrValidation)
	}
	if !supplier && !contact.CanBuy() {
		return apperrors.NewAppError(400, "contact is not a customer", apperrors.ErrValidation)
	}
	return nil
}
