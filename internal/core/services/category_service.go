package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// categoryService implements the two-level category and cost-center trees.
// Codes are allocated by the repository inside the insert transaction and are
// never reissued after deletion.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo, companySvc: companySvc}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, userID string) (*dto.CategoryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.CompanyID != companyID {
			return nil, notFoundOutsideScope(ctx, "category", *req.ParentID, companyID)
		}
		if parent.ParentID != nil {
			return nil, apperrors.NewAppError(400, "hierarchy is limited to two levels", apperrors.ErrValidation)
		}
		if parent.Kind != req.Kind {
			return nil, apperrors.NewAppError(400, "child kind must match parent kind", apperrors.ErrValidation)
		}
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		Kind:        req.Kind,
		ParentID:    req.ParentID,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}

	created, err := s.categoryRepo.CreateCategoryWithCode(ctx, category)
	if err != nil {
		logger.Error("Failed to create category", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", created.CategoryID), slog.String("code", created.Code))
	resp := dto.ToCategoryResponse(created)
	return &resp, nil
}

func (s *categoryService) findScopedCategory(ctx context.Context, companyID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "category", categoryID, companyID)
	}
	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, companyID, categoryID, userID string) (*dto.CategoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	category, err := s.findScopedCategory(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) ListCategories(ctx context.Context, companyID, userID string) (*dto.CategoryTreeResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategoriesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	tree := &dto.CategoryTreeResponse{
		Revenue: buildCategoryTree(categories, domain.KindRevenue),
		Expense: buildCategoryTree(categories, domain.KindExpense),
	}
	return tree, nil
}

// buildCategoryTree nests children under their parents for one kind, both
// levels ordered by ordinal so codes read in sequence.
func buildCategoryTree(categories []domain.Category, kind domain.CategoryKind) []dto.CategoryNode {
	children := make(map[string][]dto.CategoryNode)
	var roots []domain.Category

	for _, c := range categories {
		if c.Kind != kind {
			continue
		}
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], dto.CategoryNode{CategoryResponse: dto.ToCategoryResponse(&c)})
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Ordinal < roots[j].Ordinal })

	nodes := make([]dto.CategoryNode, 0, len(roots))
	for _, root := range roots {
		kids := children[root.CategoryID]
		sort.Slice(kids, func(i, j int) bool { return kids[i].Code < kids[j].Code })
		nodes = append(nodes, dto.CategoryNode{
			CategoryResponse: dto.ToCategoryResponse(&root),
			Children:         kids,
		})
	}
	return nodes
}

func (s *categoryService) UpdateCategory(ctx context.Context, companyID, categoryID string, req dto.UpdateCategoryRequest, userID string) (*dto.CategoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	category, err := s.findScopedCategory(ctx, companyID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Touch(userID, time.Now())

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	resp := dto.ToCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, companyID, categoryID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	category, err := s.findScopedCategory(ctx, companyID, categoryID)
	if err != nil {
		return err
	}

	if category.ParentID == nil {
		all, err := s.categoryRepo.ListCategoriesByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, c := range all {
			if c.ParentID != nil && *c.ParentID == categoryID {
				return apperrors.NewAppError(409, "category has children and cannot be deleted", apperrors.ErrConflict)
			}
		}
	}

	// Referential use by transactions, bills or incomes surfaces as a foreign
	// key restriction, which the repository maps to ErrConflict.
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Warn("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return err
	}
	return nil
}

func (s *categoryService) CreateCostCenter(ctx context.Context, companyID string, req dto.CreateCostCenterRequest, userID string) (*dto.CostCenterResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindCostCenterByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.CompanyID != companyID {
			return nil, notFoundOutsideScope(ctx, "cost center", *req.ParentID, companyID)
		}
		if parent.ParentID != nil {
			return nil, apperrors.NewAppError(400, "hierarchy is limited to two levels", apperrors.ErrValidation)
		}
	}

	costCenter := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		CompanyID:    companyID,
		Name:         req.Name,
		ParentID:     req.ParentID,
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}

	created, err := s.categoryRepo.CreateCostCenterWithCode(ctx, costCenter)
	if err != nil {
		logger.Error("Failed to create cost center", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create cost center: %w", err)
	}

	resp := dto.ToCostCenterResponse(created)
	return &resp, nil
}

func (s *categoryService) findScopedCostCenter(ctx context.Context, companyID, costCenterID string) (*domain.CostCenter, error) {
	costCenter, err := s.categoryRepo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return nil, err
	}
	if costCenter.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "cost center", costCenterID, companyID)
	}
	return costCenter, nil
}

func (s *categoryService) GetCostCenterByID(ctx context.Context, companyID, costCenterID, userID string) (*dto.CostCenterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	costCenter, err := s.findScopedCostCenter(ctx, companyID, costCenterID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCostCenterResponse(costCenter)
	return &resp, nil
}

func (s *categoryService) ListCostCenters(ctx context.Context, companyID, userID string) ([]dto.CostCenterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	centers, err := s.categoryRepo.ListCostCentersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].Code < centers[j].Code })
	return dto.ToCostCenterResponses(centers), nil
}

func (s *categoryService) UpdateCostCenter(ctx context.Context, companyID, costCenterID string, req dto.UpdateCategoryRequest, userID string) (*dto.CostCenterResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	costCenter, err := s.findScopedCostCenter(ctx, companyID, costCenterID)
	if err != nil {
		return nil, err
	}

	costCenter.Name = req.Name
	costCenter.Touch(userID, time.Now())

	if err := s.categoryRepo.UpdateCostCenter(ctx, *costCenter); err != nil {
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}

	resp := dto.ToCostCenterResponse(costCenter)
	return &resp, nil
}

func (s *categoryService) DeleteCostCenter(ctx context.Context, companyID, costCenterID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	costCenter, err := s.findScopedCostCenter(ctx, companyID, costCenterID)
	if err != nil {
		return err
	}

	if costCenter.ParentID == nil {
		all, err := s.categoryRepo.ListCostCentersByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list cost centers: %w", err)
		}
		for _, c := range all {
			if c.ParentID != nil && *c.ParentID == costCenterID {
				return apperrors.NewAppError(409, "cost center has children and cannot be deleted", apperrors.ErrConflict)
			}
		}
	}

	return s.categoryRepo.DeleteCostCenter(ctx, costCenterID)
}
