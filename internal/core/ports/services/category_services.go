package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// CategorySvcFacade defines the category and cost-center hierarchies.
// Hierarchies are two levels deep; codes are immutable once assigned.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, companyID string, req dto.CreateCategoryRequest, userID string) (*dto.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, companyID, categoryID, userID string) (*dto.CategoryResponse, error)
	// ListCategories returns the full hierarchy grouped by kind, children
	// nested under parents in code order.
	ListCategories(ctx context.Context, companyID, userID string) (*dto.CategoryTreeResponse, error)
	UpdateCategory(ctx context.Context, companyID, categoryID string, req dto.UpdateCategoryRequest, userID string) (*dto.CategoryResponse, error)
	// DeleteCategory refuses while the category has children or is referenced
	// by any transaction, bill or income.
	DeleteCategory(ctx context.Context, companyID, categoryID, userID string) error

	CreateCostCenter(ctx context.Context, companyID string, req dto.CreateCostCenterRequest, userID string) (*dto.CostCenterResponse, error)
	GetCostCenterByID(ctx context.Context, companyID, costCenterID, userID string) (*dto.CostCenterResponse, error)
	ListCostCenters(ctx context.Context, companyID, userID string) ([]dto.CostCenterResponse, error)
	UpdateCostCenter(ctx context.Context, companyID, costCenterID string, req dto.UpdateCategoryRequest, userID string) (*dto.CostCenterResponse, error)
	DeleteCostCenter(ctx context.Context, companyID, costCenterID, userID string) error
}
