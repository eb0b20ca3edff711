package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for the category
// and cost-center hierarchies. Code generation happens inside the repository
// so the ordinal allocation and the insert share one database transaction.
type CategoryRepositoryFacade interface {
	// CreateCategoryWithCode allocates the next sibling ordinal under the
	// category's parent (or the root level), derives the dotted code, and
	// inserts the row in one unit of work. The stored entity is
	// returned with Code and Ordinal populated.
	CreateCategoryWithCode(ctx context.Context, category domain.Category) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategoriesByCompany(ctx context.Context, companyID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error

	CreateCostCenterWithCode(ctx context.Context, costCenter domain.CostCenter) (*domain.CostCenter, error)
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)
	ListCostCentersByCompany(ctx context.Context, companyID string) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	DeleteCostCenter(ctx context.Context, costCenterID string) error
}
