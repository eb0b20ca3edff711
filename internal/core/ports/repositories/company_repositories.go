package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence operations for companies and
// memberships. Membership rows back every tenant-scope decision.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	SaveMembership(ctx context.Context, membership domain.Membership) error
	FindMembership(ctx context.Context, companyID, userID string) (*domain.Membership, error)
}
