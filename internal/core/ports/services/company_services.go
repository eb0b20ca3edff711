package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/fintelis/erp_backend/internal/dto"
)

// CompanySvcFacade defines tenant management and the membership check every
// scoped operation goes through.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*dto.CompanyResponse, error)
	GetCompanyByID(ctx context.Context, companyID, userID string) (*dto.CompanyResponse, error)
	ListMyCompanies(ctx context.Context, userID string) ([]dto.CompanyResponse, error)
	AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, actingUserID string) error

	// SelectCompany verifies membership and issues a company-scoped token.
	SelectCompany(ctx context.Context, userID string, req dto.SelectCompanyRequest) (*dto.CompanyTokenResponse, error)

	// AuthorizeUserAction verifies the user belongs to the company with at
	// least the required role. Non-members get ErrForbidden.
	AuthorizeUserAction(ctx context.Context, companyID, userID string, required domain.MembershipRole) error
}
