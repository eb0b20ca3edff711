package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a company.
type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required"`
	TaxID string `json:"taxID"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
	}
}

// ToCompanyResponses converts a slice of companies.
func ToCompanyResponses(companies []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i := range companies {
		res[i] = ToCompanyResponse(&companies[i])
	}
	return res
}

// AddMemberRequest adds a user to a company with a role.
type AddMemberRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.MembershipRole `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}
