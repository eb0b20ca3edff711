package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/core/services"
	"github.com/fintelis/erp_backend/internal/dto"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockTokenSvc    *MockTokenSvc
	service         portssvc.CompanySvcFacade

	userID string
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockTokenSvc = new(MockTokenSvc)
	suite.service = services.NewCompanyService(suite.mockCompanyRepo, suite.mockTokenSvc)
	suite.userID = uuid.NewString()
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_CreatorBecomesAdmin() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "Oficina do Zé" && c.CreatedBy == suite.userID
	})).Return(nil).Once()
	suite.mockCompanyRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == suite.userID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	resp, err := suite.service.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Oficina do Zé"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Oficina do Zé", resp.Name)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_EmptyCompanyID() {
	err := suite.service.AuthorizeUserAction(context.Background(), "", suite.userID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoActiveCompany)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_NonMemberForbidden() {
	ctx := context.Background()
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).
		Return(nil, apperrors.ErrNotFound)

	err := suite.service.AuthorizeUserAction(ctx, companyID, suite.userID, domain.RoleReadOnly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_RoleRanks() {
	ctx := context.Background()
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).Return(&domain.Membership{
		CompanyID: companyID,
		UserID:    suite.userID,
		Role:      domain.RoleMember,
	}, nil)

	suite.NoError(suite.service.AuthorizeUserAction(ctx, companyID, suite.userID, domain.RoleReadOnly))
	suite.NoError(suite.service.AuthorizeUserAction(ctx, companyID, suite.userID, domain.RoleMember))
	suite.ErrorIs(suite.service.AuthorizeUserAction(ctx, companyID, suite.userID, domain.RoleAdmin), apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAddMember_RequiresAdmin() {
	ctx := context.Background()
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).Return(&domain.Membership{
		CompanyID: companyID,
		UserID:    suite.userID,
		Role:      domain.RoleMember,
	}, nil)

	err := suite.service.AddMember(ctx, companyID, dto.AddMemberRequest{
		UserID: uuid.NewString(),
		Role:   domain.RoleReadOnly,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveMembership", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestAddMember_DuplicateRejected() {
	ctx := context.Background()
	companyID := uuid.NewString()
	newUserID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).Return(&domain.Membership{
		CompanyID: companyID,
		UserID:    suite.userID,
		Role:      domain.RoleAdmin,
	}, nil)
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, newUserID).Return(&domain.Membership{
		CompanyID: companyID,
		UserID:    newUserID,
		Role:      domain.RoleMember,
	}, nil)

	err := suite.service.AddMember(ctx, companyID, dto.AddMemberRequest{
		UserID: newUserID,
		Role:   domain.RoleMember,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CompanyServiceTestSuite) TestSelectCompany_IssuesScopedToken() {
	ctx := context.Background()
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).Return(&domain.Membership{
		CompanyID: companyID,
		UserID:    suite.userID,
		Role:      domain.RoleReadOnly,
	}, nil)
	suite.mockTokenSvc.On("GenerateCompanyToken", suite.userID, companyID).
		Return("signed.company.token", int64(3600), nil).Once()

	resp, err := suite.service.SelectCompany(ctx, suite.userID, dto.SelectCompanyRequest{CompanyID: companyID})

	suite.Require().NoError(err)
	suite.Equal("signed.company.token", resp.CompanyToken)
	suite.Equal(companyID, resp.CompanyID)
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestSelectCompany_NonMemberForbidden() {
	ctx := context.Background()
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindMembership", ctx, companyID, suite.userID).
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.SelectCompany(ctx, suite.userID, dto.SelectCompanyRequest{CompanyID: companyID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "GenerateCompanyToken", mock.Anything, mock.Anything)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
