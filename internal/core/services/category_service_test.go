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

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockCompanySvc   *MockCompanySvc
	service          portssvc.CategorySvcFacade

	companyID string
	userID    string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockCompanySvc = new(MockCompanySvc)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo, suite.mockCompanySvc)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) authorize() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, mock.Anything).Return(nil)
}

func (suite *CategoryServiceTestSuite) rootCategory(id string, kind domain.CategoryKind) *domain.Category {
	return &domain.Category{
		CategoryID: id,
		CompanyID:  suite.companyID,
		Name:       "Despesas gerais",
		Kind:       kind,
		Code:       "2",
		Ordinal:    2,
	}
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_RootGetsRepositoryCode() {
	ctx := context.Background()
	suite.authorize()

	created := suite.rootCategory(uuid.NewString(), domain.KindExpense)
	suite.mockCategoryRepo.On("CreateCategoryWithCode", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.CompanyID == suite.companyID && c.Kind == domain.KindExpense && c.ParentID == nil
	})).Return(created, nil).Once()

	resp, err := suite.service.CreateCategory(ctx, suite.companyID, dto.CreateCategoryRequest{
		Name: "Despesas gerais",
		Kind: domain.KindExpense,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("2", resp.Code)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ThirdLevelRejected() {
	ctx := context.Background()
	suite.authorize()
	parentID := uuid.NewString()
	grandparentID := uuid.NewString()
	parent := suite.rootCategory(parentID, domain.KindExpense)
	parent.ParentID = &grandparentID
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, parentID).Return(parent, nil)

	_, err := suite.service.CreateCategory(ctx, suite.companyID, dto.CreateCategoryRequest{
		Name:     "Nível demais",
		Kind:     domain.KindExpense,
		ParentID: &parentID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "CreateCategoryWithCode", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_KindMustMatchParent() {
	ctx := context.Background()
	suite.authorize()
	parentID := uuid.NewString()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, parentID).Return(suite.rootCategory(parentID, domain.KindExpense), nil)

	_, err := suite.service.CreateCategory(ctx, suite.companyID, dto.CreateCategoryRequest{
		Name:     "Receita sob despesa",
		Kind:     domain.KindRevenue,
		ParentID: &parentID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_ParentOutsideCompanyHidden() {
	ctx := context.Background()
	suite.authorize()
	parentID := uuid.NewString()
	parent := suite.rootCategory(parentID, domain.KindExpense)
	parent.CompanyID = uuid.NewString()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, parentID).Return(parent, nil)

	_, err := suite.service.CreateCategory(ctx, suite.companyID, dto.CreateCategoryRequest{
		Name:     "alheia",
		Kind:     domain.KindExpense,
		ParentID: &parentID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestListCategories_TreeSplitsKindsAndOrders() {
	ctx := context.Background()
	suite.authorize()

	vendas := domain.Category{CategoryID: uuid.NewString(), CompanyID: suite.companyID, Name: "Vendas", Kind: domain.KindRevenue, Code: "1", Ordinal: 1}
	despesas := domain.Category{CategoryID: uuid.NewString(), CompanyID: suite.companyID, Name: "Despesas", Kind: domain.KindExpense, Code: "1", Ordinal: 1}
	impostos := domain.Category{CategoryID: uuid.NewString(), CompanyID: suite.companyID, Name: "Impostos", Kind: domain.KindExpense, Code: "2", Ordinal: 2}
	aluguel := domain.Category{CategoryID: uuid.NewString(), CompanyID: suite.companyID, Name: "Aluguel", Kind: domain.KindExpense, Code: "1.2", Ordinal: 2, ParentID: &despesas.CategoryID}
	agua := domain.Category{CategoryID: uuid.NewString(), CompanyID: suite.companyID, Name: "Água", Kind: domain.KindExpense, Code: "1.1", Ordinal: 1, ParentID: &despesas.CategoryID}

	// Deliberately unordered input.
	suite.mockCategoryRepo.On("ListCategoriesByCompany", ctx, suite.companyID).
		Return([]domain.Category{impostos, aluguel, vendas, agua, despesas}, nil)

	tree, err := suite.service.ListCategories(ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(tree.Revenue, 1)
	suite.Equal("Vendas", tree.Revenue[0].Name)

	suite.Require().Len(tree.Expense, 2)
	suite.Equal("Despesas", tree.Expense[0].Name)
	suite.Equal("Impostos", tree.Expense[1].Name)

	suite.Require().Len(tree.Expense[0].Children, 2)
	suite.Equal("1.1", tree.Expense[0].Children[0].Code)
	suite.Equal("1.2", tree.Expense[0].Children[1].Code)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_WithChildrenRejected() {
	ctx := context.Background()
	suite.authorize()
	rootID := uuid.NewString()
	root := suite.rootCategory(rootID, domain.KindExpense)
	child := domain.Category{
		CategoryID: uuid.NewString(),
		CompanyID:  suite.companyID,
		Name:       "Filho",
		Kind:       domain.KindExpense,
		ParentID:   &rootID,
	}
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, rootID).Return(root, nil)
	suite.mockCategoryRepo.On("ListCategoriesByCompany", ctx, suite.companyID).Return([]domain.Category{*root, child}, nil)

	err := suite.service.DeleteCategory(ctx, suite.companyID, rootID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReferencedSurfacesConflict() {
	ctx := context.Background()
	suite.authorize()
	leafID := uuid.NewString()
	parentID := uuid.NewString()
	leaf := suite.rootCategory(leafID, domain.KindExpense)
	leaf.ParentID = &parentID
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, leafID).Return(leaf, nil)
	fkErr := apperrors.NewAppError(409, "category is referenced by existing records", apperrors.ErrConflict)
	suite.mockCategoryRepo.On("DeleteCategory", ctx, leafID).Return(fkErr).Once()

	err := suite.service.DeleteCategory(ctx, suite.companyID, leafID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CategoryServiceTestSuite) TestCreateCostCenter_ChildUnderRoot() {
	ctx := context.Background()
	suite.authorize()
	parentID := uuid.NewString()
	suite.mockCategoryRepo.On("FindCostCenterByID", ctx, parentID).Return(&domain.CostCenter{
		CostCenterID: parentID,
		CompanyID:    suite.companyID,
		Name:         "Administrativo",
		Code:         "1",
	}, nil)

	created := &domain.CostCenter{
		CostCenterID: uuid.NewString(),
		CompanyID:    suite.companyID,
		Name:         "RH",
		Code:         "1.1",
		ParentID:     &parentID,
	}
	suite.mockCategoryRepo.On("CreateCostCenterWithCode", ctx, mock.MatchedBy(func(c domain.CostCenter) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	})).Return(created, nil).Once()

	resp, err := suite.service.CreateCostCenter(ctx, suite.companyID, dto.CreateCostCenterRequest{
		Name:     "RH",
		ParentID: &parentID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("1.1", resp.Code)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
