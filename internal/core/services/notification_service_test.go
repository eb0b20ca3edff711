package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/core/services"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotificationRepo *MockNotificationRepository
	mockStockRepo        *MockStockRepository
	mockSettleRepo       *MockSettlementRepository
	mockCompanySvc       *MockCompanySvc
	service              portssvc.NotificationSvcFacade

	companyID string
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotificationRepo = new(MockNotificationRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockSettleRepo = new(MockSettlementRepository)
	suite.mockCompanySvc = new(MockCompanySvc)
	suite.service = services.NewNotificationService(suite.mockNotificationRepo, suite.mockStockRepo, suite.mockSettleRepo, suite.mockCompanySvc)
	suite.companyID = uuid.NewString()
}

func (suite *NotificationServiceTestSuite) detail(itemID string, minLevel int64) *portsrepo.StockItemDetail {
	return &portsrepo.StockItemDetail{
		Item: domain.StockItem{
			StockItemID: itemID,
			CompanyID:   suite.companyID,
		},
		ProductName:   "Parafuso M6",
		InventoryName: "Depósito central",
		MinStockLevel: minLevel,
	}
}

func (suite *NotificationServiceTestSuite) TestCheckLowStock_CreatesAlertAtThreshold() {
	ctx := context.Background()
	itemID := uuid.NewString()
	suite.mockStockRepo.On("FindStockItemDetail", ctx, itemID).Return(suite.detail(itemID, 5), nil)
	suite.mockNotificationRepo.On("HasUnreadForStockItem", ctx, itemID).Return(false, nil)

	suite.mockNotificationRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.CompanyID == suite.companyID &&
			n.Title == "Estoque baixo" &&
			n.StockItemID != nil && *n.StockItemID == itemID
	})).Return(nil).Once()

	err := suite.service.CheckLowStock(ctx, itemID, 5)

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestCheckLowStock_NoAlertAboveThreshold() {
	ctx := context.Background()
	itemID := uuid.NewString()
	suite.mockStockRepo.On("FindStockItemDetail", ctx, itemID).Return(suite.detail(itemID, 5), nil)

	err := suite.service.CheckLowStock(ctx, itemID, 6)

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "SaveNotification", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestCheckLowStock_UnreadAlertSuppressesDuplicate() {
	ctx := context.Background()
	itemID := uuid.NewString()
	suite.mockStockRepo.On("FindStockItemDetail", ctx, itemID).Return(suite.detail(itemID, 5), nil)
	suite.mockNotificationRepo.On("HasUnreadForStockItem", ctx, itemID).Return(true, nil)

	err := suite.service.CheckLowStock(ctx, itemID, 2)

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "SaveNotification", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestSweepDueDates_AlertsOnUpcomingAndOverdue() {
	ctx := context.Background()
	asOf := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	overdueBill := domain.Bill{
		BillID:      uuid.NewString(),
		CompanyID:   suite.companyID,
		Description: "Fornecedor atrasado",
		Amount:      decimal.NewFromInt(400),
		DueDate:     asOf.AddDate(0, 0, -10),
		Status:      domain.StatusPending,
	}
	upcomingBill := domain.Bill{
		BillID:      uuid.NewString(),
		CompanyID:   suite.companyID,
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(3500),
		DueDate:     asOf.AddDate(0, 0, 2),
		Status:      domain.StatusPending,
	}

	suite.mockSettleRepo.On("ListBillsDueWithin", ctx, time.Time{}, asOf.AddDate(0, 0, 3)).
		Return([]domain.Bill{overdueBill, upcomingBill}, nil)
	suite.mockSettleRepo.On("ListIncomesDueWithin", ctx, time.Time{}, asOf.AddDate(0, 0, 3)).
		Return([]domain.Income{}, nil)

	suite.mockNotificationRepo.On("HasUnreadForBill", ctx, overdueBill.BillID).Return(false, nil)
	suite.mockNotificationRepo.On("HasUnreadForBill", ctx, upcomingBill.BillID).Return(false, nil)
	suite.mockNotificationRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Title == "Conta a pagar vencendo" && n.BillID != nil
	})).Return(nil).Twice()

	created, err := suite.service.SweepDueDates(ctx, asOf, 3)

	suite.Require().NoError(err)
	suite.Equal(2, created)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestSweepDueDates_UnreadAlertSkipsDocument() {
	ctx := context.Background()
	asOf := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		CompanyID:   suite.companyID,
		Description: "Água",
		Amount:      decimal.NewFromInt(90),
		DueDate:     asOf.AddDate(0, 0, 1),
		Status:      domain.StatusPending,
	}
	income := domain.Income{
		IncomeID:    uuid.NewString(),
		CompanyID:   suite.companyID,
		Description: "Mensalidade",
		Amount:      decimal.NewFromInt(250),
		DueDate:     asOf.AddDate(0, 0, 1),
		Status:      domain.StatusPending,
	}

	suite.mockSettleRepo.On("ListBillsDueWithin", ctx, mock.Anything, mock.Anything).Return([]domain.Bill{bill}, nil)
	suite.mockSettleRepo.On("ListIncomesDueWithin", ctx, mock.Anything, mock.Anything).Return([]domain.Income{income}, nil)
	suite.mockNotificationRepo.On("HasUnreadForBill", ctx, bill.BillID).Return(true, nil)
	suite.mockNotificationRepo.On("HasUnreadForIncome", ctx, income.IncomeID).Return(false, nil)
	suite.mockNotificationRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Title == "Conta a receber vencendo" && n.IncomeID != nil && *n.IncomeID == income.IncomeID
	})).Return(nil).Once()

	created, err := suite.service.SweepDueDates(ctx, asOf, 3)

	suite.Require().NoError(err)
	suite.Equal(1, created)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
