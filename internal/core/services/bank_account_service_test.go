package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/core/services"
	"github.com/fintelis/erp_backend/internal/dto"
)

type BankAccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockBankAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockCompanySvc  *MockCompanySvc
	service         portssvc.BankAccountSvcFacade

	companyID string
	userID    string
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockBankAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCompanySvc = new(MockCompanySvc)
	suite.service = services.NewBankAccountService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockCompanySvc)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *BankAccountServiceTestSuite) authorize() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, mock.Anything).Return(nil)
}

func (suite *BankAccountServiceTestSuite) TestDeleteBankAccount_WithTransactionsRejected() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{
		BankAccountID: accountID,
		CompanyID:     suite.companyID,
	}, nil)
	suite.mockAccountRepo.On("HasTransactions", ctx, accountID).Return(true, nil)

	err := suite.service.DeleteBankAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteBankAccount", mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestDeleteBankAccount_EmptyAccountDeleted() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{
		BankAccountID: accountID,
		CompanyID:     suite.companyID,
	}, nil)
	suite.mockAccountRepo.On("HasTransactions", ctx, accountID).Return(false, nil)
	suite.mockAccountRepo.On("DeleteBankAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteBankAccount(ctx, suite.companyID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestGetTotalBalance_UnknownExcludeTypeRejected() {
	ctx := context.Background()
	suite.authorize()

	_, err := suite.service.GetTotalBalance(ctx, suite.companyID, dto.TotalBalanceParams{
		ExcludeTypes: []domain.BankAccountType{"offshore"},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "TotalBalanceByCompany", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestGetTotalBalance_PassesExcludes() {
	ctx := context.Background()
	suite.authorize()
	excludes := []domain.BankAccountType{domain.AccountCreditVault}
	suite.mockAccountRepo.On("TotalBalanceByCompany", ctx, suite.companyID, excludes).
		Return(decimal.RequireFromString("1234.56"), nil).Once()

	resp, err := suite.service.GetTotalBalance(ctx, suite.companyID, dto.TotalBalanceParams{ExcludeTypes: excludes}, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("1234.56")))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_DefaultsDescriptionAndTargetsBackingAccount() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	backingAccountID := uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(&domain.CashRegister{
		CashRegisterID:       registerID,
		CompanyID:            suite.companyID,
		Name:                 "Caixa loja 1",
		DefaultBankAccountID: backingAccountID,
	}, nil)

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Type == domain.TypeExpense &&
			t.BankAccountID == backingAccountID &&
			t.CashRegisterID != nil && *t.CashRegisterID == registerID &&
			t.Description == "Sangria: Caixa loja 1" &&
			t.Amount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	resp, err := suite.service.Withdraw(ctx, suite.companyID, registerID, dto.WithdrawRequest{
		Amount: decimal.NewFromInt(200),
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Sangria: Caixa loja 1", resp.Description)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestWithdraw_NonPositiveAmountRejected() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(&domain.CashRegister{
		CashRegisterID:       registerID,
		CompanyID:            suite.companyID,
		Name:                 "Caixa loja 1",
		DefaultBankAccountID: uuid.NewString(),
	}, nil)

	_, err := suite.service.Withdraw(ctx, suite.companyID, registerID, dto.WithdrawRequest{
		Amount: decimal.Zero,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *BankAccountServiceTestSuite) TestCreateCashRegister_BackingAccountMustBeScoped() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{
		BankAccountID: accountID,
		CompanyID:     uuid.NewString(),
	}, nil)

	_, err := suite.service.CreateCashRegister(ctx, suite.companyID, dto.CreateCashRegisterRequest{
		Name:                 "Caixa",
		DefaultBankAccountID: accountID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveCashRegister", mock.Anything, mock.Anything)
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
