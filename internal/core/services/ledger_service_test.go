package services_test

import (
	"context"
	"math/rand"
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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockBankAccountRepository
	mockCategoryRepo *MockCategoryRepository
	mockContactRepo  *MockContactRepository
	mockCompanySvc   *MockCompanySvc
	service          portssvc.LedgerSvcFacade

	companyID string
	userID    string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockBankAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockContactRepo = new(MockContactRepository)
	suite.mockCompanySvc = new(MockCompanySvc)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo, suite.mockContactRepo, suite.mockCompanySvc)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) authorize() {
	suite.mockCompanySvc.On("AuthorizeUserAction", mock.Anything, suite.companyID, suite.userID, mock.Anything).Return(nil)
}

func (suite *LedgerServiceTestSuite) account(id string) *domain.BankAccount {
	return &domain.BankAccount{
		BankAccountID: id,
		CompanyID:     suite.companyID,
		Name:          "Conta Corrente",
		Type:          domain.AccountChecking,
	}
}

func (suite *LedgerServiceTestSuite) category(id string, kind domain.CategoryKind) *domain.Category {
	return &domain.Category{
		CategoryID: id,
		CompanyID:  suite.companyID,
		Name:       "Vendas",
		Kind:       kind,
		Code:       "1",
	}
}

func (suite *LedgerServiceTestSuite) register(id, defaultAccountID string) *domain.CashRegister {
	return &domain.CashRegister{
		CashRegisterID:       id,
		CompanyID:            suite.companyID,
		Name:                 "Caixa da loja",
		DefaultBankAccountID: defaultAccountID,
	}
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_Success() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(suite.account(accountID), nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(suite.category(categoryID, domain.KindRevenue), nil)

	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeRevenue,
		Amount:        decimal.NewFromInt(1000),
		Description:   "Venda de serviço",
		CategoryID:    &categoryID,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CompanyID == suite.companyID &&
			t.BankAccountID == accountID &&
			t.Type == domain.TypeRevenue &&
			t.Amount.Equal(decimal.NewFromInt(1000)) &&
			t.CreatedBy == suite.userID
	})).Return(nil).Once()

	resp, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(domain.TypeRevenue, resp.Type)
	suite.True(resp.Amount.Equal(decimal.NewFromInt(1000)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_MissingCategoryRejected() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(suite.account(accountID), nil)

	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeExpense,
		Amount:        decimal.NewFromInt(40),
		Description:   "sem categoria",
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_CategoryOutsideCompanyRejected() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(suite.account(accountID), nil)
	foreign := suite.category(categoryID, domain.KindRevenue)
	foreign.CompanyID = uuid.NewString()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(foreign, nil)

	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeRevenue,
		Amount:        decimal.NewFromInt(90),
		Description:   "categoria alheia",
		CategoryID:    &categoryID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScope)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_CategoryPolarityMismatchRejected() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(suite.account(accountID), nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(suite.category(categoryID, domain.KindRevenue), nil)

	// A revenue category cannot classify an expense entry.
	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeExpense,
		Amount:        decimal.NewFromInt(90),
		Description:   "polaridade trocada",
		CategoryID:    &categoryID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_ContactOutsideCompanyRejected() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	categoryID := uuid.NewString()
	contactID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(suite.account(accountID), nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(suite.category(categoryID, domain.KindRevenue), nil)
	suite.mockContactRepo.On("FindContactByID", ctx, contactID).Return(&domain.Contact{
		ContactID: contactID,
		CompanyID: uuid.NewString(),
		Name:      "Cliente de outra empresa",
		Kind:      domain.ContactCustomer,
	}, nil)

	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeRevenue,
		Amount:        decimal.NewFromInt(150),
		Description:   "contato alheio",
		CategoryID:    &categoryID,
		ContactID:     &contactID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrScope)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RegisterFillsDefaultAccount() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	defaultAccountID := uuid.NewString()
	categoryID := uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(suite.register(registerID, defaultAccountID), nil)
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, defaultAccountID).Return(suite.account(defaultAccountID), nil)
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(suite.category(categoryID, domain.KindRevenue), nil)

	// No bank account in the payload; the register's default must be used.
	req := dto.CreateTransactionRequest{
		Type:           domain.TypeRevenue,
		Amount:         decimal.NewFromInt(300),
		Description:    "Venda no balcão",
		CategoryID:     &categoryID,
		CashRegisterID: &registerID,
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.BankAccountID == defaultAccountID &&
			t.CashRegisterID != nil && *t.CashRegisterID == registerID
	})).Return(nil).Once()

	resp, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(defaultAccountID, resp.BankAccountID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RegisterOutsideCompanyHidden() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	foreign := suite.register(registerID, uuid.NewString())
	foreign.CompanyID = uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(foreign, nil)

	req := dto.CreateTransactionRequest{
		Type:           domain.TypeRevenue,
		Amount:         decimal.NewFromInt(50),
		Description:    "caixa alheio",
		CashRegisterID: &registerID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertCalled(suite.T(), "FindCashRegisterByID", ctx, registerID)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RegisterWithContactRejected() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	contactID := uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(suite.register(registerID, uuid.NewString()), nil)

	req := dto.CreateTransactionRequest{
		Type:           domain.TypeRevenue,
		Amount:         decimal.NewFromInt(75),
		Description:    "venda de balcão com contato",
		CashRegisterID: &registerID,
		ContactID:      &contactID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RegisterAccountMismatchRejected() {
	ctx := context.Background()
	suite.authorize()
	registerID := uuid.NewString()
	suite.mockAccountRepo.On("FindCashRegisterByID", ctx, registerID).Return(suite.register(registerID, uuid.NewString()), nil)

	otherAccountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		BankAccountID:  otherAccountID,
		Type:           domain.TypeRevenue,
		Amount:         decimal.NewFromInt(75),
		Description:    "conta divergente do caixa",
		CashRegisterID: &registerID,
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_NoAccountNoRegisterRejected() {
	ctx := context.Background()
	suite.authorize()

	req := dto.CreateTransactionRequest{
		Type:        domain.TypeRevenue,
		Amount:      decimal.NewFromInt(75),
		Description: "sem destino",
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	suite.authorize()

	req := dto.CreateTransactionRequest{
		BankAccountID: uuid.NewString(),
		Type:          domain.TypeExpense,
		Amount:        decimal.Zero,
		Description:   "inválido",
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_RejectsTransferTypes() {
	ctx := context.Background()
	suite.authorize()

	req := dto.CreateTransactionRequest{
		BankAccountID: uuid.NewString(),
		Type:          domain.TypeInternalTransfer,
		Amount:        decimal.NewFromInt(10),
		Description:   "não permitido",
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordTransaction_AccountOutsideCompanyHidden() {
	ctx := context.Background()
	suite.authorize()
	accountID := uuid.NewString()
	foreign := suite.account(accountID)
	foreign.CompanyID = uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, accountID).Return(foreign, nil)

	req := dto.CreateTransactionRequest{
		BankAccountID: accountID,
		Type:          domain.TypeRevenue,
		Amount:        decimal.NewFromInt(5),
		Description:   "cross tenant",
	}

	_, err := suite.service.RecordTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestTransfer_PairsLegsWithMutualLinks() {
	ctx := context.Background()
	suite.authorize()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, fromID).Return(suite.account(fromID), nil)
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, toID).Return(suite.account(toID), nil)

	req := dto.TransferRequest{
		FromBankAccountID: fromID,
		ToBankAccountID:   toID,
		Amount:            decimal.NewFromInt(500),
		Description:       "Depósito do caixa",
	}

	suite.mockTxnRepo.On("SaveTransferPair", ctx,
		mock.MatchedBy(func(out domain.Transaction) bool {
			return out.Type == domain.TypeExternalTransfer &&
				out.BankAccountID == fromID &&
				out.Amount.Equal(decimal.NewFromInt(500)) &&
				out.LinkedTransactionID != nil
		}),
		mock.MatchedBy(func(in domain.Transaction) bool {
			return in.Type == domain.TypeInternalTransfer &&
				in.BankAccountID == toID &&
				in.Amount.Equal(decimal.NewFromInt(500)) &&
				in.LinkedTransactionID != nil
		}),
	).Return(nil).Once()

	resp, err := suite.service.Transfer(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(resp.Outgoing.TransactionID, *resp.Incoming.LinkedTransactionID)
	suite.Equal(resp.Incoming.TransactionID, *resp.Outgoing.LinkedTransactionID)
	suite.Contains(resp.Outgoing.Description, "Saída:")
	suite.Contains(resp.Incoming.Description, "Entrada:")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_DeductionShrinksIncomingLegOnly() {
	ctx := context.Background()
	suite.authorize()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, fromID).Return(suite.account(fromID), nil)
	suite.mockAccountRepo.On("FindBankAccountByID", ctx, toID).Return(suite.account(toID), nil)

	pct := decimal.NewFromFloat(2.5)
	req := dto.TransferRequest{
		FromBankAccountID:   fromID,
		ToBankAccountID:     toID,
		Amount:              decimal.NewFromInt(1000),
		Description:         "Repasse da maquininha",
		DeductionPercentage: &pct,
	}

	suite.mockTxnRepo.On("SaveTransferPair", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := suite.service.Transfer(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.Outgoing.Amount.Equal(decimal.NewFromInt(1000)), "outgoing leg carries the gross amount")
	suite.True(resp.Incoming.Amount.Equal(decimal.NewFromInt(975)), "incoming leg is net of the deduction, got %s", resp.Incoming.Amount)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccountRejected() {
	ctx := context.Background()
	suite.authorize()
	id := uuid.NewString()

	req := dto.TransferRequest{
		FromBankAccountID: id,
		ToBankAccountID:   id,
		Amount:            decimal.NewFromInt(10),
		Description:       "loop",
	}

	_, err := suite.service.Transfer(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRefund_Success() {
	ctx := context.Background()
	suite.authorize()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID: originalID,
		CompanyID:     suite.companyID,
		BankAccountID: uuid.NewString(),
		Description:   "Venda 42",
		Amount:        decimal.NewFromInt(1000),
		Type:          domain.TypeRevenue,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil)
	suite.mockTxnRepo.On("SumReversedAmount", ctx, originalID).Return(decimal.NewFromInt(250), nil)

	req := dto.RefundRequest{Amount: decimal.NewFromInt(750)}

	suite.mockTxnRepo.On("SaveReversal", ctx, mock.MatchedBy(func(r domain.Transaction) bool {
		return r.Type == domain.TypeReversal &&
			r.BankAccountID == original.BankAccountID &&
			r.Amount.Equal(decimal.NewFromInt(750)) &&
			r.RelatedTransactionID != nil && *r.RelatedTransactionID == originalID
	})).Return(nil).Once()

	resp, err := suite.service.Refund(ctx, suite.companyID, originalID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Contains(resp.Description, "Estorno:")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRefund_ExceedingRemainingBalanceRejected() {
	ctx := context.Background()
	suite.authorize()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID: originalID,
		CompanyID:     suite.companyID,
		Amount:        decimal.NewFromInt(1000),
		Type:          domain.TypeRevenue,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil)
	suite.mockTxnRepo.On("SumReversedAmount", ctx, originalID).Return(decimal.NewFromInt(250), nil)

	// Remaining refundable is 750; asking for 751 must fail.
	req := dto.RefundRequest{Amount: decimal.NewFromInt(751)}

	_, err := suite.service.Refund(ctx, suite.companyID, originalID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRefund_NonRevenueRejected() {
	ctx := context.Background()
	suite.authorize()
	originalID := uuid.NewString()
	original := &domain.Transaction{
		TransactionID: originalID,
		CompanyID:     suite.companyID,
		Amount:        decimal.NewFromInt(100),
		Type:          domain.TypeExpense,
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, originalID).Return(original, nil)

	_, err := suite.service.Refund(ctx, suite.companyID, originalID, dto.RefundRequest{Amount: decimal.NewFromInt(10)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

// TestBalanceDelta_RandomizedLedger drives a random mix of entries through
// BalanceDelta and checks the running sum against an independently tracked
// expectation.
func TestBalanceDelta_RandomizedLedger(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := []domain.TransactionType{
		domain.TypeRevenue,
		domain.TypeExpense,
		domain.TypeInternalTransfer,
		domain.TypeExternalTransfer,
		domain.TypeReversal,
	}

	balance := decimal.Zero
	expected := decimal.Zero
	for i := 0; i < 500; i++ {
		amount := decimal.NewFromInt(rng.Int63n(100000)).Div(decimal.NewFromInt(100))
		txnType := types[rng.Intn(len(types))]

		txn := domain.Transaction{Amount: amount, Type: txnType}
		balance = balance.Add(txn.BalanceDelta())

		switch txnType {
		case domain.TypeRevenue, domain.TypeInternalTransfer:
			expected = expected.Add(amount)
		default:
			expected = expected.Sub(amount)
		}
	}

	if !balance.Equal(expected) {
		t.Fatalf("balance %s != expected %s", balance, expected)
	}
}
