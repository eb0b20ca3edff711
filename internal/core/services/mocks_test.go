package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	"github.com/fintelis/erp_backend/internal/dto"
)

// --- Mock CompanySvcFacade ---

type MockCompanySvc struct {
	mock.Mock
}

func (m *MockCompanySvc) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*dto.CompanyResponse, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CompanyResponse), args.Error(1)
}

func (m *MockCompanySvc) GetCompanyByID(ctx context.Context, companyID, userID string) (*dto.CompanyResponse, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CompanyResponse), args.Error(1)
}

func (m *MockCompanySvc) ListMyCompanies(ctx context.Context, userID string) ([]dto.CompanyResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CompanyResponse), args.Error(1)
}

func (m *MockCompanySvc) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, actingUserID string) error {
	args := m.Called(ctx, companyID, req, actingUserID)
	return args.Error(0)
}

func (m *MockCompanySvc) SelectCompany(ctx context.Context, userID string, req dto.SelectCompanyRequest) (*dto.CompanyTokenResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CompanyTokenResponse), args.Error(1)
}

func (m *MockCompanySvc) AuthorizeUserAction(ctx context.Context, companyID, userID string, required domain.MembershipRole) error {
	args := m.Called(ctx, companyID, userID, required)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByBankAccount(ctx context.Context, companyID, bankAccountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, bankAccountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SumReversedAmount(ctx context.Context, originalTransactionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, originalTransactionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransferPair(ctx context.Context, outgoing, incoming domain.Transaction) error {
	args := m.Called(ctx, outgoing, incoming)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveReversal(ctx context.Context, reversal domain.Transaction) error {
	args := m.Called(ctx, reversal)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionMetadata(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock BankAccountRepository ---

type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccountsByCompany(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) CurrentBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, bankAccountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankAccountRepository) TotalBalanceByCompany(ctx context.Context, companyID string, exclude []domain.BankAccountType) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, exclude)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBankAccountRepository) HasTransactions(ctx context.Context, bankAccountID string) (bool, error) {
	args := m.Called(ctx, bankAccountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBankAccountRepository) FindCashRegisterByID(ctx context.Context, cashRegisterID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, cashRegisterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockBankAccountRepository) ListCashRegistersByCompany(ctx context.Context, companyID string) ([]domain.CashRegister, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashRegister), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	args := m.Called(ctx, bankAccountID)
	return args.Error(0)
}

func (m *MockBankAccountRepository) SaveCashRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockBankAccountRepository) UpdateCashRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeleteCashRegister(ctx context.Context, cashRegisterID string) error {
	args := m.Called(ctx, cashRegisterID)
	return args.Error(0)
}

var _ portsrepo.BankAccountRepositoryFacade = (*MockBankAccountRepository)(nil)

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockSettlementRepository) ListBillsByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Bill, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockSettlementRepository) ListBillsDueWithin(ctx context.Context, from, to time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockSettlementRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockSettlementRepository) ListIncomesByCompany(ctx context.Context, companyID string, status *domain.SettlementStatus) ([]domain.Income, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

func (m *MockSettlementRepository) ListIncomesDueWithin(ctx context.Context, from, to time.Time) ([]domain.Income, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

func (m *MockSettlementRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockSettlementRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteBill(ctx context.Context, billID string) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

func (m *MockSettlementRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockSettlementRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	args := m.Called(ctx, incomeID)
	return args.Error(0)
}

func (m *MockSettlementRepository) SettleBill(ctx context.Context, bill domain.Bill, txn domain.Transaction) error {
	args := m.Called(ctx, bill, txn)
	return args.Error(0)
}

func (m *MockSettlementRepository) SettleIncome(ctx context.Context, income domain.Income, txn domain.Transaction) error {
	args := m.Called(ctx, income, txn)
	return args.Error(0)
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

// --- Mock RecurringRepository ---

type MockRecurringRepository struct {
	mock.Mock
}

func (m *MockRecurringRepository) SaveRecurringBill(ctx context.Context, template domain.RecurringBill) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRecurringRepository) FindRecurringBillByID(ctx context.Context, templateID string) (*domain.RecurringBill, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurringBillsByCompany(ctx context.Context, companyID string) ([]domain.RecurringBill, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringRepository) ListDueRecurringBills(ctx context.Context, asOf time.Time) ([]domain.RecurringBill, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringRepository) GenerateBillFromTemplate(ctx context.Context, bill domain.Bill, template domain.RecurringBill, prevDueDate time.Time) error {
	args := m.Called(ctx, bill, template, prevDueDate)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRecurringBill(ctx context.Context, template domain.RecurringBill, propagateAmount bool) error {
	args := m.Called(ctx, template, propagateAmount)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRecurringBill(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

func (m *MockRecurringRepository) SaveRecurringIncome(ctx context.Context, template domain.RecurringIncome) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRecurringRepository) FindRecurringIncomeByID(ctx context.Context, templateID string) (*domain.RecurringIncome, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringIncome), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurringIncomesByCompany(ctx context.Context, companyID string) ([]domain.RecurringIncome, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringIncome), args.Error(1)
}

func (m *MockRecurringRepository) ListDueRecurringIncomes(ctx context.Context, asOf time.Time) ([]domain.RecurringIncome, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringIncome), args.Error(1)
}

func (m *MockRecurringRepository) GenerateIncomeFromTemplate(ctx context.Context, income domain.Income, template domain.RecurringIncome, prevDueDate time.Time) error {
	args := m.Called(ctx, income, template, prevDueDate)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRecurringIncome(ctx context.Context, template domain.RecurringIncome, propagateAmount bool) error {
	args := m.Called(ctx, template, propagateAmount)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeleteRecurringIncome(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

var _ portsrepo.RecurringRepositoryFacade = (*MockRecurringRepository)(nil)

// --- Mock StockRepository ---

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindProductCategoryByID(ctx context.Context, productCategoryID string) (*domain.ProductCategory, error) {
	args := m.Called(ctx, productCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCategory), args.Error(1)
}

func (m *MockStockRepository) ListProductCategoriesByCompany(ctx context.Context, companyID string) ([]domain.ProductCategory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductCategory), args.Error(1)
}

func (m *MockStockRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStockRepository) ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockStockRepository) FindInventoryByID(ctx context.Context, inventoryID string) (*domain.Inventory, error) {
	args := m.Called(ctx, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockStockRepository) ListInventoriesByCompany(ctx context.Context, companyID string) ([]domain.Inventory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inventory), args.Error(1)
}

func (m *MockStockRepository) FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error) {
	args := m.Called(ctx, stockItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) FindStockItemDetail(ctx context.Context, stockItemID string) (*portsrepo.StockItemDetail, error) {
	args := m.Called(ctx, stockItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.StockItemDetail), args.Error(1)
}

func (m *MockStockRepository) ListStockItemsByCompany(ctx context.Context, companyID string) ([]domain.StockItem, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockItem), args.Error(1)
}

func (m *MockStockRepository) ListMovementsByStockItem(ctx context.Context, stockItemID string, limit int) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, stockItemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

func (m *MockStockRepository) SaveProductCategory(ctx context.Context, category domain.ProductCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockStockRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockStockRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockStockRepository) SaveInventory(ctx context.Context, inventory domain.Inventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func (m *MockStockRepository) SaveStockItem(ctx context.Context, item domain.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockRepository) ApplyMovement(ctx context.Context, movement domain.InventoryMovement) (int64, error) {
	args := m.Called(ctx, movement)
	return args.Get(0).(int64), args.Error(1)
}

var _ portsrepo.StockRepositoryFacade = (*MockStockRepository)(nil)

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByCompany(ctx context.Context, companyID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, companyID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string, readAt time.Time) error {
	args := m.Called(ctx, companyID, notificationID, userID, readAt)
	return args.Error(0)
}

func (m *MockNotificationRepository) HasUnreadForStockItem(ctx context.Context, stockItemID string) (bool, error) {
	args := m.Called(ctx, stockItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) HasUnreadForBill(ctx context.Context, billID string) (bool, error) {
	args := m.Called(ctx, billID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) HasUnreadForIncome(ctx context.Context, incomeID string) (bool, error) {
	args := m.Called(ctx, incomeID)
	return args.Bool(0), args.Error(1)
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategoryWithCode(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByCompany(ctx context.Context, companyID string) ([]domain.Category, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) CreateCostCenterWithCode(ctx context.Context, costCenter domain.CostCenter) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCategoryRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCategoryRepository) ListCostCentersByCompany(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	args := m.Called(ctx, costCenter)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCostCenter(ctx context.Context, costCenterID string) error {
	args := m.Called(ctx, costCenterID)
	return args.Error(0)
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

// --- Mock ContactRepository ---

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListContactsByCompany(ctx context.Context, companyID string) ([]domain.Contact, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

var _ portsrepo.ContactRepositoryFacade = (*MockContactRepository)(nil)

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindMembership(ctx context.Context, companyID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock TokenSvc ---

type MockTokenSvc struct {
	mock.Mock
}

func (m *MockTokenSvc) GenerateAccessToken(userID string) (string, int64, error) {
	args := m.Called(userID)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTokenSvc) GenerateCompanyToken(userID, companyID string) (string, int64, error) {
	args := m.Called(userID, companyID)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTokenSvc) ValidateToken(tokenString string) (string, string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.String(1), args.Error(2)
}

// --- Mock NotificationSvcFacade ---

type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) ListNotifications(ctx context.Context, companyID string, params dto.ListNotificationsParams, userID string) ([]dto.NotificationResponse, error) {
	args := m.Called(ctx, companyID, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.NotificationResponse), args.Error(1)
}

func (m *MockNotificationSvc) MarkNotificationRead(ctx context.Context, companyID, notificationID, userID string) error {
	args := m.Called(ctx, companyID, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationSvc) CheckLowStock(ctx context.Context, stockItemID string, quantityOnHand int64) error {
	args := m.Called(ctx, stockItemID, quantityOnHand)
	return args.Error(0)
}

func (m *MockNotificationSvc) SweepDueDates(ctx context.Context, asOf time.Time, leadDays int) (int, error) {
	args := m.Called(ctx, asOf, leadDays)
	return args.Int(0), args.Error(1)
}
