package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// bankAccountHandler handles accounts, cash registers and balances.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(bs portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bs}
}

// registerBankAccountRoutes registers account and register routes.
func registerBankAccountRoutes(rg *gin.RouterGroup, bs portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bs)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/total-balance", h.getTotalBalance)
		accounts.GET("/:id", h.getBankAccount)
		accounts.GET("/:id/details", h.getBankAccountDetails)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.DELETE("/:id", h.deleteBankAccount)
	}

	registers := rg.Group("/cash-registers")
	{
		registers.POST("", h.createCashRegister)
		registers.GET("", h.listCashRegisters)
		registers.GET("/:id", h.getCashRegister)
		registers.DELETE("/:id", h.deleteCashRegister)
		registers.POST("/:id/withdraw", h.withdraw)
	}
}

// createBankAccount godoc
// @Summary Create a bank account
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create bank account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list bank accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// getBankAccountDetails godoc
// @Summary Get an account with its balance and recent transactions
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.BankAccountDetailsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/details [get]
func (h *bankAccountHandler) getBankAccountDetails(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	details, err := h.bankAccountService.GetBankAccountDetails(c.Request.Context(), companyID, c.Param("id"), limit, nextToken, userID)
	if err != nil {
		respondServiceError(c, err, "retrieve bank account details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// getBalance godoc
// @Summary Get the derived balance of an account
// @Tags bank-accounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/balance [get]
func (h *bankAccountHandler) getBalance(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	balance, err := h.bankAccountService.GetBalance(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "compute balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// getTotalBalance godoc
// @Summary Get the company-wide balance
// @Description Sums the balances of all accounts, minus excluded types
// @Tags bank-accounts
// @Produce json
// @Param excludeTypes query []string false "Account types to exclude" collectionFormat(multi)
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Unknown account type"
// @Security BearerAuth
// @Router /bank-accounts/total-balance [get]
func (h *bankAccountHandler) getTotalBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var params dto.TotalBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getTotalBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balance, err := h.bankAccountService.GetTotalBalance(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, err, "compute total balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update bank account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Description Refused once the account has any transactions
// @Tags bank-accounts
// @Param id path string true "Bank account ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Account has transactions"
// @Security BearerAuth
// @Router /bank-accounts/{id} [delete]
func (h *bankAccountHandler) deleteBankAccount(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete bank account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *bankAccountHandler) createCashRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCashRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	register, err := h.bankAccountService.CreateCashRegister(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create cash register")
		return
	}
	c.JSON(http.StatusCreated, register)
}

func (h *bankAccountHandler) listCashRegisters(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	registers, err := h.bankAccountService.ListCashRegisters(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list cash registers")
		return
	}
	c.JSON(http.StatusOK, registers)
}

func (h *bankAccountHandler) getCashRegister(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	register, err := h.bankAccountService.GetCashRegisterByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve cash register")
		return
	}
	c.JSON(http.StatusOK, register)
}

func (h *bankAccountHandler) deleteCashRegister(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.DeleteCashRegister(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete cash register")
		return
	}
	c.Status(http.StatusNoContent)
}

// withdraw godoc
// @Summary Withdraw cash from a register ("sangria")
// @Description Posts an expense against the register's default bank account
// @Tags cash-registers
// @Accept json
// @Produce json
// @Param id path string true "Cash register ID"
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Security BearerAuth
// @Router /cash-registers/{id}/withdraw [post]
func (h *bankAccountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.bankAccountService.Withdraw(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "withdraw from register")
		return
	}
	c.JSON(http.StatusCreated, txn)
}
