package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// settlementHandler handles bills, incomes and their settlement.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers bill and income routes.
func registerSettlementRoutes(rg *gin.RouterGroup, ss portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(ss)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:id", h.getBill)
		bills.PUT("/:id", h.updateBill)
		bills.DELETE("/:id", h.deleteBill)
		bills.POST("/:id/settle", h.settleBill)
	}

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.DELETE("/:id", h.deleteIncome)
		incomes.POST("/:id/settle", h.settleIncome)
	}
}

// createBill godoc
// @Summary Create a payable bill
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /bills [post]
func (h *settlementHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.settlementService.CreateBill(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create bill")
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// listBills godoc
// @Summary List bills
// @Tags bills
// @Produce json
// @Param status query string false "Filter by status (pending or settled)"
// @Success 200 {array} dto.BillResponse
// @Security BearerAuth
// @Router /bills [get]
func (h *settlementHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	bills, err := h.settlementService.ListBills(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, err, "list bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *settlementHandler) getBill(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	bill, err := h.settlementService.GetBillByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *settlementHandler) updateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.settlementService.UpdateBill(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update bill")
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *settlementHandler) deleteBill(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.settlementService.DeleteBill(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// settleBill godoc
// @Summary Settle a bill
// @Description Posts the payment transaction and marks the bill settled, atomically and exactly once
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param settlement body dto.SettleRequest true "Settlement details"
// @Success 200 {object} dto.BillResponse
// @Failure 409 {object} map[string]string "Bill already settled"
// @Security BearerAuth
// @Router /bills/{id}/settle [post]
func (h *settlementHandler) settleBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settleBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.settlementService.SettleBill(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "settle bill")
		return
	}

	logger.Info("Bill settled", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusOK, bill)
}

func (h *settlementHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.settlementService.CreateIncome(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create income")
		return
	}
	c.JSON(http.StatusCreated, income)
}

func (h *settlementHandler) listIncomes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listIncomes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	incomes, err := h.settlementService.ListIncomes(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, err, "list incomes")
		return
	}
	c.JSON(http.StatusOK, incomes)
}

func (h *settlementHandler) getIncome(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	income, err := h.settlementService.GetIncomeByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve income")
		return
	}
	c.JSON(http.StatusOK, income)
}

func (h *settlementHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.settlementService.UpdateIncome(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update income")
		return
	}
	c.JSON(http.StatusOK, income)
}

func (h *settlementHandler) deleteIncome(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.settlementService.DeleteIncome(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

// settleIncome godoc
// @Summary Settle an income
// @Description Posts the receipt transaction and marks the income settled, atomically and exactly once
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param settlement body dto.SettleRequest true "Settlement details"
// @Success 200 {object} dto.IncomeResponse
// @Failure 409 {object} map[string]string "Income already settled"
// @Security BearerAuth
// @Router /incomes/{id}/settle [post]
func (h *settlementHandler) settleIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for settleIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.settlementService.SettleIncome(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "settle income")
		return
	}

	logger.Info("Income settled", slog.String("income_id", income.IncomeID))
	c.JSON(http.StatusOK, income)
}
