package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// recurringHandler handles recurring bill and income templates.
type recurringHandler struct {
	recurrenceService portssvc.RecurrenceSvcFacade
}

func newRecurringHandler(rs portssvc.RecurrenceSvcFacade) *recurringHandler {
	return &recurringHandler{recurrenceService: rs}
}

// registerRecurringRoutes registers recurring template routes.
func registerRecurringRoutes(rg *gin.RouterGroup, rs portssvc.RecurrenceSvcFacade) {
	h := newRecurringHandler(rs)

	bills := rg.Group("/recurring-bills")
	{
		bills.POST("", h.createRecurringBill)
		bills.GET("", h.listRecurringBills)
		bills.GET("/:id", h.getRecurringBill)
		bills.PUT("/:id", h.updateRecurringBill)
		bills.DELETE("/:id", h.deleteRecurringBill)
	}

	incomes := rg.Group("/recurring-incomes")
	{
		incomes.POST("", h.createRecurringIncome)
		incomes.GET("", h.listRecurringIncomes)
		incomes.GET("/:id", h.getRecurringIncome)
		incomes.PUT("/:id", h.updateRecurringIncome)
		incomes.DELETE("/:id", h.deleteRecurringIncome)
	}
}

// createRecurringBill godoc
// @Summary Create a recurring bill template
// @Description The first occurrence is due on the start date
// @Tags recurring
// @Accept json
// @Produce json
// @Param template body dto.CreateRecurringBillRequest true "Template details"
// @Success 201 {object} dto.RecurringBillResponse
// @Failure 400 {object} map[string]string "Invalid input or end before start"
// @Security BearerAuth
// @Router /recurring-bills [post]
func (h *recurringHandler) createRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateRecurringBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRecurringBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.recurrenceService.CreateRecurringBill(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create recurring bill")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *recurringHandler) listRecurringBills(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	templates, err := h.recurrenceService.ListRecurringBills(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list recurring bills")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *recurringHandler) getRecurringBill(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	template, err := h.recurrenceService.GetRecurringBillByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve recurring bill")
		return
	}
	c.JSON(http.StatusOK, template)
}

// updateRecurringBill godoc
// @Summary Update a recurring bill template
// @Description An amount edit also reaches pending generated bills; settled ones never change
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param template body dto.UpdateRecurringTemplateRequest true "Template edits"
// @Success 200 {object} dto.RecurringBillResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Security BearerAuth
// @Router /recurring-bills/{id} [put]
func (h *recurringHandler) updateRecurringBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateRecurringTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateRecurringBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.recurrenceService.UpdateRecurringBill(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update recurring bill")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *recurringHandler) deleteRecurringBill(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.recurrenceService.DeleteRecurringBill(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete recurring bill")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *recurringHandler) createRecurringIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateRecurringIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRecurringIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.recurrenceService.CreateRecurringIncome(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create recurring income")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *recurringHandler) listRecurringIncomes(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	templates, err := h.recurrenceService.ListRecurringIncomes(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list recurring incomes")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *recurringHandler) getRecurringIncome(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	template, err := h.recurrenceService.GetRecurringIncomeByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve recurring income")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *recurringHandler) updateRecurringIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateRecurringTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateRecurringIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	template, err := h.recurrenceService.UpdateRecurringIncome(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update recurring income")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *recurringHandler) deleteRecurringIncome(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.recurrenceService.DeleteRecurringIncome(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete recurring income")
		return
	}
	c.Status(http.StatusNoContent)
}
