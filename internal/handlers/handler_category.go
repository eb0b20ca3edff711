package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// categoryHandler handles the chart of accounts and cost centers.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers category and cost-center routes.
func registerCategoryRoutes(rg *gin.RouterGroup, cs portssvc.CategorySvcFacade) {
	h := newCategoryHandler(cs)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:id", h.getCostCenter)
		costCenters.PUT("/:id", h.updateCostCenter)
		costCenters.DELETE("/:id", h.deleteCostCenter)
	}
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a chart-of-accounts node; the dotted code is assigned automatically
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input or hierarchy too deep"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listCategories godoc
// @Summary List the category hierarchy
// @Description Returns the full tree grouped by kind, children in code order
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryTreeResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.ListCategories(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *categoryHandler) getCategory(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Refused while the category has children or is referenced
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Category in use"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *categoryHandler) createCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	costCenter, err := h.categoryService.CreateCostCenter(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create cost center")
		return
	}
	c.JSON(http.StatusCreated, costCenter)
}

func (h *categoryHandler) listCostCenters(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	costCenters, err := h.categoryService.ListCostCenters(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list cost centers")
		return
	}
	c.JSON(http.StatusOK, costCenters)
}

func (h *categoryHandler) getCostCenter(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	costCenter, err := h.categoryService.GetCostCenterByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve cost center")
		return
	}
	c.JSON(http.StatusOK, costCenter)
}

func (h *categoryHandler) updateCostCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCostCenter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	costCenter, err := h.categoryService.UpdateCostCenter(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update cost center")
		return
	}
	c.JSON(http.StatusOK, costCenter)
}

func (h *categoryHandler) deleteCostCenter(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCostCenter(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete cost center")
		return
	}
	c.Status(http.StatusNoContent)
}
