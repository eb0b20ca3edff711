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

// stockHandler handles the inventory catalog and the kardex.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers inventory catalog and movement routes.
func registerStockRoutes(rg *gin.RouterGroup, ss portssvc.StockSvcFacade) {
	h := newStockHandler(ss)

	productCategories := rg.Group("/product-categories")
	{
		productCategories.POST("", h.createProductCategory)
		productCategories.GET("", h.listProductCategories)
	}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
	}

	inventories := rg.Group("/inventories")
	{
		inventories.POST("", h.createInventory)
		inventories.GET("", h.listInventories)
	}

	stockItems := rg.Group("/stock-items")
	{
		stockItems.POST("", h.createStockItem)
		stockItems.GET("", h.listStockItems)
		stockItems.GET("/:id", h.getStockItem)
		stockItems.GET("/:id/movements", h.listMovements)
		stockItems.POST("/:id/movements", h.recordMovement)
	}
}

func (h *stockHandler) createProductCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateProductCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProductCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.stockService.CreateProductCategory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create product category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *stockHandler) listProductCategories(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	categories, err := h.stockService.ListProductCategories(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list product categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// createProduct godoc
// @Summary Create a product
// @Tags stock
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /products [post]
func (h *stockHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.stockService.CreateProduct(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *stockHandler) listProducts(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	products, err := h.stockService.ListProducts(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *stockHandler) getProduct(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	product, err := h.stockService.GetProductByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *stockHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.stockService.UpdateProduct(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *stockHandler) createInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInventory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inventory, err := h.stockService.CreateInventory(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create inventory")
		return
	}
	c.JSON(http.StatusCreated, inventory)
}

func (h *stockHandler) listInventories(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	inventories, err := h.stockService.ListInventories(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list inventories")
		return
	}
	c.JSON(http.StatusOK, inventories)
}

// createStockItem godoc
// @Summary Create a stock item
// @Description Links a product to an inventory; quantity starts at zero
// @Tags stock
// @Accept json
// @Produce json
// @Param item body dto.CreateStockItemRequest true "Stock item details"
// @Success 201 {object} dto.StockItemResponse
// @Failure 409 {object} map[string]string "Item already exists for product and inventory"
// @Security BearerAuth
// @Router /stock-items [post]
func (h *stockHandler) createStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createStockItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.stockService.CreateStockItem(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create stock item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *stockHandler) listStockItems(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	items, err := h.stockService.ListStockItems(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list stock items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *stockHandler) getStockItem(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	item, err := h.stockService.GetStockItemByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve stock item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// listMovements godoc
// @Summary List movements of a stock item (kardex)
// @Tags stock
// @Produce json
// @Param id path string true "Stock item ID"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.MovementResponse
// @Security BearerAuth
// @Router /stock-items/{id}/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	movements, err := h.stockService.ListMovements(c.Request.Context(), companyID, c.Param("id"), limit, userID)
	if err != nil {
		respondServiceError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, movements)
}

// recordMovement godoc
// @Summary Record an inventory movement
// @Description Appends a kardex entry and updates the quantity on hand atomically
// @Tags stock
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Param movement body dto.CreateMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid quantity or type"
// @Security BearerAuth
// @Router /stock-items/{id}/movements [post]
func (h *stockHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	movement, err := h.stockService.RecordMovement(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "record movement")
		return
	}

	logger.Info("Movement recorded", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, movement)
}
