package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// stockService implements the inventory catalog and the kardex. Quantity on
// hand only ever changes through RecordMovement.
type stockService struct {
	stockRepo       portsrepo.StockRepositoryFacade
	companySvc      portssvc.CompanySvcFacade
	notificationSvc portssvc.NotificationSvcFacade
}

// NewStockService creates a new stock service.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade, companySvc portssvc.CompanySvcFacade, notificationSvc portssvc.NotificationSvcFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo, companySvc: companySvc, notificationSvc: notificationSvc}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func (s *stockService) CreateProductCategory(ctx context.Context, companyID string, req dto.CreateProductCategoryRequest, userID string) (*dto.ProductCategoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	category := domain.ProductCategory{
		ProductCategoryID: uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		AuditFields:       domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.stockRepo.SaveProductCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save product category: %w", err)
	}

	resp := dto.ToProductCategoryResponse(&category)
	return &resp, nil
}

func (s *stockService) ListProductCategories(ctx context.Context, companyID, userID string) ([]dto.ProductCategoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	categories, err := s.stockRepo.ListProductCategoriesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	return dto.ToProductCategoryResponses(categories), nil
}

func (s *stockService) CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, userID string) (*dto.ProductResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.ProductCategoryID != nil {
		category, err := s.stockRepo.FindProductCategoryByID(ctx, *req.ProductCategoryID)
		if err != nil {
			return nil, err
		}
		if category.CompanyID != companyID {
			return nil, notFoundOutsideScope(ctx, "product category", *req.ProductCategoryID, companyID)
		}
	}

	product := domain.Product{
		ProductID:         uuid.NewString(),
		CompanyID:         companyID,
		ProductCategoryID: req.ProductCategoryID,
		Name:              req.Name,
		SKU:               req.SKU,
		MinStockLevel:     req.MinStockLevel,
		DefaultCost:       req.DefaultCost,
		AuditFields:       domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.stockRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	resp := dto.ToProductResponse(&product)
	return &resp, nil
}

func (s *stockService) findScopedProduct(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	product, err := s.stockRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "product", productID, companyID)
	}
	return product, nil
}

func (s *stockService) GetProductByID(ctx context.Context, companyID, productID, userID string) (*dto.ProductResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	product, err := s.findScopedProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

func (s *stockService) ListProducts(ctx context.Context, companyID, userID string) ([]dto.ProductResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	products, err := s.stockRepo.ListProductsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return dto.ToProductResponses(products), nil
}

func (s *stockService) UpdateProduct(ctx context.Context, companyID, productID string, req dto.UpdateProductRequest, userID string) (*dto.ProductResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	product, err := s.findScopedProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.DefaultCost != nil {
		product.DefaultCost = *req.DefaultCost
	}
	product.Touch(userID, time.Now())

	if err := s.stockRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

func (s *stockService) CreateInventory(ctx context.Context, companyID string, req dto.CreateInventoryRequest, userID string) (*dto.InventoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	inventory := domain.Inventory{
		InventoryID: uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.stockRepo.SaveInventory(ctx, inventory); err != nil {
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}

	resp := dto.ToInventoryResponse(&inventory)
	return &resp, nil
}

func (s *stockService) ListInventories(ctx context.Context, companyID, userID string) ([]dto.InventoryResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	inventories, err := s.stockRepo.ListInventoriesByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}
	return dto.ToInventoryResponses(inventories), nil
}

func (s *stockService) CreateStockItem(ctx context.Context, companyID string, req dto.CreateStockItemRequest, userID string) (*dto.StockItemResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if _, err := s.findScopedProduct(ctx, companyID, req.ProductID); err != nil {
		return nil, err
	}
	inventory, err := s.stockRepo.FindInventoryByID(ctx, req.InventoryID)
	if err != nil {
		return nil, err
	}
	if inventory.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "inventory", req.InventoryID, companyID)
	}

	item := domain.StockItem{
		StockItemID:    uuid.NewString(),
		CompanyID:      companyID,
		ProductID:      req.ProductID,
		InventoryID:    req.InventoryID,
		QuantityOnHand: 0,
		AuditFields:    domain.NewAuditFields(userID, time.Now()),
	}
	// (product, inventory) is unique; the repo maps the violation to ErrDuplicate.
	if err := s.stockRepo.SaveStockItem(ctx, item); err != nil {
		logger.Warn("Failed to save stock item", slog.String("error", err.Error()))
		return nil, err
	}

	resp := dto.ToStockItemResponse(&item)
	return &resp, nil
}

func (s *stockService) findScopedItem(ctx context.Context, companyID, stockItemID string) (*domain.StockItem, error) {
	item, err := s.stockRepo.FindStockItemByID(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "stock item", stockItemID, companyID)
	}
	return item, nil
}

func (s *stockService) GetStockItemByID(ctx context.Context, companyID, stockItemID, userID string) (*dto.StockItemResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	item, err := s.findScopedItem(ctx, companyID, stockItemID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToStockItemResponse(item)
	return &resp, nil
}

func (s *stockService) ListStockItems(ctx context.Context, companyID, userID string) ([]dto.StockItemResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	items, err := s.stockRepo.ListStockItemsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock items: %w", err)
	}
	return dto.ToStockItemResponses(items), nil
}

func (s *stockService) ListMovements(ctx context.Context, companyID, stockItemID string, limit int, userID string) ([]dto.MovementResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findScopedItem(ctx, companyID, stockItemID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	movements, err := s.stockRepo.ListMovementsByStockItem(ctx, stockItemID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return dto.ToMovementResponses(movements), nil
}

func (s *stockService) RecordMovement(ctx context.Context, companyID, stockItemID string, req dto.CreateMovementRequest, userID string) (*dto.MovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	item, err := s.findScopedItem(ctx, companyID, stockItemID)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, apperrors.NewAppError(400, "quantity must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidMovementType(req.Type) {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown movement type %q", req.Type), apperrors.ErrValidation)
	}

	delta := req.Quantity
	if !req.Type.IsInbound() {
		delta = -delta
	}

	movement := domain.InventoryMovement{
		MovementID:          uuid.NewString(),
		CompanyID:           companyID,
		StockItemID:         item.StockItemID,
		QuantityChanged:     delta,
		Type:                req.Type,
		LinkedTransactionID: req.LinkedTransactionID,
		UnitCost:            req.UnitCost,
		Description:         req.Description,
		MovementDate:        time.Now(),
		AuditFields:         domain.NewAuditFields(userID, time.Now()),
	}

	// Insert plus relative quantity update happen in one unit of work; the
	// returned value is the post-movement level.
	quantityAfter, err := s.stockRepo.ApplyMovement(ctx, movement)
	if err != nil {
		logger.Error("Failed to apply movement", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
		return nil, err
	}

	// Alert evaluation is synchronous with the movement. A failure here must
	// not undo the recorded movement.
	if err := s.notificationSvc.CheckLowStock(ctx, item.StockItemID, quantityAfter); err != nil {
		logger.Error("Low-stock check failed", slog.String("error", err.Error()), slog.String("stock_item_id", stockItemID))
	}

	logger.Info("Movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("type", string(movement.Type)),
		slog.Int64("quantity_after", quantityAfter))

	resp := dto.ToMovementResponse(&movement, quantityAfter)
	return &resp, nil
}
