package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// StockReaderSvc defines read operations over the inventory catalog.
type StockReaderSvc interface {
	ListProductCategories(ctx context.Context, companyID, userID string) ([]dto.ProductCategoryResponse, error)
	GetProductByID(ctx context.Context, companyID, productID, userID string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, companyID, userID string) ([]dto.ProductResponse, error)
	ListInventories(ctx context.Context, companyID, userID string) ([]dto.InventoryResponse, error)
	GetStockItemByID(ctx context.Context, companyID, stockItemID, userID string) (*dto.StockItemResponse, error)
	ListStockItems(ctx context.Context, companyID, userID string) ([]dto.StockItemResponse, error)
	ListMovements(ctx context.Context, companyID, stockItemID string, limit int, userID string) ([]dto.MovementResponse, error)
}

// StockWriterSvc defines catalog writes and movement recording.
type StockWriterSvc interface {
	CreateProductCategory(ctx context.Context, companyID string, req dto.CreateProductCategoryRequest, userID string) (*dto.ProductCategoryResponse, error)
	CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, userID string) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, companyID, productID string, req dto.UpdateProductRequest, userID string) (*dto.ProductResponse, error)
	CreateInventory(ctx context.Context, companyID string, req dto.CreateInventoryRequest, userID string) (*dto.InventoryResponse, error)
	CreateStockItem(ctx context.Context, companyID string, req dto.CreateStockItemRequest, userID string) (*dto.StockItemResponse, error)

	// RecordMovement appends a kardex entry and moves the quantity on hand
	// atomically, then evaluates the low-stock rule on the fresh quantity.
	RecordMovement(ctx context.Context, companyID, stockItemID string, req dto.CreateMovementRequest, userID string) (*dto.MovementResponse, error)
}

// StockSvcFacade combines stock service interfaces.
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
