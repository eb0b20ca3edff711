package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// StockItemDetail joins a stock item with the names the alert message needs.
type StockItemDetail struct {
	Item          domain.StockItem
	ProductName   string
	InventoryName string
	MinStockLevel int64
}

// StockReader defines read operations for the inventory catalog and kardex.
type StockReader interface {
	FindProductCategoryByID(ctx context.Context, productCategoryID string) (*domain.ProductCategory, error)
	ListProductCategoriesByCompany(ctx context.Context, companyID string) ([]domain.ProductCategory, error)

	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error)

	FindInventoryByID(ctx context.Context, inventoryID string) (*domain.Inventory, error)
	ListInventoriesByCompany(ctx context.Context, companyID string) ([]domain.Inventory, error)

	FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error)
	// FindStockItemDetail loads the item plus product/location names and the
	// product's minimum stock level for alert evaluation.
	FindStockItemDetail(ctx context.Context, stockItemID string) (*StockItemDetail, error)
	ListStockItemsByCompany(ctx context.Context, companyID string) ([]domain.StockItem, error)

	ListMovementsByStockItem(ctx context.Context, stockItemID string, limit int) ([]domain.InventoryMovement, error)
}

// StockWriter defines write operations for the inventory catalog and kardex.
type StockWriter interface {
	SaveProductCategory(ctx context.Context, category domain.ProductCategory) error
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	SaveInventory(ctx context.Context, inventory domain.Inventory) error
	SaveStockItem(ctx context.Context, item domain.StockItem) error

	// ApplyMovement inserts the immutable movement row and increments the
	// stock item's quantity with a single relative UPDATE expression, in one
	// unit of work. It returns the fresh quantity on hand so the caller can
	// evaluate the alert rule without a second read.
	ApplyMovement(ctx context.Context, movement domain.InventoryMovement) (int64, error)
}

// StockRepositoryFacade combines stock repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
