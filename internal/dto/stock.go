package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductCategoryRequest defines the data for a product category.
type CreateProductCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProductCategoryResponse defines the data returned for a product category.
type ProductCategoryResponse struct {
	ProductCategoryID string `json:"productCategoryID"`
	Name              string `json:"name"`
}

// ToProductCategoryResponse converts a domain.ProductCategory.
func ToProductCategoryResponse(c *domain.ProductCategory) ProductCategoryResponse {
	return ProductCategoryResponse{ProductCategoryID: c.ProductCategoryID, Name: c.Name}
}

// ToProductCategoryResponses converts a slice of product categories.
func ToProductCategoryResponses(cats []domain.ProductCategory) []ProductCategoryResponse {
	res := make([]ProductCategoryResponse, len(cats))
	for i := range cats {
		res[i] = ToProductCategoryResponse(&cats[i])
	}
	return res
}

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	SKU               string          `json:"sku"`
	ProductCategoryID *string         `json:"productCategoryID"`
	MinStockLevel     int64           `json:"minStockLevel" binding:"min=0"`
	DefaultCost       decimal.Decimal `json:"defaultCost"`
}

// UpdateProductRequest defines the mutable fields of a product.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	SKU           *string          `json:"sku"`
	MinStockLevel *int64           `json:"minStockLevel" binding:"omitempty,min=0"`
	DefaultCost   *decimal.Decimal `json:"defaultCost"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID         string          `json:"productID"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku,omitempty"`
	ProductCategoryID *string         `json:"productCategoryID,omitempty"`
	MinStockLevel     int64           `json:"minStockLevel"`
	DefaultCost       decimal.Decimal `json:"defaultCost"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:         p.ProductID,
		Name:              p.Name,
		SKU:               p.SKU,
		ProductCategoryID: p.ProductCategoryID,
		MinStockLevel:     p.MinStockLevel,
		DefaultCost:       p.DefaultCost,
		CreatedAt:         p.CreatedAt,
	}
}

// ToProductResponses converts a slice of products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// CreateInventoryRequest defines the data needed to create a stock location.
type CreateInventoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// InventoryResponse defines the data returned for a stock location.
type InventoryResponse struct {
	InventoryID string    `json:"inventoryID"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToInventoryResponse converts a domain.Inventory to InventoryResponse.
func ToInventoryResponse(inv *domain.Inventory) InventoryResponse {
	return InventoryResponse{InventoryID: inv.InventoryID, Name: inv.Name, CreatedAt: inv.CreatedAt}
}

// ToInventoryResponses converts a slice of inventories.
func ToInventoryResponses(invs []domain.Inventory) []InventoryResponse {
	res := make([]InventoryResponse, len(invs))
	for i := range invs {
		res[i] = ToInventoryResponse(&invs[i])
	}
	return res
}

// CreateStockItemRequest binds a product to a location.
type CreateStockItemRequest struct {
	ProductID   string `json:"productID" binding:"required"`
	InventoryID string `json:"inventoryID" binding:"required"`
}

// StockItemResponse defines the data returned for a stock item.
type StockItemResponse struct {
	StockItemID    string    `json:"stockItemID"`
	ProductID      string    `json:"productID"`
	InventoryID    string    `json:"inventoryID"`
	QuantityOnHand int64     `json:"quantityOnHand"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToStockItemResponse converts a domain.StockItem to StockItemResponse.
func ToStockItemResponse(s *domain.StockItem) StockItemResponse {
	return StockItemResponse{
		StockItemID:    s.StockItemID,
		ProductID:      s.ProductID,
		InventoryID:    s.InventoryID,
		QuantityOnHand: s.QuantityOnHand,
		CreatedAt:      s.CreatedAt,
	}
}

// ToStockItemResponses converts a slice of stock items.
func ToStockItemResponses(items []domain.StockItem) []StockItemResponse {
	res := make([]StockItemResponse, len(items))
	for i := range items {
		res[i] = ToStockItemResponse(&items[i])
	}
	return res
}

// CreateMovementRequest records one stock movement. Quantity is always
// positive; the movement type decides the sign applied to stock.
type CreateMovementRequest struct {
	Type                domain.MovementType `json:"type" binding:"required,oneof=in_purchase in_adjustment in_transfer out_sale out_adjustment out_transfer out_loss"`
	Quantity            int64               `json:"quantity" binding:"required,gt=0"`
	UnitCost            *decimal.Decimal    `json:"unitCost"`
	Description         string              `json:"description"`
	LinkedTransactionID *string             `json:"linkedTransactionID"`
}

// MovementResponse defines the data returned for a stock movement. The
// QuantityAfter field carries the level the movement left the item at.
type MovementResponse struct {
	MovementID          string              `json:"movementID"`
	StockItemID         string              `json:"stockItemID"`
	Type                domain.MovementType `json:"type"`
	QuantityChanged     int64               `json:"quantityChanged"`
	QuantityAfter       int64               `json:"quantityAfter,omitempty"`
	UnitCost            *decimal.Decimal    `json:"unitCost,omitempty"`
	Description         string              `json:"description,omitempty"`
	LinkedTransactionID *string             `json:"linkedTransactionID,omitempty"`
	MovementDate        time.Time           `json:"movementDate"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// ToMovementResponse converts a domain.InventoryMovement plus the resulting
// quantity on hand.
func ToMovementResponse(m *domain.InventoryMovement, quantityAfter int64) MovementResponse {
	return MovementResponse{
		MovementID:          m.MovementID,
		StockItemID:         m.StockItemID,
		Type:                m.Type,
		QuantityChanged:     m.QuantityChanged,
		QuantityAfter:       quantityAfter,
		UnitCost:            m.UnitCost,
		Description:         m.Description,
		LinkedTransactionID: m.LinkedTransactionID,
		MovementDate:        m.MovementDate,
		CreatedAt:           m.CreatedAt,
	}
}

// ToMovementResponses converts historical movements, carrying no running
// quantity.
func ToMovementResponses(movements []domain.InventoryMovement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i], 0)
	}
	return res
}
