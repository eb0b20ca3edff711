package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory groups products for catalog purposes.
type ProductCategory struct {
	ProductCategoryID string `json:"productCategoryID"`
	CompanyID         string `json:"companyID"`
	Name              string `json:"name"`
	AuditFields
}

// Product is a master-catalog entry. MinStockLevel is the low-stock alert
// threshold applied to every stock item of the product.
type Product struct {
	ProductID         string          `json:"productID"`
	CompanyID         string          `json:"companyID"`
	ProductCategoryID *string         `json:"productCategoryID,omitempty"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku,omitempty"`
	MinStockLevel     int64           `json:"minStockLevel"`
	DefaultCost       decimal.Decimal `json:"defaultCost"`
	AuditFields
}

// Inventory is a physical stock location.
type Inventory struct {
	InventoryID string `json:"inventoryID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	AuditFields
}

// StockItem pivots (company, product, inventory) to a quantity on hand.
// QuantityOnHand is a derived aggregate of the item's movements, maintained
// by atomic increments; it is never assigned directly through the API.
type StockItem struct {
	StockItemID    string `json:"stockItemID"`
	CompanyID      string `json:"companyID"`
	ProductID      string `json:"productID"`
	InventoryID    string `json:"inventoryID"`
	QuantityOnHand int64  `json:"quantityOnHand"`
	AuditFields
}

// MovementType classifies a kardex entry.
type MovementType string

const (
	MovementInPurchase    MovementType = "in_purchase"
	MovementInAdjustment  MovementType = "in_adjustment"
	MovementInTransfer    MovementType = "in_transfer"
	MovementOutSale       MovementType = "out_sale"
	MovementOutAdjustment MovementType = "out_adjustment"
	MovementOutTransfer   MovementType = "out_transfer"
	MovementOutLoss       MovementType = "out_loss"
)

// ValidMovementType reports whether t is a known movement type.
func ValidMovementType(t MovementType) bool {
	switch t {
	case MovementInPurchase, MovementInAdjustment, MovementInTransfer,
		MovementOutSale, MovementOutAdjustment, MovementOutTransfer, MovementOutLoss:
		return true
	}
	return false
}

// IsInbound reports whether the type increases stock.
func (t MovementType) IsInbound() bool {
	switch t {
	case MovementInPurchase, MovementInAdjustment, MovementInTransfer:
		return true
	}
	return false
}

// InventoryMovement is an append-only kardex entry. Movements are never
// edited or deleted; corrections are compensating movements.
type InventoryMovement struct {
	MovementID      string       `json:"movementID"`
	CompanyID       string       `json:"companyID"`
	StockItemID     string       `json:"stockItemID"`
	QuantityChanged int64        `json:"quantityChanged"` // signed
	Type            MovementType `json:"type"`
	// LinkedTransactionID ties a sale-triggered movement to its ledger entry.
	LinkedTransactionID *string          `json:"linkedTransactionID,omitempty"`
	UnitCost            *decimal.Decimal `json:"unitCost,omitempty"`
	Description         string           `json:"description,omitempty"`
	MovementDate        time.Time        `json:"movementDate"`
	AuditFields
}
