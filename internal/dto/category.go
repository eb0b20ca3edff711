package dto

import (
	"github.com/fintelis/erp_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name     string              `json:"name" binding:"required"`
	Kind     domain.CategoryKind `json:"kind" binding:"required,oneof=revenue expense"`
	ParentID *string             `json:"parentID"`
}

// UpdateCategoryRequest renames a category. Kind, parent and code are fixed
// at creation.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Kind       domain.CategoryKind `json:"kind"`
	Code       string              `json:"code"`
	ParentID   *string             `json:"parentID,omitempty"`
}

// CategoryTreeResponse groups categories by kind with children nested under
// their parents, in code order.
type CategoryTreeResponse struct {
	Revenue []CategoryNode `json:"revenue"`
	Expense []CategoryNode `json:"expense"`
}

// CategoryNode is one hierarchy entry with its direct children.
type CategoryNode struct {
	CategoryResponse
	Children []CategoryNode `json:"children,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		Code:       c.Code,
		ParentID:   c.ParentID,
	}
}

// CreateCostCenterRequest defines the data needed to create a cost center.
type CreateCostCenterRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentID"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID string  `json:"costCenterID"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	ParentID     *string `json:"parentID,omitempty"`
}

// ToCostCenterResponse converts a domain.CostCenter to CostCenterResponse.
func ToCostCenterResponse(c *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID: c.CostCenterID,
		Name:         c.Name,
		Code:         c.Code,
		ParentID:     c.ParentID,
	}
}

// ToCostCenterResponses converts a slice of cost centers.
func ToCostCenterResponses(centers []domain.CostCenter) []CostCenterResponse {
	res := make([]CostCenterResponse, len(centers))
	for i := range centers {
		res[i] = ToCostCenterResponse(&centers[i])
	}
	return res
}
