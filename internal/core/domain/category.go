package domain

// CategoryKind is the polarity of a chart-of-accounts node.
type CategoryKind string

const (
	KindRevenue CategoryKind = "revenue"
	KindExpense CategoryKind = "expense"
)

// ValidCategoryKind reports whether k is a known category kind.
func ValidCategoryKind(k CategoryKind) bool {
	return k == KindRevenue || k == KindExpense
}

// Category is a hierarchical chart-of-accounts node. Code is dotted and
// auto-generated: roots get the next free integer per company, children get
// parent.code + "." + ordinal. Codes are stable once assigned; deleting a
// sibling never renumbers the rest.
type Category struct {
	CategoryID string       `json:"categoryID"`
	CompanyID  string       `json:"companyID"`
	ParentID   *string      `json:"parentID,omitempty"`
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	Code       string       `json:"code"`
	Ordinal    int          `json:"-"` // position among siblings, persisted so codes survive deletions
	AuditFields
}

// CostCenter mirrors the category hierarchy for cost allocation, with an
// independent code space.
type CostCenter struct {
	CostCenterID string  `json:"costCenterID"`
	CompanyID    string  `json:"companyID"`
	ParentID     *string `json:"parentID,omitempty"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Ordinal      int     `json:"-"`
	AuditFields
}
