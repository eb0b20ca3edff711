package domain

// ContactKind distinguishes customers from suppliers.
type ContactKind string

const (
	ContactCustomer ContactKind = "customer"
	ContactSupplier ContactKind = "supplier"
	ContactBoth     ContactKind = "both"
)

// Contact is a customer or supplier of the company.
type Contact struct {
	ContactID   string      `json:"contactID"`
	CompanyID   string      `json:"companyID"`
	Name        string      `json:"name"`
	FantasyName string      `json:"fantasyName,omitempty"`
	TaxID       string      `json:"taxID,omitempty"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Kind        ContactKind `json:"kind"`
	AuditFields
}

// CanSupply reports whether the contact may appear on expense-side documents.
func (c Contact) CanSupply() bool {
	return c.Kind == ContactSupplier || c.Kind == ContactBoth
}

// CanBuy reports whether the contact may appear on revenue-side documents.
func (c Contact) CanBuy() bool {
	return c.Kind == ContactCustomer || c.Kind == ContactBoth
}
