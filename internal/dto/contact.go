package dto

import (
	"time"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact.
type CreateContactRequest struct {
	Name        string             `json:"name" binding:"required"`
	FantasyName string             `json:"fantasyName"`
	TaxID       string             `json:"taxID"`
	Email       string             `json:"email" binding:"omitempty,email"`
	Phone       string             `json:"phone"`
	Kind        domain.ContactKind `json:"kind" binding:"required,oneof=customer supplier both"`
}

// UpdateContactRequest defines the mutable fields of a contact.
type UpdateContactRequest struct {
	Name        *string             `json:"name"`
	FantasyName *string             `json:"fantasyName"`
	Email       *string             `json:"email"`
	Phone       *string             `json:"phone"`
	Kind        *domain.ContactKind `json:"kind"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID   string             `json:"contactID"`
	Name        string             `json:"name"`
	FantasyName string             `json:"fantasyName,omitempty"`
	TaxID       string             `json:"taxID,omitempty"`
	Email       string             `json:"email,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Kind        domain.ContactKind `json:"kind"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToContactResponse converts a domain.Contact to ContactResponse.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:   c.ContactID,
		Name:        c.Name,
		FantasyName: c.FantasyName,
		TaxID:       c.TaxID,
		Email:       c.Email,
		Phone:       c.Phone,
		Kind:        c.Kind,
		CreatedAt:   c.CreatedAt,
	}
}

// ToContactResponses converts a slice of contacts.
func ToContactResponses(contacts []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(contacts))
	for i := range contacts {
		res[i] = ToContactResponse(&contacts[i])
	}
	return res
}
