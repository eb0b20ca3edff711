package repositories

import (
	"context"

	"github.com/fintelis/erp_backend/internal/core/domain"
)

// ContactRepositoryFacade defines persistence operations for contacts.
type ContactRepositoryFacade interface {
	SaveContact(ctx context.Context, contact domain.Contact) error
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContactsByCompany(ctx context.Context, companyID string) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, contact domain.Contact) error
	DeleteContact(ctx context.Context, contactID string) error
}
