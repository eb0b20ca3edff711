package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// ContactSvcFacade defines customer/supplier directory operations.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, companyID string, req dto.CreateContactRequest, userID string) (*dto.ContactResponse, error)
	GetContactByID(ctx context.Context, companyID, contactID, userID string) (*dto.ContactResponse, error)
	ListContacts(ctx context.Context, companyID, userID string) ([]dto.ContactResponse, error)
	UpdateContact(ctx context.Context, companyID, contactID string, req dto.UpdateContactRequest, userID string) (*dto.ContactResponse, error)
	DeleteContact(ctx context.Context, companyID, contactID, userID string) error
}
