package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// contactService implements the customer/supplier directory.
type contactService struct {
	contactRepo portsrepo.ContactRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: contactRepo, companySvc: companySvc}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, companyID string, req dto.CreateContactRequest, userID string) (*dto.ContactResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		FantasyName: req.FantasyName,
		TaxID:       req.TaxID,
		Email:       req.Email,
		Phone:       req.Phone,
		Kind:        req.Kind,
		AuditFields: domain.NewAuditFields(userID, time.Now()),
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		logger.Error("Failed to save contact", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	resp := dto.ToContactResponse(&contact)
	return &resp, nil
}

// findScoped loads a contact and hides cross-company rows behind not-found.
func (s *contactService) findScoped(ctx context.Context, companyID, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.CompanyID != companyID {
		return nil, notFoundOutsideScope(ctx, "contact", contactID, companyID)
	}
	return contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, companyID, contactID, userID string) (*dto.ContactResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	contact, err := s.findScoped(ctx, companyID, contactID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToContactResponse(contact)
	return &resp, nil
}

func (s *contactService) ListContacts(ctx context.Context, companyID, userID string) ([]dto.ContactResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.ListContactsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return dto.ToContactResponses(contacts), nil
}

func (s *contactService) UpdateContact(ctx context.Context, companyID, contactID string, req dto.UpdateContactRequest, userID string) (*dto.ContactResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	contact, err := s.findScoped(ctx, companyID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.FantasyName != nil {
		contact.FantasyName = *req.FantasyName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Kind != nil {
		contact.Kind = *req.Kind
	}
	contact.Touch(userID, time.Now())

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		logger.Error("Failed to update contact", slog.String("error", err.Error()), slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	resp := dto.ToContactResponse(contact)
	return &resp, nil
}

func (s *contactService) DeleteContact(ctx context.Context, companyID, contactID, userID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, companyID, userID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.findScoped(ctx, companyID, contactID); err != nil {
		return err
	}
	return s.contactRepo.DeleteContact(ctx, contactID)
}
