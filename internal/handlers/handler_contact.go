package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

// registerContactRoutes registers the customer/supplier directory routes.
func registerContactRoutes(rg *gin.RouterGroup, cs portssvc.ContactSvcFacade) {
	h := newContactHandler(cs)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PUT("/:id", h.updateContact)
		contacts.DELETE("/:id", h.deleteContact)
	}
}

// createContact godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /contacts [post]
func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *contactHandler) listContacts(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, err, "list contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *contactHandler) getContact(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), companyID, c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), companyID, c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *contactHandler) deleteContact(c *gin.Context) {
	companyID, userID, ok := scopedIdentity(c)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), companyID, c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}
