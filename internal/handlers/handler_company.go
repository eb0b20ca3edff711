package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// companyHandler handles tenant management and company selection.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers company management routes. These live
// outside the company-scoped group: they operate on membership itself.
func registerCompanyRoutes(rg *gin.RouterGroup, cs portssvc.CompanySvcFacade) {
	h := newCompanyHandler(cs)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listMyCompanies)
		companies.GET("/:id", h.getCompany)
		companies.POST("/:id/members", h.addMember)
		companies.POST("/:id/select", h.selectCompany)
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company; the creator becomes its admin member
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "create company")
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, company)
}

// listMyCompanies godoc
// @Summary List companies the user belongs to
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listMyCompanies(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListMyCompanies(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "list companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// getCompany godoc
// @Summary Get a company by ID
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err, "retrieve company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// addMember godoc
// @Summary Add a member to a company
// @Description Admin-only. Grants a user a role in the company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param member body dto.AddMemberRequest true "Member details"
// @Success 204 "Member added"
// @Failure 403 {object} map[string]string "Requires admin role"
// @Failure 409 {object} map[string]string "Already a member"
// @Security BearerAuth
// @Router /companies/{id}/members [post]
func (h *companyHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.companyService.AddMember(c.Request.Context(), c.Param("id"), req, userID); err != nil {
		respondServiceError(c, err, "add member")
		return
	}
	c.Status(http.StatusNoContent)
}

// selectCompany godoc
// @Summary Select the active company
// @Description Verifies membership and issues a company-scoped token
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyTokenResponse
// @Failure 403 {object} map[string]string "Not a member"
// @Security BearerAuth
// @Router /companies/{id}/select [post]
func (h *companyHandler) selectCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requestIdentity(c)
	if !ok {
		return
	}

	resp, err := h.companyService.SelectCompany(c.Request.Context(), userID, dto.SelectCompanyRequest{CompanyID: c.Param("id")})
	if err != nil {
		respondServiceError(c, err, "select company")
		return
	}

	logger.Info("Company selected", slog.String("company_id", resp.CompanyID))
	c.JSON(http.StatusOK, resp)
}
