package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portsrepo "github.com/fintelis/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/middleware"
)

// companyService implements tenant management and the membership gate.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	tokenSvc    portssvc.TokenSvc
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, tokenSvc portssvc.TokenSvc) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, tokenSvc: tokenSvc}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*dto.CompanyResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        req.Name,
		TaxID:       req.TaxID,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	// The creator becomes the first admin.
	membership := domain.Membership{
		CompanyID:   company.CompanyID,
		UserID:      creatorUserID,
		Role:        domain.RoleAdmin,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	if err := s.companyRepo.SaveMembership(ctx, membership); err != nil {
		logger.Error("Failed to save creator membership", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to save membership: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	resp := dto.ToCompanyResponse(&company)
	return &resp, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID, userID string) (*dto.CompanyResponse, error) {
	if err := s.AuthorizeUserAction(ctx, companyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}

func (s *companyService) ListMyCompanies(ctx context.Context, userID string) ([]dto.CompanyResponse, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return dto.ToCompanyResponses(companies), nil
}

func (s *companyService) AddMember(ctx context.Context, companyID string, req dto.AddMemberRequest, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, companyID, actingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	existing, err := s.companyRepo.FindMembership(ctx, companyID, req.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return apperrors.NewAppError(409, "user is already a member", apperrors.ErrDuplicate)
	}

	membership := domain.Membership{
		CompanyID:   companyID,
		UserID:      req.UserID,
		Role:        req.Role,
		AuditFields: domain.NewAuditFields(actingUserID, time.Now()),
	}
	if err := s.companyRepo.SaveMembership(ctx, membership); err != nil {
		logger.Error("Failed to save membership", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return fmt.Errorf("failed to save membership: %w", err)
	}

	logger.Info("Member added", slog.String("company_id", companyID), slog.String("member_user_id", req.UserID))
	return nil
}

func (s *companyService) SelectCompany(ctx context.Context, userID string, req dto.SelectCompanyRequest) (*dto.CompanyTokenResponse, error) {
	if err := s.AuthorizeUserAction(ctx, req.CompanyID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.tokenSvc.GenerateCompanyToken(userID, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate company token: %w", err)
	}

	return &dto.CompanyTokenResponse{CompanyToken: token, ExpiresIn: expiresIn, CompanyID: req.CompanyID}, nil
}

func (s *companyService) AuthorizeUserAction(ctx context.Context, companyID, userID string, required domain.MembershipRole) error {
	if companyID == "" {
		return apperrors.ErrNoActiveCompany
	}

	membership, err := s.companyRepo.FindMembership(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if !membership.Role.CanPerform(required) {
		middleware.GetLoggerFromCtx(ctx).Warn("Insufficient role",
			slog.String("company_id", companyID),
			slog.String("role", string(membership.Role)),
			slog.String("required", string(required)))
		return apperrors.ErrForbidden
	}

	return nil
}
