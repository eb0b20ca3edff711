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
	"github.com/fintelis/erp_backend/internal/utils"
)

// userService implements registration and login on top of the user repo.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	tokenSvc portssvc.TokenSvc
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, tokenSvc: tokenSvc}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*dto.UserResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check existing user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(409, "email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields("", now),
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	resp := dto.ToUserResponse(&user)
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to find user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Invalid credentials", slog.String("email", req.Email))
		return nil, apperrors.ErrUnauthorized
	}

	token, expiresIn, err := s.tokenSvc.GenerateAccessToken(user.UserID)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{Token: token, ExpiresIn: expiresIn, UserID: user.UserID}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// tokenService signs and validates both token shapes with a shared secret.
type tokenService struct {
	secret        string
	issuer        string
	accessExpiry  time.Duration
	companyExpiry time.Duration
}

// NewTokenService creates a new token service.
func NewTokenService(secret, issuer string, accessExpiry, companyExpiry time.Duration) portssvc.TokenSvc {
	return &tokenService{
		secret:        secret,
		issuer:        issuer,
		accessExpiry:  accessExpiry,
		companyExpiry: companyExpiry,
	}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(userID string) (string, int64, error) {
	token, err := utils.GenerateJWT(userID, "", s.secret, s.accessExpiry, s.issuer)
	return token, int64(s.accessExpiry.Seconds()), err
}

func (s *tokenService) GenerateCompanyToken(userID, companyID string) (string, int64, error) {
	token, err := utils.GenerateJWT(userID, companyID, s.secret, s.companyExpiry, s.issuer)
	return token, int64(s.companyExpiry.Seconds()), err
}

func (s *tokenService) ValidateToken(tokenString string) (string, string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.secret)
	if err != nil {
		return "", "", apperrors.ErrUnauthorized
	}
	return claims.Subject, claims.CompanyID, nil
}
