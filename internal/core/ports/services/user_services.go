package services

import (
	"context"

	"github.com/fintelis/erp_backend/internal/dto"
)

// UserSvcFacade defines account registration and authentication.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// TokenSvc issues and validates the two token shapes: the user access token
// and the company-scoped token that carries the active tenant.
type TokenSvc interface {
	GenerateAccessToken(userID string) (token string, expiresIn int64, err error)
	GenerateCompanyToken(userID, companyID string) (token string, expiresIn int64, err error)

	// ValidateToken returns the subject user ID and, when the token is
	// company-scoped, the company ID (empty otherwise).
	ValidateToken(tokenString string) (userID, companyID string, err error)
}
