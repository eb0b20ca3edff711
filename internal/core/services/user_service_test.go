package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintelis/erp_backend/internal/apperrors"
	"github.com/fintelis/erp_backend/internal/core/domain"
	portssvc "github.com/fintelis/erp_backend/internal/core/ports/services"
	"github.com/fintelis/erp_backend/internal/core/services"
	"github.com/fintelis/erp_backend/internal/dto"
	"github.com/fintelis/erp_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockTokenSvc *MockTokenSvc
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTokenSvc = new(MockTokenSvc)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockTokenSvc)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "maria@example.com").Return(nil, apperrors.ErrNotFound)
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "maria@example.com" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3nh4-f0rte" &&
			u.CreatedBy == u.UserID
	})).Return(nil).Once()

	resp, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "s3nh4-f0rte",
	})

	suite.Require().NoError(err)
	suite.Equal("maria@example.com", resp.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "maria@example.com").Return(&domain.User{
		UserID: uuid.NewString(),
		Email:  "maria@example.com",
	}, nil)

	_, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "s3nh4-f0rte",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("s3nh4-f0rte")
	suite.Require().NoError(err)
	userID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "maria@example.com").Return(&domain.User{
		UserID:       userID,
		Email:        "maria@example.com",
		PasswordHash: hash,
	}, nil)
	suite.mockTokenSvc.On("GenerateAccessToken", userID).Return("signed.access.token", int64(900), nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "maria@example.com", Password: "s3nh4-f0rte"})

	suite.Require().NoError(err)
	suite.Equal("signed.access.token", resp.Token)
	suite.Equal(userID, resp.UserID)
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correta")
	suite.Require().NoError(err)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "maria@example.com").Return(&domain.User{
		UserID:       uuid.NewString(),
		Email:        "maria@example.com",
		PasswordHash: hash,
	}, nil)

	_, err = suite.service.Login(ctx, dto.LoginRequest{Email: "maria@example.com", Password: "errada"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmailIndistinguishable() {
	// Unknown email and wrong password return the same error shape.
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "qualquer"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
