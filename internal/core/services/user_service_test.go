package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centbook/centbook_backend/internal/apperrors"
	"github.com/centbook/centbook_backend/internal/core/domain"
	portsrepo "github.com/centbook/centbook_backend/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook_backend/internal/core/ports/services"
	"github.com/centbook/centbook_backend/internal/core/services"
	"github.com/centbook/centbook_backend/internal/dto"
	"github.com/centbook/centbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string, deletedByUserID string, now time.Time) error {
	args := m.Called(ctx, userID, deletedByUserID, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
}

func (s *UserServiceTestSuite) TestCreateUserHashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}

	var saved domain.User
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := s.service.CreateUser(ctx, req)

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.NotEqual(req.Password, saved.PasswordHash)
	s.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
}

func (s *UserServiceTestSuite) TestVerifyCredentialsSuccess() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	existing := domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	s.mockUserRepo.On("FindUserByEmail", mock.Anything, existing.Email).Return(&existing, nil).Once()

	user, err := s.service.VerifyCredentials(ctx, existing.Email, "correct-horse")

	s.Require().NoError(err)
	s.Equal(existing.UserID, user.UserID)
}

func (s *UserServiceTestSuite) TestVerifyCredentialsWrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	existing := domain.User{UserID: uuid.NewString(), Email: "ada@example.com", PasswordHash: hash}

	s.mockUserRepo.On("FindUserByEmail", mock.Anything, existing.Email).Return(&existing, nil).Once()

	_, err = s.service.VerifyCredentials(ctx, existing.Email, "wrong")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestVerifyCredentialsUnknownEmailCollapsesToUnauthorized() {
	ctx := context.Background()

	s.mockUserRepo.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.VerifyCredentials(ctx, "nobody@example.com", "whatever")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestVerifyCredentialsOAuthOnlyUser() {
	ctx := context.Background()
	existing := domain.User{UserID: uuid.NewString(), Email: "ada@example.com", GoogleID: "google-123"}

	s.mockUserRepo.On("FindUserByEmail", mock.Anything, existing.Email).Return(&existing, nil).Once()

	_, err := s.service.VerifyCredentials(ctx, existing.Email, "anything")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserLinksByEmail() {
	ctx := context.Background()
	existing := domain.User{UserID: uuid.NewString(), Email: "ada@example.com"}

	s.mockUserRepo.On("FindUserByGoogleID", mock.Anything, "google-123").Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, existing.Email).Return(&existing, nil).Once()

	var saved domain.User
	s.mockUserRepo.On("UpdateUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, "google-123", existing.Email, "Ada")

	s.Require().NoError(err)
	s.Equal(existing.UserID, user.UserID)
	s.Equal("google-123", saved.GoogleID)
}

func (s *UserServiceTestSuite) TestFindOrCreateGoogleUserCreatesFreshUser() {
	ctx := context.Background()

	s.mockUserRepo.On("FindUserByGoogleID", mock.Anything, "google-123").Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("FindUserByEmail", mock.Anything, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	s.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.FindOrCreateGoogleUser(ctx, "google-123", "new@example.com", "New User")

	s.Require().NoError(err)
	s.NotEmpty(user.UserID)
	s.Equal("google-123", user.GoogleID)
	s.Empty(user.PasswordHash)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
