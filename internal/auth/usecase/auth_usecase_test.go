package usecase_test

import (
	"context"
	"testing"
	"time"

	"wastetrack/internal/auth/config"
	"wastetrack/internal/auth/domain/model"
	"wastetrack/internal/auth/domain/repository"
	"wastetrack/internal/auth/usecase"
	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// Mock repository
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) SetActive(ctx context.Context, id string, active bool) (*model.User, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock token service
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, userID, email string, role model.Role, cityID string) (string, error) {
	args := m.Called(ctx, userID, email, role, cityID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, tokenString string) (*repository.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Claims), args.Error(1)
}

type AuthUsecaseTestSuite struct {
	suite.Suite
	mockRepo  *mockUserRepository
	mockToken *mockTokenService
	bus       eventbus.EventBusInterface
	usecase   *usecase.AuthUsecase
}

func (suite *AuthUsecaseTestSuite) SetupTest() {
	suite.mockRepo = &mockUserRepository{}
	suite.mockToken = &mockTokenService{}
	suite.bus = eventbus.NewEventBus(logger.NewLogger())
	cfg := &config.Config{
		JWTSecretKey:   "test-secret-key",
		JWTIssuer:      "test-issuer",
		AccessTokenTTL: 15 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
	}
	suite.usecase = usecase.NewAuthUsecase(suite.mockRepo, suite.mockToken, suite.bus, cfg)
}

func (suite *AuthUsecaseTestSuite) TestRegister_Success() {
	ctx := context.Background()
	email := "resident@example.com"
	password := "password123"
	token := "jwt-token-123"

	suite.mockRepo.On("GetUserByEmail", ctx, email).Return(nil, model.ErrUserNotFound)
	suite.mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(user *model.User) bool {
		return user.Email == email && user.Role == model.RoleHouseholder && user.IsActive
	})).Return(nil)
	suite.mockToken.On("GenerateToken", ctx, mock.AnythingOfType("string"), email, model.RoleHouseholder, "").
		Return(token, nil)

	user, resultToken, err := suite.usecase.Register(ctx, usecase.RegisterRequest{
		Name:     "Resident",
		Email:    email,
		Password: password,
		Address:  "12 Elm Street",
		Phone:    "555-0142",
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), email, user.Email)
	assert.Equal(suite.T(), model.RoleHouseholder, user.Role)
	assert.Equal(suite.T(), token, resultToken)
	assert.Empty(suite.T(), user.PasswordHash)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockToken.AssertExpectations(suite.T())
}

func (suite *AuthUsecaseTestSuite) TestRegister_EmailAlreadyTaken() {
	ctx := context.Background()
	email := "existing@example.com"

	suite.mockRepo.On("GetUserByEmail", ctx, email).
		Return(&model.User{ID: "u-1", Email: email}, nil)

	user, token, err := suite.usecase.Register(ctx, usecase.RegisterRequest{
		Name:     "Someone",
		Email:    email,
		Password: "password123",
	})

	assert.ErrorIs(suite.T(), err, usecase.ErrEmailTaken)
	assert.Nil(suite.T(), user)
	assert.Empty(suite.T(), token)
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateToken")
}

func (suite *AuthUsecaseTestSuite) TestRegister_InvalidEmailFormat() {
	for _, email := range []string{"invalid-email", "@example.com", "test@", ""} {
		user, token, err := suite.usecase.Register(context.Background(), usecase.RegisterRequest{
			Name:     "Someone",
			Email:    email,
			Password: "password123",
		})

		assert.Error(suite.T(), err)
		assert.Nil(suite.T(), user)
		assert.Empty(suite.T(), token)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "GetUserByEmail")
}

func (suite *AuthUsecaseTestSuite) TestRegister_ShortPassword() {
	user, _, err := suite.usecase.Register(context.Background(), usecase.RegisterRequest{
		Name:     "Someone",
		Email:    "ok@example.com",
		Password: "short",
	})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), user)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateUser")
}

func (suite *AuthUsecaseTestSuite) TestRegister_RejectsUnknownRole() {
	user, _, err := suite.usecase.Register(context.Background(), usecase.RegisterRequest{
		Name:     "Someone",
		Email:    "ok@example.com",
		Password: "password123",
		Role:     "superuser",
	})

	assert.ErrorIs(suite.T(), err, usecase.ErrInvalidRole)
	assert.Nil(suite.T(), user)
}

func (suite *AuthUsecaseTestSuite) TestLogin_Success() {
	ctx := context.Background()
	email := "resident@example.com"
	password := "password123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(suite.T(), err)

	stored := &model.User{
		ID:           "u-1",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleHouseholder,
		IsActive:     true,
	}
	suite.mockRepo.On("GetUserByEmail", ctx, email).Return(stored, nil)
	suite.mockToken.On("GenerateToken", ctx, "u-1", email, model.RoleHouseholder, "").
		Return("jwt-token", nil)

	user, token, err := suite.usecase.Login(ctx, usecase.LoginRequest{Email: email, Password: password})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u-1", user.ID)
	assert.Equal(suite.T(), "jwt-token", token)
	assert.Empty(suite.T(), user.PasswordHash)
}

func (suite *AuthUsecaseTestSuite) TestLogin_PublishesAuthenticationEvent() {
	ctx := context.Background()
	email := "resident@example.com"
	password := "password123"

	received := make(chan *model.User, 1)
	suite.bus.Subscribe(eventbus.EventTypeUserAuthenticated, func(ctx context.Context, event eventbus.Event) error {
		received <- event.Data().(*model.User)
		return nil
	})

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(suite.T(), err)

	stored := &model.User{
		ID:           "u-1",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleHouseholder,
		IsActive:     true,
	}
	suite.mockRepo.On("GetUserByEmail", ctx, email).Return(stored, nil)
	suite.mockToken.On("GenerateToken", ctx, "u-1", email, model.RoleHouseholder, "").
		Return("jwt-token", nil)

	_, _, err = suite.usecase.Login(ctx, usecase.LoginRequest{Email: email, Password: password})
	require.NoError(suite.T(), err)

	select {
	case u := <-received:
		assert.Equal(suite.T(), "u-1", u.ID)
		assert.Empty(suite.T(), u.PasswordHash)
	case <-time.After(time.Second):
		suite.T().Fatal("user.authenticated event was not published")
	}
}

func (suite *AuthUsecaseTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	email := "resident@example.com"

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	stored := &model.User{ID: "u-1", Email: email, PasswordHash: string(hash), IsActive: true}
	suite.mockRepo.On("GetUserByEmail", ctx, email).Return(stored, nil)

	user, token, err := suite.usecase.Login(ctx, usecase.LoginRequest{Email: email, Password: "wrong"})

	assert.ErrorIs(suite.T(), err, usecase.ErrInvalidCredentials)
	assert.Nil(suite.T(), user)
	assert.Empty(suite.T(), token)
	suite.mockToken.AssertNotCalled(suite.T(), "GenerateToken")
}

func (suite *AuthUsecaseTestSuite) TestLogin_UnknownEmailHidesExistence() {
	ctx := context.Background()

	suite.mockRepo.On("GetUserByEmail", ctx, "ghost@example.com").
		Return(nil, model.ErrUserNotFound)

	user, _, err := suite.usecase.Login(ctx, usecase.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	assert.ErrorIs(suite.T(), err, usecase.ErrInvalidCredentials)
	assert.Nil(suite.T(), user)
}

func (suite *AuthUsecaseTestSuite) TestLogin_DeactivatedAccountRejectedBeforePasswordCheck() {
	ctx := context.Background()
	email := "blocked@example.com"

	stored := &model.User{ID: "u-2", Email: email, PasswordHash: "irrelevant", IsActive: false}
	suite.mockRepo.On("GetUserByEmail", ctx, email).Return(stored, nil)

	user, _, err := suite.usecase.Login(ctx, usecase.LoginRequest{Email: email, Password: "password123"})

	assert.ErrorIs(suite.T(), err, usecase.ErrAccountDeactivated)
	assert.Nil(suite.T(), user)
}

func (suite *AuthUsecaseTestSuite) TestUpdateProfile_IgnoresRoleAndActiveChanges() {
	ctx := context.Background()

	stored := &model.User{
		ID:       "u-1",
		Name:     "Old Name",
		Email:    "resident@example.com",
		Address:  "12 Elm Street",
		Phone:    "555-0142",
		Role:     model.RoleHouseholder,
		IsActive: true,
	}
	suite.mockRepo.On("GetUserByID", ctx, "u-1").Return(stored, nil)
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "New Name" && u.Role == model.RoleHouseholder && u.IsActive
	})).Return(nil)

	name := "New Name"
	admin := model.RoleAdmin
	inactive := false
	user, err := suite.usecase.UpdateProfile(ctx, "u-1", usecase.UpdateProfileRequest{
		Name:     &name,
		Role:     &admin,
		IsActive: &inactive,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Name", user.Name)
	assert.Equal(suite.T(), model.RoleHouseholder, user.Role)
	assert.True(suite.T(), user.IsActive)
}

func (suite *AuthUsecaseTestSuite) TestSetUserActive() {
	ctx := context.Background()

	updated := &model.User{ID: "u-1", IsActive: false}
	suite.mockRepo.On("SetActive", ctx, "u-1", false).Return(updated, nil)

	user, err := suite.usecase.SetUserActive(ctx, "u-1", false)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), user.IsActive)
}

func TestAuthUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuthUsecaseTestSuite))
}
