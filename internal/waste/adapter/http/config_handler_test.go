package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	authhttp "wastetrack/internal/auth/adapter/http"
	authmodel "wastetrack/internal/auth/domain/model"
	authrepo "wastetrack/internal/auth/domain/repository"
	authusecase "wastetrack/internal/auth/usecase"
	apperrors "wastetrack/internal/shared/errors"
	wastehttp "wastetrack/internal/waste/adapter/http"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock configuration usecase
type mockConfigUsecase struct {
	mock.Mock
}

func (m *mockConfigUsecase) Create(ctx context.Context, draft model.ConfigDraft, createdBy string) (*model.CityConfig, error) {
	args := m.Called(ctx, draft, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) Update(ctx context.Context, cityID string, draft model.ConfigDraft, updatedBy string) (*model.CityConfig, error) {
	args := m.Called(ctx, cityID, draft, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) GetActive(ctx context.Context, cityID string) (*model.CityConfig, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) ListActive(ctx context.Context) ([]*model.CityConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) ListAll(ctx context.Context) ([]*model.CityConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) ToggleActive(ctx context.Context, id string, active bool) (*model.CityConfig, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockConfigUsecase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Stub auth usecase backing the middleware. Tokens map straight to claims;
// every account is active.
type stubAuthUsecase struct {
	authusecase.AuthUsecaseInterface
	claimsByToken map[string]*authrepo.Claims
}

func (s *stubAuthUsecase) ValidateToken(ctx context.Context, tokenString string) (*authrepo.Claims, error) {
	claims, ok := s.claimsByToken[tokenString]
	if !ok {
		return nil, authusecase.ErrTokenInvalid
	}
	return claims, nil
}

func (s *stubAuthUsecase) GetUserByID(ctx context.Context, userID string) (*authmodel.User, error) {
	for _, claims := range s.claimsByToken {
		if claims.UserID == userID {
			return &authmodel.User{
				ID:       claims.UserID,
				Email:    claims.Email,
				Role:     claims.Role,
				IsActive: true,
			}, nil
		}
	}
	return nil, authusecase.ErrUserNotFound
}

type ConfigHandlerTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockConfigUsecase
}

func (suite *ConfigHandlerTestSuite) SetupTest() {
	suite.mockUsecase = &mockConfigUsecase{}

	auth := &stubAuthUsecase{claimsByToken: map[string]*authrepo.Claims{
		"admin-token": {
			UserID: "admin-1",
			Email:  "admin@example.com",
			Role:   authmodel.RoleAdmin,
		},
		"collector-token": {
			UserID: "col-1",
			Email:  "collector@example.com",
			Role:   authmodel.RoleCollector,
		},
	}}
	middleware := authhttp.NewAuthMiddleware(auth)

	suite.app = fiber.New()
	handler := wastehttp.NewConfigHTTPHandler(suite.mockUsecase)
	handler.SetupRoutes(suite.app.Group("/api/v1"), middleware)
}

func (suite *ConfigHandlerTestSuite) request(method, target, token string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := suite.app.Test(req, -1)
	require.NoError(suite.T(), err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func validConfigBody() map[string]interface{} {
	return map[string]interface{}{
		"cityId":          "city-001",
		"cityName":        "Springfield",
		"wasteTypes":      []string{"general", "recyclable"},
		"pricingModel":    "flat",
		"baseRate":        100,
		"recyclingCredit": 2,
		"pickupFrequency": map[string]string{"Zone A": "weekly"},
	}
}

func (suite *ConfigHandlerTestSuite) TestCreateConfig_Returns201() {
	created := &model.CityConfig{
		ID:        "cfg-1",
		CityID:    "city-001",
		Version:   1,
		IsActive:  true,
		CreatedBy: "admin-1",
	}
	suite.mockUsecase.On("Create", mock.Anything, mock.MatchedBy(func(d model.ConfigDraft) bool {
		return d.CityID == "city-001" && d.PricingModel == model.PricingFlat
	}), "admin-1").Return(created, nil)

	resp := suite.request("POST", "/api/v1/configs", "admin-token", validConfigBody())

	assert.Equal(suite.T(), fiber.StatusCreated, resp.StatusCode)
	var cfg model.CityConfig
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(suite.T(), 1, cfg.Version)
	assert.True(suite.T(), cfg.IsActive)
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *ConfigHandlerTestSuite) TestCreateConfig_InvalidDraftReturnsAllViolations() {
	ve := model.ConfigDraft{
		CityID:       "city-001",
		PricingModel: model.PricingFlat,
		BaseRate:     -5,
	}.Validate()
	suite.mockUsecase.On("Create", mock.Anything, mock.Anything, "admin-1").Return(nil, ve)

	resp := suite.request("POST", "/api/v1/configs", "admin-token", map[string]interface{}{
		"cityId":       "city-001",
		"pricingModel": "flat",
		"baseRate":     -5,
	})

	assert.Equal(suite.T(), fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "Invalid configuration", body["message"])
	errs, ok := body["errors"].([]interface{})
	require.True(suite.T(), ok)
	assert.Len(suite.T(), errs, 4)
	assert.Contains(suite.T(), errs, "Base rate cannot be negative")
}

func (suite *ConfigHandlerTestSuite) TestGetActiveConfig_UnknownCityReturns404() {
	suite.mockUsecase.On("GetActive", mock.Anything, "ghost-town").
		Return(nil, model.ErrNoActiveConfig)

	resp := suite.request("GET", "/api/v1/configs/ghost-town", "admin-token", nil)

	assert.Equal(suite.T(), fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "no active configuration found", body["message"])
}

func (suite *ConfigHandlerTestSuite) TestUpdateConfig_AppendsVersionForCityInURL() {
	updated := &model.CityConfig{ID: "cfg-2", CityID: "city-001", Version: 2, IsActive: true}
	suite.mockUsecase.On("Update", mock.Anything, "city-001", mock.Anything, "admin-1").
		Return(updated, nil)

	resp := suite.request("PUT", "/api/v1/configs/city-001", "admin-token", validConfigBody())

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	var cfg model.CityConfig
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(suite.T(), 2, cfg.Version)
}

func (suite *ConfigHandlerTestSuite) TestToggleActive_RequiresIsActiveField() {
	resp := suite.request("PATCH", "/api/v1/configs/cfg-1", "admin-token", map[string]interface{}{})

	assert.Equal(suite.T(), fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "isActive is required", body["message"])
	suite.mockUsecase.AssertNotCalled(suite.T(), "ToggleActive")
}

func (suite *ConfigHandlerTestSuite) TestToggleActive() {
	toggled := &model.CityConfig{ID: "cfg-1", CityID: "city-001", Version: 1, IsActive: true}
	suite.mockUsecase.On("ToggleActive", mock.Anything, "cfg-1", true).Return(toggled, nil)

	resp := suite.request("PATCH", "/api/v1/configs/cfg-1", "admin-token", map[string]interface{}{
		"isActive": true,
	})

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *ConfigHandlerTestSuite) TestListVersions() {
	history := []*model.CityConfig{
		{ID: "cfg-2", CityID: "city-001", Version: 2, IsActive: true},
		{ID: "cfg-1", CityID: "city-001", Version: 1},
	}
	suite.mockUsecase.On("ListVersions", mock.Anything, "city-001").Return(history, nil)

	resp := suite.request("GET", "/api/v1/configs/city-001/versions", "admin-token", nil)

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	var versions []model.CityConfig
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&versions))
	require.Len(suite.T(), versions, 2)
	assert.Equal(suite.T(), 2, versions[0].Version)
}

func (suite *ConfigHandlerTestSuite) TestListConfigs_OverviewIncludesInactiveVersions() {
	all := []*model.CityConfig{
		{ID: "cfg-2", CityID: "city-001", Version: 2, IsActive: true},
		{ID: "cfg-1", CityID: "city-001", Version: 1, IsActive: false},
	}
	suite.mockUsecase.On("ListAll", mock.Anything).Return(all, nil)

	resp := suite.request("GET", "/api/v1/configs", "admin-token", nil)

	assert.Equal(suite.T(), fiber.StatusOK, resp.StatusCode)
	var configs []model.CityConfig
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&configs))
	require.Len(suite.T(), configs, 2)
	assert.False(suite.T(), configs[1].IsActive)
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *ConfigHandlerTestSuite) TestMissingTokenReturns401() {
	resp := suite.request("GET", "/api/v1/configs", "", nil)

	assert.Equal(suite.T(), fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "Authentication required", body["message"])
	suite.mockUsecase.AssertNotCalled(suite.T(), "ListAll")
}

func (suite *ConfigHandlerTestSuite) TestNonAdminReturns403() {
	resp := suite.request("GET", "/api/v1/configs", "collector-token", nil)

	assert.Equal(suite.T(), fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "Access denied. collector role cannot access this resource.", body["message"])
	suite.mockUsecase.AssertNotCalled(suite.T(), "ListAll")
}

func (suite *ConfigHandlerTestSuite) TestStorageErrorIsNotLeaked() {
	suite.mockUsecase.On("ListAll", mock.Anything).
		Return(nil, assert.AnError)

	resp := suite.request("GET", "/api/v1/configs", "admin-token", nil)

	assert.Equal(suite.T(), fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "Internal server error", body["message"])
}

func (suite *ConfigHandlerTestSuite) TestStorageErrorWithClientPhrasingStaysOpaque() {
	storageErr := errors.New("mongodb://wastetrack:hunter2@db:27017: invalid auth credentials")
	suite.mockUsecase.On("ListAll", mock.Anything).Return(nil, storageErr)

	resp := suite.request("GET", "/api/v1/configs", "admin-token", nil)

	assert.Equal(suite.T(), fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "Internal server error", body["message"])
}

func (suite *ConfigHandlerTestSuite) TestTypedConflictErrorMapsToBadRequest() {
	suite.mockUsecase.On("ToggleActive", mock.Anything, "cfg-1", true).
		Return(nil, apperrors.NewConflictError("another configuration version is already active for this city"))

	resp := suite.request("PATCH", "/api/v1/configs/cfg-1", "admin-token", map[string]interface{}{
		"isActive": true,
	})

	assert.Equal(suite.T(), fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(suite.T(), resp)
	assert.Equal(suite.T(), "another configuration version is already active for this city", body["message"])
}

var _ usecase.CityConfigUsecaseInterface = (*mockConfigUsecase)(nil)

func TestConfigHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigHandlerTestSuite))
}
