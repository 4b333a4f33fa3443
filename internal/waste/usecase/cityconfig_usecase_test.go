package usecase_test

import (
	"context"
	"testing"

	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock repository
type mockCityConfigRepo struct {
	mock.Mock
}

func (m *mockCityConfigRepo) CreateVersion(ctx context.Context, cfg *model.CityConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *mockCityConfigRepo) GetActive(ctx context.Context, cityID string) (*model.CityConfig, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) GetByID(ctx context.Context, id string) (*model.CityConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) ListActive(ctx context.Context) ([]*model.CityConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) ListAll(ctx context.Context) ([]*model.CityConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) SetActive(ctx context.Context, id string, active bool) (*model.CityConfig, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityConfig), args.Error(1)
}

func (m *mockCityConfigRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CityConfigUsecaseTestSuite struct {
	suite.Suite
	mockRepo *mockCityConfigRepo
	usecase  *usecase.CityConfigUsecase
}

func (suite *CityConfigUsecaseTestSuite) SetupTest() {
	log := logger.NewLogger()
	suite.mockRepo = &mockCityConfigRepo{}
	suite.usecase = usecase.NewCityConfigUsecase(suite.mockRepo, nil, eventbus.NewEventBus(log), log)
}

func testDraft() model.ConfigDraft {
	return model.ConfigDraft{
		CityID:          "city-001",
		CityName:        "Colombo",
		WasteTypes:      []model.WasteType{model.WasteGeneral, model.WasteRecyclable},
		PricingModel:    model.PricingFlat,
		BaseRate:        100,
		RecyclingCredit: 2,
		PickupFrequency: map[string]model.PickupFrequency{"Zone A": model.PickupWeekly},
	}
}

func (suite *CityConfigUsecaseTestSuite) TestCreate_FirstVersionIsOne() {
	ctx := context.Background()

	suite.mockRepo.On("ListVersions", ctx, "city-001").Return([]*model.CityConfig{}, nil)
	suite.mockRepo.On("CreateVersion", ctx, mock.MatchedBy(func(cfg *model.CityConfig) bool {
		return cfg.CityID == "city-001" && cfg.Version == 1 && cfg.IsActive
	})).Return(nil)

	cfg, err := suite.usecase.Create(ctx, testDraft(), "admin-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, cfg.Version)
	assert.True(suite.T(), cfg.IsActive)
	assert.Equal(suite.T(), "admin-1", cfg.CreatedBy)
	assert.NotEmpty(suite.T(), cfg.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CityConfigUsecaseTestSuite) TestCreate_NextVersionIsPreviousPlusOne() {
	ctx := context.Background()

	history := []*model.CityConfig{
		{CityID: "city-001", Version: 3, IsActive: true},
		{CityID: "city-001", Version: 2},
		{CityID: "city-001", Version: 1},
	}
	suite.mockRepo.On("ListVersions", ctx, "city-001").Return(history, nil)
	suite.mockRepo.On("CreateVersion", ctx, mock.MatchedBy(func(cfg *model.CityConfig) bool {
		return cfg.Version == 4 && cfg.IsActive
	})).Return(nil)

	cfg, err := suite.usecase.Create(ctx, testDraft(), "admin-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, cfg.Version)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CityConfigUsecaseTestSuite) TestCreate_InvalidDraftNeverTouchesRepository() {
	ctx := context.Background()

	draft := model.ConfigDraft{
		CityID:          "city-001",
		CityName:        "",
		WasteTypes:      []model.WasteType{},
		PricingModel:    model.PricingFlat,
		BaseRate:        -5,
		PickupFrequency: map[string]model.PickupFrequency{},
	}

	cfg, err := suite.usecase.Create(ctx, draft, "admin-1")

	require.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)

	var ve *apperrors.ValidationErrors
	require.ErrorAs(suite.T(), err, &ve)
	assert.Len(suite.T(), ve.Messages(), 4)

	suite.mockRepo.AssertNotCalled(suite.T(), "CreateVersion")
	suite.mockRepo.AssertNotCalled(suite.T(), "ListVersions")
}

func (suite *CityConfigUsecaseTestSuite) TestCreate_MissingCityID() {
	cfg, err := suite.usecase.Create(context.Background(), model.ConfigDraft{}, "admin-1")

	require.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateVersion")
}

func (suite *CityConfigUsecaseTestSuite) TestUpdate_RequiresExistingActiveConfig() {
	ctx := context.Background()

	suite.mockRepo.On("GetActive", ctx, "ghost-town").Return(nil, model.ErrNoActiveConfig)

	cfg, err := suite.usecase.Update(ctx, "ghost-town", testDraft(), "admin-1")

	require.ErrorIs(suite.T(), err, model.ErrNoActiveConfig)
	assert.Nil(suite.T(), cfg)
	suite.mockRepo.AssertNotCalled(suite.T(), "CreateVersion")
}

func (suite *CityConfigUsecaseTestSuite) TestUpdate_CityIDComesFromURLNotBody() {
	ctx := context.Background()

	active := &model.CityConfig{CityID: "city-001", Version: 1, IsActive: true}
	suite.mockRepo.On("GetActive", ctx, "city-001").Return(active, nil)
	suite.mockRepo.On("ListVersions", ctx, "city-001").Return([]*model.CityConfig{active}, nil)
	suite.mockRepo.On("CreateVersion", ctx, mock.MatchedBy(func(cfg *model.CityConfig) bool {
		return cfg.CityID == "city-001" && cfg.Version == 2
	})).Return(nil)

	draft := testDraft()
	draft.CityID = "some-other-city"

	cfg, err := suite.usecase.Update(ctx, "city-001", draft, "admin-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "city-001", cfg.CityID)
	assert.Equal(suite.T(), 2, cfg.Version)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CityConfigUsecaseTestSuite) TestToggleActive_ActivatingHistoricalVersion() {
	ctx := context.Background()

	reactivated := &model.CityConfig{ID: "cfg-v1", CityID: "city-001", Version: 1, IsActive: true}
	suite.mockRepo.On("SetActive", ctx, "cfg-v1", true).Return(reactivated, nil)

	cfg, err := suite.usecase.ToggleActive(ctx, "cfg-v1", true)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), cfg.IsActive)
	assert.Equal(suite.T(), 1, cfg.Version)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CityConfigUsecaseTestSuite) TestToggleActive_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("SetActive", ctx, "missing", false).Return(nil, model.ErrConfigNotFound)

	cfg, err := suite.usecase.ToggleActive(ctx, "missing", false)

	require.ErrorIs(suite.T(), err, model.ErrConfigNotFound)
	assert.Nil(suite.T(), cfg)
}

func (suite *CityConfigUsecaseTestSuite) TestDelete() {
	ctx := context.Background()

	cfg := &model.CityConfig{ID: "cfg-v2", CityID: "city-001", Version: 2}
	suite.mockRepo.On("GetByID", ctx, "cfg-v2").Return(cfg, nil)
	suite.mockRepo.On("Delete", ctx, "cfg-v2").Return(nil)

	err := suite.usecase.Delete(ctx, "cfg-v2")

	require.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CityConfigUsecaseTestSuite) TestGetActive_NoActiveConfig() {
	ctx := context.Background()

	suite.mockRepo.On("GetActive", ctx, "city-009").Return(nil, model.ErrNoActiveConfig)

	cfg, err := suite.usecase.GetActive(ctx, "city-009")

	require.ErrorIs(suite.T(), err, model.ErrNoActiveConfig)
	assert.Nil(suite.T(), cfg)
}

func (suite *CityConfigUsecaseTestSuite) TestListAll_IncludesInactiveVersions() {
	ctx := context.Background()

	all := []*model.CityConfig{
		{ID: "cfg-v2", CityID: "city-001", Version: 2, IsActive: true},
		{ID: "cfg-v1", CityID: "city-001", Version: 1, IsActive: false},
	}
	suite.mockRepo.On("ListAll", ctx).Return(all, nil)

	configs, err := suite.usecase.ListAll(ctx)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), configs, 2)
	assert.False(suite.T(), configs[1].IsActive)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListActive")
}

func TestCityConfigUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(CityConfigUsecaseTestSuite))
}
