package usecase

import (
	"context"
	"fmt"
	"strings"

	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/adapter/persistence"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"github.com/google/uuid"
)

// CityConfigUsecaseInterface defines the city-configuration versioning
// operations.
type CityConfigUsecaseInterface interface {
	Create(ctx context.Context, draft model.ConfigDraft, createdBy string) (*model.CityConfig, error)
	Update(ctx context.Context, cityID string, draft model.ConfigDraft, updatedBy string) (*model.CityConfig, error)
	GetActive(ctx context.Context, cityID string) (*model.CityConfig, error)
	ListActive(ctx context.Context) ([]*model.CityConfig, error)
	ListAll(ctx context.Context) ([]*model.CityConfig, error)
	ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error)
	ToggleActive(ctx context.Context, id string, active bool) (*model.CityConfig, error)
	Delete(ctx context.Context, id string) error
}

// CityConfigUsecase implements the versioning service. Configurations are
// append-only: Create and Update both run through appendVersion, which
// validates the draft, computes version = highest existing + 1 and lets the
// repository swap the active flag transactionally.
type CityConfigUsecase struct {
	repo     repository.CityConfigRepository
	cache    *persistence.ConfigCache
	eventBus eventbus.EventBusInterface
	logger   logger.Logger
}

// NewCityConfigUsecase creates the versioning service. cache may be nil.
func NewCityConfigUsecase(
	repo repository.CityConfigRepository,
	cache *persistence.ConfigCache,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *CityConfigUsecase {
	return &CityConfigUsecase{
		repo:     repo,
		cache:    cache,
		eventBus: bus,
		logger:   log.WithComponent("cityconfig_usecase"),
	}
}

// appendVersion is the single write path shared by Create and Update.
func (uc *CityConfigUsecase) appendVersion(ctx context.Context, draft model.ConfigDraft, createdBy string) (*model.CityConfig, error) {
	if ve := draft.Validate(); ve.HasErrors() {
		return nil, ve
	}

	versions, err := uc.repo.ListVersions(ctx, draft.CityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing versions: %w", err)
	}

	version := 1
	if len(versions) > 0 {
		version = versions[0].Version + 1
	}

	cfg := &model.CityConfig{
		ID:              uuid.New().String(),
		CityID:          draft.CityID,
		CityName:        strings.TrimSpace(draft.CityName),
		WasteTypes:      draft.WasteTypes,
		PricingModel:    draft.PricingModel,
		BaseRate:        draft.BaseRate,
		RecyclingCredit: draft.RecyclingCredit,
		PickupFrequency: draft.PickupFrequency,
		Version:         version,
		IsActive:        true,
		CreatedBy:       createdBy,
	}

	if err := uc.repo.CreateVersion(ctx, cfg); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, cfg.CityID)
	}

	uc.logger.WithFields(map[string]interface{}{
		"cityId":  cfg.CityID,
		"version": cfg.Version,
	}).Info("Configuration version created")

	uc.eventBus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeConfigActivated, cfg))

	return cfg, nil
}

// Create publishes the first configuration of a city, or the next version
// when one already exists.
func (uc *CityConfigUsecase) Create(ctx context.Context, draft model.ConfigDraft, createdBy string) (*model.CityConfig, error) {
	if strings.TrimSpace(draft.CityID) == "" {
		ve := apperrors.NewValidationErrors()
		ve.Add("cityId", "City ID is required", draft.CityID)
		return nil, ve
	}
	return uc.appendVersion(ctx, draft, createdBy)
}

// Update appends a new version for an existing city. The cityId comes from
// the URL, never from the body, so a draft cannot be redirected at another
// city.
func (uc *CityConfigUsecase) Update(ctx context.Context, cityID string, draft model.ConfigDraft, updatedBy string) (*model.CityConfig, error) {
	if _, err := uc.repo.GetActive(ctx, cityID); err != nil {
		return nil, err
	}
	draft.CityID = cityID
	return uc.appendVersion(ctx, draft, updatedBy)
}

// GetActive returns the city's active configuration, read through the cache.
func (uc *CityConfigUsecase) GetActive(ctx context.Context, cityID string) (*model.CityConfig, error) {
	if uc.cache != nil {
		if cfg, ok := uc.cache.Get(ctx, cityID); ok {
			return cfg, nil
		}
	}

	cfg, err := uc.repo.GetActive(ctx, cityID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, cfg)
	}
	return cfg, nil
}

// ListActive returns every city's active configuration, newest first.
func (uc *CityConfigUsecase) ListActive(ctx context.Context) ([]*model.CityConfig, error) {
	return uc.repo.ListActive(ctx)
}

// ListAll returns every configuration document across all cities, inactive
// versions included, for the administrative overview.
func (uc *CityConfigUsecase) ListAll(ctx context.Context) ([]*model.CityConfig, error) {
	return uc.repo.ListAll(ctx)
}

// ListVersions returns a city's full version history, highest version first.
func (uc *CityConfigUsecase) ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error) {
	return uc.repo.ListVersions(ctx, cityID)
}

// ToggleActive flips one version's active flag. Activating a historical
// version deactivates the current active one in the same transaction, so a
// city never ends up with two active configurations.
func (uc *CityConfigUsecase) ToggleActive(ctx context.Context, id string, active bool) (*model.CityConfig, error) {
	cfg, err := uc.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, cfg.CityID)
	}

	eventType := eventbus.EventTypeConfigDeactivated
	if active {
		eventType = eventbus.EventTypeConfigActivated
	}
	uc.eventBus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventType, cfg))

	return cfg, nil
}

// Delete removes a single configuration version.
func (uc *CityConfigUsecase) Delete(ctx context.Context, id string) error {
	cfg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, cfg.CityID)
	}

	uc.logger.WithFields(map[string]interface{}{
		"cityId":  cfg.CityID,
		"version": cfg.Version,
	}).Info("Configuration version deleted")

	return nil
}

// BillingRates exposes the subset of the active configuration billing needs.
// Keeping billing behind this interface stops it from depending on the whole
// versioning service.
type BillingRates interface {
	GetActive(ctx context.Context, cityID string) (*model.CityConfig, error)
}

var (
	_ CityConfigUsecaseInterface = (*CityConfigUsecase)(nil)
	_ BillingRates               = (*CityConfigUsecase)(nil)
)
