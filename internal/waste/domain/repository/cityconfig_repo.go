package repository

import (
	"context"

	"wastetrack/internal/waste/domain/model"
)

// CityConfigRepository defines persistence operations for city configuration
// versions. Versions are append-only: an update never mutates an existing
// document, it deactivates the current active version and inserts a new one.
type CityConfigRepository interface {
	// CreateVersion atomically deactivates the city's current active version
	// (if any) and inserts cfg as the new active head. Implementations must
	// run both writes in one transaction where the deployment supports it.
	CreateVersion(ctx context.Context, cfg *model.CityConfig) error

	// GetActive returns the single active configuration for a city, or
	// model.ErrNoActiveConfig when none exists.
	GetActive(ctx context.Context, cityID string) (*model.CityConfig, error)

	// GetByID returns a configuration version by its document ID.
	GetByID(ctx context.Context, id string) (*model.CityConfig, error)

	// ListActive returns the active configuration of every city, newest first.
	ListActive(ctx context.Context) ([]*model.CityConfig, error)

	// ListAll returns every configuration document across all cities, active
	// or not, newest-created first.
	ListAll(ctx context.Context) ([]*model.CityConfig, error)

	// ListVersions returns every version for a city, highest version first.
	ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error)

	// SetActive flips the isActive flag of one version. Activating a version
	// deactivates the city's current active version in the same transaction,
	// preserving the at-most-one-active invariant.
	SetActive(ctx context.Context, id string, active bool) (*model.CityConfig, error)

	// Delete removes a single configuration version.
	Delete(ctx context.Context, id string) error
}
