package repository

import (
	"context"

	"wastetrack/internal/waste/domain/model"
)

// BinRepository defines persistence operations for collection bins.
type BinRepository interface {
	CreateBin(ctx context.Context, bin *model.Bin) error
	GetBinByID(ctx context.Context, id string) (*model.Bin, error)
	ListBins(ctx context.Context, filter BinFilter) ([]*model.Bin, error)
	UpdateBin(ctx context.Context, bin *model.Bin) error
	DeleteBin(ctx context.Context, id string) error
}

// BinFilter narrows a bin listing. Zero-valued fields are ignored.
type BinFilter struct {
	CityID        string
	Zone          string
	HouseholderID string
	Status        model.BinStatus
}

// TruckRepository defines persistence operations for fleet trucks.
type TruckRepository interface {
	CreateTruck(ctx context.Context, truck *model.Truck) error
	GetTruckByID(ctx context.Context, id string) (*model.Truck, error)
	ListTrucks(ctx context.Context, cityID string, status model.TruckStatus) ([]*model.Truck, error)
	UpdateTruck(ctx context.Context, truck *model.Truck) error
	DeleteTruck(ctx context.Context, id string) error
}

// RouteRepository defines persistence operations for collection routes.
type RouteRepository interface {
	CreateRoute(ctx context.Context, route *model.Route) error
	GetRouteByID(ctx context.Context, id string) (*model.Route, error)
	ListRoutes(ctx context.Context, status model.RouteStatus) ([]*model.Route, error)
	UpdateRoute(ctx context.Context, route *model.Route) error
	DeleteRoute(ctx context.Context, id string) error
}

// CollectionRecordRepository defines persistence operations for pickup
// records.
type CollectionRecordRepository interface {
	CreateRecord(ctx context.Context, rec *model.CollectionRecord) error
	GetRecordByID(ctx context.Context, id string) (*model.CollectionRecord, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]*model.CollectionRecord, error)
	UpdateRecord(ctx context.Context, rec *model.CollectionRecord) error
}

// RecordFilter narrows a collection record listing. Zero-valued fields are
// ignored.
type RecordFilter struct {
	CityID        string
	RouteID       string
	CollectorID   string
	HouseholderID string
}
