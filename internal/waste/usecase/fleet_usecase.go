package usecase

import (
	"context"
	"fmt"

	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"github.com/google/uuid"
)

// FleetUsecaseInterface covers bins, trucks, routes and collection records.
type FleetUsecaseInterface interface {
	CreateBin(ctx context.Context, bin *model.Bin) (*model.Bin, error)
	GetBin(ctx context.Context, id string) (*model.Bin, error)
	ListBins(ctx context.Context, filter repository.BinFilter) ([]*model.Bin, error)
	UpdateBin(ctx context.Context, bin *model.Bin) (*model.Bin, error)
	DeleteBin(ctx context.Context, id string) error

	CreateTruck(ctx context.Context, truck *model.Truck) (*model.Truck, error)
	GetTruck(ctx context.Context, id string) (*model.Truck, error)
	ListTrucks(ctx context.Context, cityID string, status model.TruckStatus) ([]*model.Truck, error)
	UpdateTruck(ctx context.Context, truck *model.Truck) (*model.Truck, error)
	DeleteTruck(ctx context.Context, id string) error

	CreateRoute(ctx context.Context, route *model.Route) (*model.Route, error)
	GetRoute(ctx context.Context, id string) (*model.Route, error)
	ListRoutes(ctx context.Context, status model.RouteStatus) ([]*model.Route, error)
	UpdateRoute(ctx context.Context, route *model.Route) (*model.Route, error)
	DeleteRoute(ctx context.Context, id string) error

	RecordCollection(ctx context.Context, rec *model.CollectionRecord) (*model.CollectionRecord, error)
	GetRecord(ctx context.Context, id string) (*model.CollectionRecord, error)
	ListRecords(ctx context.Context, filter repository.RecordFilter) ([]*model.CollectionRecord, error)
	UpdateRecord(ctx context.Context, rec *model.CollectionRecord) (*model.CollectionRecord, error)
}

// FleetUsecase implements bin, truck, route and collection record
// management. Recording a collection publishes an event that billing
// consumes to accrue the householder's monthly bill.
type FleetUsecase struct {
	bins     repository.BinRepository
	trucks   repository.TruckRepository
	routes   repository.RouteRepository
	records  repository.CollectionRecordRepository
	eventBus eventbus.EventBusInterface
	logger   logger.Logger
}

// NewFleetUsecase creates the fleet service.
func NewFleetUsecase(
	bins repository.BinRepository,
	trucks repository.TruckRepository,
	routes repository.RouteRepository,
	records repository.CollectionRecordRepository,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *FleetUsecase {
	return &FleetUsecase{
		bins:     bins,
		trucks:   trucks,
		routes:   routes,
		records:  records,
		eventBus: bus,
		logger:   log.WithComponent("fleet_usecase"),
	}
}

// CreateBin registers a new bin. Status defaults to active.
func (uc *FleetUsecase) CreateBin(ctx context.Context, bin *model.Bin) (*model.Bin, error) {
	if bin.Status == "" {
		bin.Status = model.BinActive
	}
	if err := bin.ValidateFields(); err != nil {
		return nil, err
	}

	bin.ID = uuid.New().String()
	if err := uc.bins.CreateBin(ctx, bin); err != nil {
		return nil, err
	}
	return bin, nil
}

// GetBin retrieves a bin by its document ID
func (uc *FleetUsecase) GetBin(ctx context.Context, id string) (*model.Bin, error) {
	return uc.bins.GetBinByID(ctx, id)
}

// ListBins returns bins matching the filter
func (uc *FleetUsecase) ListBins(ctx context.Context, filter repository.BinFilter) ([]*model.Bin, error) {
	return uc.bins.ListBins(ctx, filter)
}

// UpdateBin applies the provided changes to an existing bin.
func (uc *FleetUsecase) UpdateBin(ctx context.Context, bin *model.Bin) (*model.Bin, error) {
	existing, err := uc.bins.GetBinByID(ctx, bin.ID)
	if err != nil {
		return nil, err
	}

	// binId and cityId are immutable after registration.
	bin.BinID = existing.BinID
	bin.CityID = existing.CityID
	if err := bin.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.bins.UpdateBin(ctx, bin); err != nil {
		return nil, err
	}
	return uc.bins.GetBinByID(ctx, bin.ID)
}

// DeleteBin removes a bin permanently.
func (uc *FleetUsecase) DeleteBin(ctx context.Context, id string) error {
	return uc.bins.DeleteBin(ctx, id)
}

// CreateTruck registers a new truck. Status defaults to available.
func (uc *FleetUsecase) CreateTruck(ctx context.Context, truck *model.Truck) (*model.Truck, error) {
	if truck.Status == "" {
		truck.Status = model.TruckAvailable
	}
	if err := truck.ValidateFields(); err != nil {
		return nil, err
	}

	truck.ID = uuid.New().String()
	if err := uc.trucks.CreateTruck(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// GetTruck retrieves a truck by its document ID
func (uc *FleetUsecase) GetTruck(ctx context.Context, id string) (*model.Truck, error) {
	return uc.trucks.GetTruckByID(ctx, id)
}

// ListTrucks returns trucks for a city, optionally filtered by status
func (uc *FleetUsecase) ListTrucks(ctx context.Context, cityID string, status model.TruckStatus) ([]*model.Truck, error) {
	return uc.trucks.ListTrucks(ctx, cityID, status)
}

// UpdateTruck applies the provided changes to an existing truck.
func (uc *FleetUsecase) UpdateTruck(ctx context.Context, truck *model.Truck) (*model.Truck, error) {
	existing, err := uc.trucks.GetTruckByID(ctx, truck.ID)
	if err != nil {
		return nil, err
	}

	truck.TruckID = existing.TruckID
	truck.CityID = existing.CityID
	if err := truck.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.trucks.UpdateTruck(ctx, truck); err != nil {
		return nil, err
	}
	return uc.trucks.GetTruckByID(ctx, truck.ID)
}

// DeleteTruck removes a truck permanently.
func (uc *FleetUsecase) DeleteTruck(ctx context.Context, id string) error {
	return uc.trucks.DeleteTruck(ctx, id)
}

// CreateRoute schedules a collection route. The referenced truck must exist
// and is marked assigned.
func (uc *FleetUsecase) CreateRoute(ctx context.Context, route *model.Route) (*model.Route, error) {
	if route.Status == "" {
		route.Status = model.RouteScheduled
	}
	if err := route.ValidateFields(); err != nil {
		return nil, err
	}

	truck, err := uc.trucks.GetTruckByID(ctx, route.Truck)
	if err != nil {
		return nil, err
	}

	route.ID = uuid.New().String()
	if err := uc.routes.CreateRoute(ctx, route); err != nil {
		return nil, err
	}

	truck.Status = model.TruckAssigned
	if err := uc.trucks.UpdateTruck(ctx, truck); err != nil {
		uc.logger.WithFields(map[string]interface{}{
			"truckId": truck.ID,
			"routeId": route.ID,
			"error":   err.Error(),
		}).Warn("Route created but truck status update failed")
	}

	return route, nil
}

// GetRoute retrieves a route by its document ID
func (uc *FleetUsecase) GetRoute(ctx context.Context, id string) (*model.Route, error) {
	return uc.routes.GetRouteByID(ctx, id)
}

// ListRoutes returns routes, optionally filtered by status
func (uc *FleetUsecase) ListRoutes(ctx context.Context, status model.RouteStatus) ([]*model.Route, error) {
	return uc.routes.ListRoutes(ctx, status)
}

// UpdateRoute applies the provided changes to a route. Completing a route
// releases its truck back to available.
func (uc *FleetUsecase) UpdateRoute(ctx context.Context, route *model.Route) (*model.Route, error) {
	if err := route.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.routes.UpdateRoute(ctx, route); err != nil {
		return nil, err
	}

	if route.Status == model.RouteCompleted {
		if truck, err := uc.trucks.GetTruckByID(ctx, route.Truck); err == nil {
			truck.Status = model.TruckAvailable
			if err := uc.trucks.UpdateTruck(ctx, truck); err != nil {
				uc.logger.WithFields(map[string]interface{}{
					"truckId": truck.ID,
					"routeId": route.ID,
					"error":   err.Error(),
				}).Warn("Route completed but truck release failed")
			}
		}
	}

	return uc.routes.GetRouteByID(ctx, route.ID)
}

// DeleteRoute removes a route permanently.
func (uc *FleetUsecase) DeleteRoute(ctx context.Context, id string) error {
	return uc.routes.DeleteRoute(ctx, id)
}

// RecordCollection stores one pickup and publishes it for billing accrual.
// The referenced bin must exist; its householder is trusted over whatever
// the caller sent.
func (uc *FleetUsecase) RecordCollection(ctx context.Context, rec *model.CollectionRecord) (*model.CollectionRecord, error) {
	bin, err := uc.bins.GetBinByID(ctx, rec.BinID)
	if err != nil {
		return nil, err
	}
	rec.HouseholderID = bin.HouseholderID
	rec.CityID = bin.CityID
	if rec.WasteType == "" {
		rec.WasteType = bin.WasteType
	}
	rec.Collected = true

	if err := rec.ValidateFields(); err != nil {
		return nil, err
	}

	rec.ID = uuid.New().String()
	if err := uc.records.CreateRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store collection record: %w", err)
	}

	uc.logger.WithFields(map[string]interface{}{
		"recordId":      rec.ID,
		"binId":         rec.BinID,
		"householderId": rec.HouseholderID,
		"weight":        rec.WasteWeight,
	}).Info("Collection recorded")

	uc.eventBus.PublishAndForget(ctx, eventbus.NewBasicEvent(eventbus.EventTypeCollectionRecorded, rec))

	return rec, nil
}

// GetRecord retrieves a collection record by its document ID
func (uc *FleetUsecase) GetRecord(ctx context.Context, id string) (*model.CollectionRecord, error) {
	return uc.records.GetRecordByID(ctx, id)
}

// ListRecords returns collection records matching the filter
func (uc *FleetUsecase) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]*model.CollectionRecord, error) {
	return uc.records.ListRecords(ctx, filter)
}

// UpdateRecord applies corrections to a stored record.
func (uc *FleetUsecase) UpdateRecord(ctx context.Context, rec *model.CollectionRecord) (*model.CollectionRecord, error) {
	existing, err := uc.records.GetRecordByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	rec.RouteID = existing.RouteID
	rec.BinID = existing.BinID
	rec.CollectorID = existing.CollectorID
	rec.HouseholderID = existing.HouseholderID
	rec.CityID = existing.CityID
	if err := rec.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.records.UpdateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return uc.records.GetRecordByID(ctx, rec.ID)
}

// Ensure FleetUsecase implements FleetUsecaseInterface
var _ FleetUsecaseInterface = (*FleetUsecase)(nil)
