package mongodb

import (
	"context"
	"errors"
	"time"

	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBinRepository implements the BinRepository interface using MongoDB
type MongoBinRepository struct {
	collection *mongo.Collection
}

// NewMongoBinRepository creates a new bin repository and ensures its
// indexes exist.
func NewMongoBinRepository(db *mongo.Database) (*MongoBinRepository, error) {
	repo := &MongoBinRepository{collection: db.Collection("bins")}

	ctx := context.Background()

	binIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "binId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, binIDIndex); err != nil {
		return nil, err
	}

	zoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "cityId", Value: 1}, {Key: "zone", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, zoneIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateBin inserts a new bin document
func (r *MongoBinRepository) CreateBin(ctx context.Context, bin *model.Bin) error {
	if bin == nil {
		return errors.New("bin cannot be nil")
	}

	now := time.Now()
	bin.CreatedAt = now
	bin.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, bin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("bin ID already in use")
		}
		return err
	}
	return nil
}

// GetBinByID retrieves a bin by its document ID
func (r *MongoBinRepository) GetBinByID(ctx context.Context, id string) (*model.Bin, error) {
	var bin model.Bin
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrBinNotFound
		}
		return nil, err
	}
	return &bin, nil
}

// ListBins returns bins matching the filter, newest first
func (r *MongoBinRepository) ListBins(ctx context.Context, filter repository.BinFilter) ([]*model.Bin, error) {
	query := bson.M{}
	if filter.CityID != "" {
		query["cityId"] = filter.CityID
	}
	if filter.Zone != "" {
		query["zone"] = filter.Zone
	}
	if filter.HouseholderID != "" {
		query["householderId"] = filter.HouseholderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bins []*model.Bin
	if err := cursor.All(ctx, &bins); err != nil {
		return nil, err
	}
	return bins, nil
}

// UpdateBin replaces the mutable fields of an existing bin
func (r *MongoBinRepository) UpdateBin(ctx context.Context, bin *model.Bin) error {
	if bin == nil {
		return errors.New("bin cannot be nil")
	}

	bin.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"address":       bin.Address,
		"zone":          bin.Zone,
		"wasteType":     bin.WasteType,
		"status":        bin.Status,
		"householderId": bin.HouseholderID,
		"updated_at":    bin.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": bin.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrBinNotFound
	}
	return nil
}

// DeleteBin removes a bin document permanently
func (r *MongoBinRepository) DeleteBin(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrBinNotFound
	}
	return nil
}

// MongoTruckRepository implements the TruckRepository interface using MongoDB
type MongoTruckRepository struct {
	collection *mongo.Collection
}

// NewMongoTruckRepository creates a new truck repository and ensures its
// indexes exist.
func NewMongoTruckRepository(db *mongo.Database) (*MongoTruckRepository, error) {
	repo := &MongoTruckRepository{collection: db.Collection("trucks")}

	ctx := context.Background()

	truckIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "truckId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, truckIDIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateTruck inserts a new truck document
func (r *MongoTruckRepository) CreateTruck(ctx context.Context, truck *model.Truck) error {
	if truck == nil {
		return errors.New("truck cannot be nil")
	}

	now := time.Now()
	truck.CreatedAt = now
	truck.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, truck)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("truck ID already in use")
		}
		return err
	}
	return nil
}

// GetTruckByID retrieves a truck by its document ID
func (r *MongoTruckRepository) GetTruckByID(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&truck)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrTruckNotFound
		}
		return nil, err
	}
	return &truck, nil
}

// ListTrucks returns trucks for a city, optionally filtered by status
func (r *MongoTruckRepository) ListTrucks(ctx context.Context, cityID string, status model.TruckStatus) ([]*model.Truck, error) {
	query := bson.M{}
	if cityID != "" {
		query["cityId"] = cityID
	}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "truckId", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trucks []*model.Truck
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

// UpdateTruck replaces the mutable fields of an existing truck
func (r *MongoTruckRepository) UpdateTruck(ctx context.Context, truck *model.Truck) error {
	if truck == nil {
		return errors.New("truck cannot be nil")
	}

	truck.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"plateNumber":     truck.PlateNumber,
		"capacity":        truck.Capacity,
		"status":          truck.Status,
		"currentLocation": truck.CurrentLocation,
		"updated_at":      truck.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": truck.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrTruckNotFound
	}
	return nil
}

// DeleteTruck removes a truck document permanently
func (r *MongoTruckRepository) DeleteTruck(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrTruckNotFound
	}
	return nil
}

// MongoRouteRepository implements the RouteRepository interface using MongoDB
type MongoRouteRepository struct {
	collection *mongo.Collection
}

// NewMongoRouteRepository creates a new route repository and ensures its
// indexes exist.
func NewMongoRouteRepository(db *mongo.Database) (*MongoRouteRepository, error) {
	repo := &MongoRouteRepository{collection: db.Collection("routes")}

	ctx := context.Background()

	dateIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "status", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, dateIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateRoute inserts a new route document
func (r *MongoRouteRepository) CreateRoute(ctx context.Context, route *model.Route) error {
	if route == nil {
		return errors.New("route cannot be nil")
	}

	now := time.Now()
	route.CreatedAt = now
	route.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, route)
	return err
}

// GetRouteByID retrieves a route by its document ID
func (r *MongoRouteRepository) GetRouteByID(ctx context.Context, id string) (*model.Route, error) {
	var route model.Route
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrRouteNotFound
		}
		return nil, err
	}
	return &route, nil
}

// ListRoutes returns routes, most recent date first, optionally filtered by
// status
func (r *MongoRouteRepository) ListRoutes(ctx context.Context, status model.RouteStatus) ([]*model.Route, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routes []*model.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// UpdateRoute replaces the mutable fields of an existing route
func (r *MongoRouteRepository) UpdateRoute(ctx context.Context, route *model.Route) error {
	if route == nil {
		return errors.New("route cannot be nil")
	}

	route.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"truck":      route.Truck,
		"zones":      route.Zones,
		"date":       route.Date,
		"status":     route.Status,
		"updated_at": route.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": route.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrRouteNotFound
	}
	return nil
}

// DeleteRoute removes a route document permanently
func (r *MongoRouteRepository) DeleteRoute(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrRouteNotFound
	}
	return nil
}

// MongoCollectionRecordRepository implements the CollectionRecordRepository
// interface using MongoDB
type MongoCollectionRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoCollectionRecordRepository creates a new collection record
// repository and ensures its indexes exist.
func NewMongoCollectionRecordRepository(db *mongo.Database) (*MongoCollectionRecordRepository, error) {
	repo := &MongoCollectionRecordRepository{collection: db.Collection("collection_records")}

	ctx := context.Background()

	householderIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "householderId", Value: 1}, {Key: "collectedAt", Value: -1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, householderIndex); err != nil {
		return nil, err
	}

	routeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "routeId", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, routeIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateRecord inserts a new collection record document
func (r *MongoCollectionRecordRepository) CreateRecord(ctx context.Context, rec *model.CollectionRecord) error {
	if rec == nil {
		return errors.New("record cannot be nil")
	}

	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.CollectedAt.IsZero() {
		rec.CollectedAt = now
	}

	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

// GetRecordByID retrieves a collection record by its document ID
func (r *MongoCollectionRecordRepository) GetRecordByID(ctx context.Context, id string) (*model.CollectionRecord, error) {
	var rec model.CollectionRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrCollectionRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListRecords returns collection records matching the filter, most recent
// pickup first
func (r *MongoCollectionRecordRepository) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]*model.CollectionRecord, error) {
	query := bson.M{}
	if filter.CityID != "" {
		query["cityId"] = filter.CityID
	}
	if filter.RouteID != "" {
		query["routeId"] = filter.RouteID
	}
	if filter.CollectorID != "" {
		query["collectorId"] = filter.CollectorID
	}
	if filter.HouseholderID != "" {
		query["householderId"] = filter.HouseholderID
	}

	opts := options.Find().SetSort(bson.D{{Key: "collectedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.CollectionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecord replaces the mutable fields of an existing record
func (r *MongoCollectionRecordRepository) UpdateRecord(ctx context.Context, rec *model.CollectionRecord) error {
	if rec == nil {
		return errors.New("record cannot be nil")
	}

	rec.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"wasteWeight": rec.WasteWeight,
		"wasteType":   rec.WasteType,
		"notes":       rec.Notes,
		"collected":   rec.Collected,
		"issue":       rec.Issue,
		"updated_at":  rec.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": rec.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrCollectionRecordNotFound
	}
	return nil
}

// Interface conformance checks
var (
	_ repository.BinRepository              = (*MongoBinRepository)(nil)
	_ repository.TruckRepository            = (*MongoTruckRepository)(nil)
	_ repository.RouteRepository            = (*MongoRouteRepository)(nil)
	_ repository.CollectionRecordRepository = (*MongoCollectionRecordRepository)(nil)
)
