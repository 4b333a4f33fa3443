package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCityConfigRepository implements CityConfigRepository using MongoDB.
//
// The at-most-one-active invariant is enforced twice: at write time by
// deactivating the previous active version inside the same transaction as
// the insert, and at the storage layer by a partial unique index on cityId
// restricted to documents where isActive is true. Even a buggy caller
// cannot commit a second active version for the same city.
type MongoCityConfigRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoCityConfigRepository creates the repository and ensures its
// indexes exist.
func NewMongoCityConfigRepository(client *mongo.Client, db *mongo.Database) (*MongoCityConfigRepository, error) {
	repo := &MongoCityConfigRepository{
		client:     client,
		collection: db.Collection("city_configurations"),
	}

	ctx := context.Background()

	activeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "cityId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isActive": true}),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, activeIndex); err != nil {
		return nil, err
	}

	versionIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "cityId", Value: 1}, {Key: "version", Value: -1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, versionIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateVersion deactivates the city's current active version and inserts
// cfg as the new head, both inside one transaction when the deployment
// supports them. Standalone mongod instances fall back to sequential
// writes; the partial unique index still guards the invariant there.
func (r *MongoCityConfigRepository) CreateVersion(ctx context.Context, cfg *model.CityConfig) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	cfg.IsActive = true

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		return r.deactivateAndInsert(sc, cfg)
	})
	if transactionsUnsupported(err) {
		err = r.deactivateAndInsert(ctx, cfg)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrConfigVersionConflict
		}
		return err
	}
	return nil
}

func (r *MongoCityConfigRepository) deactivateAndInsert(ctx context.Context, cfg *model.CityConfig) error {
	deactivate := bson.M{"$set": bson.M{"isActive": false, "updated_at": cfg.UpdatedAt}}
	if _, err := r.collection.UpdateMany(ctx, bson.M{"cityId": cfg.CityID, "isActive": true}, deactivate); err != nil {
		return err
	}
	_, err := r.collection.InsertOne(ctx, cfg)
	return err
}

// GetActive returns the single active configuration for a city.
func (r *MongoCityConfigRepository) GetActive(ctx context.Context, cityID string) (*model.CityConfig, error) {
	if cityID == "" {
		return nil, errors.New("cityId cannot be empty")
	}

	var cfg model.CityConfig
	err := r.collection.FindOne(ctx, bson.M{"cityId": cityID, "isActive": true}).Decode(&cfg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrNoActiveConfig
		}
		return nil, err
	}
	return &cfg, nil
}

// GetByID returns a configuration version by its document ID.
func (r *MongoCityConfigRepository) GetByID(ctx context.Context, id string) (*model.CityConfig, error) {
	var cfg model.CityConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cfg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// ListActive returns each city's active configuration, newest first.
func (r *MongoCityConfigRepository) ListActive(ctx context.Context) ([]*model.CityConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.CityConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// ListAll returns every configuration document across all cities, inactive
// versions included, newest-created first.
func (r *MongoCityConfigRepository) ListAll(ctx context.Context) ([]*model.CityConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.CityConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// ListVersions returns every version for a city, highest version first.
func (r *MongoCityConfigRepository) ListVersions(ctx context.Context, cityID string) ([]*model.CityConfig, error) {
	if cityID == "" {
		return nil, errors.New("cityId cannot be empty")
	}

	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"cityId": cityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.CityConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// SetActive flips one version's active flag. Activating a version first
// deactivates whichever version currently holds the flag for that city, so
// the invariant survives reactivation of a historical version.
func (r *MongoCityConfigRepository) SetActive(ctx context.Context, id string, active bool) (*model.CityConfig, error) {
	target, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	flip := func(sc context.Context) error {
		if active {
			deactivate := bson.M{"$set": bson.M{"isActive": false, "updated_at": now}}
			filter := bson.M{"cityId": target.CityID, "isActive": true, "_id": bson.M{"$ne": id}}
			if _, err := r.collection.UpdateMany(sc, filter, deactivate); err != nil {
				return err
			}
		}
		update := bson.M{"$set": bson.M{"isActive": active, "updated_at": now}}
		result, err := r.collection.UpdateOne(sc, bson.M{"_id": id}, update)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return model.ErrConfigNotFound
		}
		return nil
	}

	err = r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		return flip(sc)
	})
	if transactionsUnsupported(err) {
		err = flip(ctx)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, model.ErrConfigVersionConflict
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a single configuration version.
func (r *MongoCityConfigRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrConfigNotFound
	}
	return nil
}

// withTransaction runs fn inside a MongoDB session transaction.
func (r *MongoCityConfigRepository) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			if abortErr := session.AbortTransaction(sc); abortErr != nil {
				return abortErr
			}
			return err
		}
		return session.CommitTransaction(sc)
	})
}

// transactionsUnsupported detects the server refusing multi-document
// transactions, which standalone deployments do.
func transactionsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported") ||
		strings.Contains(msg, "IllegalOperation")
}

// Ensure MongoCityConfigRepository implements CityConfigRepository
var _ repository.CityConfigRepository = (*MongoCityConfigRepository)(nil)
