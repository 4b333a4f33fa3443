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

// MongoBillingRepository implements the BillingRepository interface using
// MongoDB
type MongoBillingRepository struct {
	collection *mongo.Collection
}

// NewMongoBillingRepository creates a new billing repository and ensures its
// indexes exist. One bill per householder per month is a hard storage rule.
func NewMongoBillingRepository(db *mongo.Database) (*MongoBillingRepository, error) {
	repo := &MongoBillingRepository{collection: db.Collection("billings")}

	ctx := context.Background()

	monthIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "householderId", Value: 1}, {Key: "month", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, monthIndex); err != nil {
		return nil, err
	}

	statusIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "paymentStatus", Value: 1}, {Key: "dueDate", Value: 1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, statusIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateBilling inserts a new billing document
func (r *MongoBillingRepository) CreateBilling(ctx context.Context, bill *model.Billing) error {
	if bill == nil {
		return errors.New("billing cannot be nil")
	}

	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("a bill already exists for this householder and month")
		}
		return err
	}
	return nil
}

// GetBillingByID retrieves a bill by its document ID
func (r *MongoBillingRepository) GetBillingByID(ctx context.Context, id string) (*model.Billing, error) {
	var bill model.Billing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrBillingNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// GetByHouseholderMonth retrieves the single bill for one householder and
// month
func (r *MongoBillingRepository) GetByHouseholderMonth(ctx context.Context, householderID, month string) (*model.Billing, error) {
	var bill model.Billing
	err := r.collection.FindOne(ctx, bson.M{"householderId": householderID, "month": month}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrBillingNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// ListBillings returns bills matching the filter, newest month first
func (r *MongoBillingRepository) ListBillings(ctx context.Context, filter repository.BillingFilter) ([]*model.Billing, error) {
	query := bson.M{}
	if filter.CityID != "" {
		query["cityId"] = filter.CityID
	}
	if filter.HouseholderID != "" {
		query["householderId"] = filter.HouseholderID
	}
	if filter.Month != "" {
		query["month"] = filter.Month
	}
	if filter.PaymentStatus != "" {
		query["paymentStatus"] = filter.PaymentStatus
	}

	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*model.Billing
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// UpdateBilling replaces the mutable fields of an existing bill
func (r *MongoBillingRepository) UpdateBilling(ctx context.Context, bill *model.Billing) error {
	if bill == nil {
		return errors.New("billing cannot be nil")
	}

	bill.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"wasteWeight":      bill.WasteWeight,
		"wasteBreakdown":   bill.WasteBreakdown,
		"baseCharge":       bill.BaseCharge,
		"recyclingCredits": bill.RecyclingCredits,
		"totalAmount":      bill.TotalAmount,
		"paymentStatus":    bill.PaymentStatus,
		"paymentDate":      bill.PaymentDate,
		"paymentMethod":    bill.PaymentMethod,
		"dueDate":          bill.DueDate,
		"updated_at":       bill.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": bill.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrBillingNotFound
	}
	return nil
}

// DeleteBilling removes a billing document permanently
func (r *MongoBillingRepository) DeleteBilling(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrBillingNotFound
	}
	return nil
}

// Ensure MongoBillingRepository implements BillingRepository
var _ repository.BillingRepository = (*MongoBillingRepository)(nil)
