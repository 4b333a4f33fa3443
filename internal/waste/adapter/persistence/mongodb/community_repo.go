package mongodb

import (
	"context"
	"errors"
	"time"

	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWasteRequestRepository implements the WasteRequestRepository
// interface using MongoDB
type MongoWasteRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoWasteRequestRepository creates a new waste request repository and
// ensures its indexes exist.
func NewMongoWasteRequestRepository(db *mongo.Database) (*MongoWasteRequestRepository, error) {
	repo := &MongoWasteRequestRepository{collection: db.Collection("waste_requests")}

	ctx := context.Background()

	userIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, userIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateRequest inserts a new waste request document
func (r *MongoWasteRequestRepository) CreateRequest(ctx context.Context, req *model.WasteRequest) error {
	if req == nil {
		return errors.New("request cannot be nil")
	}

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, req)
	return err
}

// GetRequestByID retrieves a waste request by its document ID
func (r *MongoWasteRequestRepository) GetRequestByID(ctx context.Context, id string) (*model.WasteRequest, error) {
	var req model.WasteRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrWasteRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests returns waste requests, newest first, optionally narrowed to
// one user and status
func (r *MongoWasteRequestRepository) ListRequests(ctx context.Context, userID string, status model.RequestStatus) ([]*model.WasteRequest, error) {
	query := bson.M{}
	if userID != "" {
		query["userId"] = userID
	}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []*model.WasteRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateRequest replaces the mutable fields of an existing waste request
func (r *MongoWasteRequestRepository) UpdateRequest(ctx context.Context, req *model.WasteRequest) error {
	if req == nil {
		return errors.New("request cannot be nil")
	}

	req.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"wasteType":  req.WasteType,
		"quantity":   req.Quantity,
		"pickupDate": req.PickupDate,
		"address":    req.Address,
		"status":     req.Status,
		"notes":      req.Notes,
		"updated_at": req.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": req.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrWasteRequestNotFound
	}
	return nil
}

// DeleteRequest removes a waste request document permanently
func (r *MongoWasteRequestRepository) DeleteRequest(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrWasteRequestNotFound
	}
	return nil
}

// MongoInquiryRepository implements the InquiryRepository interface using
// MongoDB
type MongoInquiryRepository struct {
	collection *mongo.Collection
}

// NewMongoInquiryRepository creates a new inquiry repository and ensures its
// indexes exist.
func NewMongoInquiryRepository(db *mongo.Database) (*MongoInquiryRepository, error) {
	repo := &MongoInquiryRepository{collection: db.Collection("inquiries")}

	ctx := context.Background()

	userIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, userIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateInquiry inserts a new inquiry document
func (r *MongoInquiryRepository) CreateInquiry(ctx context.Context, inq *model.Inquiry) error {
	if inq == nil {
		return errors.New("inquiry cannot be nil")
	}

	now := time.Now()
	inq.CreatedAt = now
	inq.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, inq)
	return err
}

// GetInquiryByID retrieves an inquiry by its document ID
func (r *MongoInquiryRepository) GetInquiryByID(ctx context.Context, id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&inq)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrInquiryNotFound
		}
		return nil, err
	}
	return &inq, nil
}

// ListInquiries returns inquiries, newest first, optionally narrowed to one
// user and status
func (r *MongoInquiryRepository) ListInquiries(ctx context.Context, userID string, status model.InquiryStatus) ([]*model.Inquiry, error) {
	query := bson.M{}
	if userID != "" {
		query["userId"] = userID
	}
	if status != "" {
		query["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var inquiries []*model.Inquiry
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateInquiry replaces the mutable fields of an existing inquiry
func (r *MongoInquiryRepository) UpdateInquiry(ctx context.Context, inq *model.Inquiry) error {
	if inq == nil {
		return errors.New("inquiry cannot be nil")
	}

	inq.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"subject":      inq.Subject,
		"message":      inq.Message,
		"status":       inq.Status,
		"response":     inq.Response,
		"responseDate": inq.ResponseDate,
		"updated_at":   inq.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": inq.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrInquiryNotFound
	}
	return nil
}

// DeleteInquiry removes an inquiry document permanently
func (r *MongoInquiryRepository) DeleteInquiry(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrInquiryNotFound
	}
	return nil
}

// MongoAnnouncementRepository implements the AnnouncementRepository
// interface using MongoDB
type MongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new announcement repository and
// ensures its indexes exist.
func NewMongoAnnouncementRepository(db *mongo.Database) (*MongoAnnouncementRepository, error) {
	repo := &MongoAnnouncementRepository{collection: db.Collection("announcements")}

	ctx := context.Background()

	dateIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	}
	if _, err := repo.collection.Indexes().CreateOne(ctx, dateIndex); err != nil {
		return nil, err
	}

	return repo, nil
}

// CreateAnnouncement inserts a new announcement document
func (r *MongoAnnouncementRepository) CreateAnnouncement(ctx context.Context, ann *model.Announcement) error {
	if ann == nil {
		return errors.New("announcement cannot be nil")
	}

	now := time.Now()
	ann.CreatedAt = now
	ann.UpdatedAt = now
	if ann.Date.IsZero() {
		ann.Date = now
	}

	_, err := r.collection.InsertOne(ctx, ann)
	return err
}

// GetAnnouncementByID retrieves an announcement by its document ID
func (r *MongoAnnouncementRepository) GetAnnouncementByID(ctx context.Context, id string) (*model.Announcement, error) {
	var ann model.Announcement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ann)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &ann, nil
}

// ListAnnouncements returns announcements, newest first. With activeOnly
// set, it drops deactivated announcements and those past their expiry date.
func (r *MongoAnnouncementRepository) ListAnnouncements(ctx context.Context, activeOnly bool) ([]*model.Announcement, error) {
	query := bson.M{}
	if activeOnly {
		query["isActive"] = true
		query["$or"] = bson.A{
			bson.M{"expiryDate": bson.M{"$exists": false}},
			bson.M{"expiryDate": nil},
			bson.M{"expiryDate": bson.M{"$gte": time.Now()}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []*model.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// UpdateAnnouncement replaces the mutable fields of an existing announcement
func (r *MongoAnnouncementRepository) UpdateAnnouncement(ctx context.Context, ann *model.Announcement) error {
	if ann == nil {
		return errors.New("announcement cannot be nil")
	}

	ann.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":      ann.Title,
		"content":    ann.Content,
		"type":       ann.Type,
		"date":       ann.Date,
		"expiryDate": ann.ExpiryDate,
		"isActive":   ann.IsActive,
		"updated_at": ann.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": ann.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return model.ErrAnnouncementNotFound
	}
	return nil
}

// DeleteAnnouncement removes an announcement document permanently
func (r *MongoAnnouncementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrAnnouncementNotFound
	}
	return nil
}

// Interface conformance checks
var (
	_ repository.WasteRequestRepository = (*MongoWasteRequestRepository)(nil)
	_ repository.InquiryRepository      = (*MongoInquiryRepository)(nil)
	_ repository.AnnouncementRepository = (*MongoAnnouncementRepository)(nil)
)
