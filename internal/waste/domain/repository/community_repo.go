package repository

import (
	"context"

	"wastetrack/internal/waste/domain/model"
)

// WasteRequestRepository defines persistence operations for ad-hoc pickup
// requests.
type WasteRequestRepository interface {
	CreateRequest(ctx context.Context, req *model.WasteRequest) error
	GetRequestByID(ctx context.Context, id string) (*model.WasteRequest, error)
	ListRequests(ctx context.Context, userID string, status model.RequestStatus) ([]*model.WasteRequest, error)
	UpdateRequest(ctx context.Context, req *model.WasteRequest) error
	DeleteRequest(ctx context.Context, id string) error
}

// InquiryRepository defines persistence operations for householder
// inquiries.
type InquiryRepository interface {
	CreateInquiry(ctx context.Context, inq *model.Inquiry) error
	GetInquiryByID(ctx context.Context, id string) (*model.Inquiry, error)
	ListInquiries(ctx context.Context, userID string, status model.InquiryStatus) ([]*model.Inquiry, error)
	UpdateInquiry(ctx context.Context, inq *model.Inquiry) error
	DeleteInquiry(ctx context.Context, id string) error
}

// AnnouncementRepository defines persistence operations for public
// announcements.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, ann *model.Announcement) error
	GetAnnouncementByID(ctx context.Context, id string) (*model.Announcement, error)

	// ListAnnouncements returns announcements newest first. When activeOnly
	// is set, expired and deactivated announcements are filtered out.
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]*model.Announcement, error)

	UpdateAnnouncement(ctx context.Context, ann *model.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
}
