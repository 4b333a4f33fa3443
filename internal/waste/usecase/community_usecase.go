package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "wastetrack/internal/shared/errors"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"github.com/google/uuid"
)

var (
	ErrNotRequestOwner   = errors.New("you can only modify your own requests")
	ErrRequestNotPending = errors.New("only pending requests can be modified")
	ErrEmptyResponse     = errors.New("response text is required")
)

// CommunityUsecaseInterface covers waste requests, inquiries and
// announcements.
type CommunityUsecaseInterface interface {
	CreateRequest(ctx context.Context, req *model.WasteRequest) (*model.WasteRequest, error)
	GetRequest(ctx context.Context, id string) (*model.WasteRequest, error)
	ListRequests(ctx context.Context, userID string, status model.RequestStatus) ([]*model.WasteRequest, error)
	UpdateOwnRequest(ctx context.Context, userID string, req *model.WasteRequest) (*model.WasteRequest, error)
	SetRequestStatus(ctx context.Context, id string, status model.RequestStatus) (*model.WasteRequest, error)
	CancelOwnRequest(ctx context.Context, userID, id string) error

	CreateInquiry(ctx context.Context, inq *model.Inquiry) (*model.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (*model.Inquiry, error)
	ListInquiries(ctx context.Context, userID string, status model.InquiryStatus) ([]*model.Inquiry, error)
	RespondToInquiry(ctx context.Context, id, response string) (*model.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error

	CreateAnnouncement(ctx context.Context, ann *model.Announcement) (*model.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*model.Announcement, error)
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]*model.Announcement, error)
	UpdateAnnouncement(ctx context.Context, ann *model.Announcement) (*model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
}

// CommunityUsecase implements the householder-facing request, inquiry and
// announcement flows.
type CommunityUsecase struct {
	requests      repository.WasteRequestRepository
	inquiries     repository.InquiryRepository
	announcements repository.AnnouncementRepository
	logger        logger.Logger
}

// NewCommunityUsecase creates the community service.
func NewCommunityUsecase(
	requests repository.WasteRequestRepository,
	inquiries repository.InquiryRepository,
	announcements repository.AnnouncementRepository,
	log logger.Logger,
) *CommunityUsecase {
	return &CommunityUsecase{
		requests:      requests,
		inquiries:     inquiries,
		announcements: announcements,
		logger:        log.WithComponent("community_usecase"),
	}
}

// CreateRequest files an ad-hoc pickup request. New requests always start
// pending regardless of what the caller sent.
func (uc *CommunityUsecase) CreateRequest(ctx context.Context, req *model.WasteRequest) (*model.WasteRequest, error) {
	req.Status = model.RequestPending
	if err := req.ValidateFields(); err != nil {
		return nil, err
	}

	req.ID = uuid.New().String()
	if err := uc.requests.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetRequest retrieves a waste request by its document ID
func (uc *CommunityUsecase) GetRequest(ctx context.Context, id string) (*model.WasteRequest, error) {
	return uc.requests.GetRequestByID(ctx, id)
}

// ListRequests returns waste requests, optionally narrowed to one user and
// status
func (uc *CommunityUsecase) ListRequests(ctx context.Context, userID string, status model.RequestStatus) ([]*model.WasteRequest, error) {
	return uc.requests.ListRequests(ctx, userID, status)
}

// UpdateOwnRequest lets a householder edit their own request while it is
// still pending.
func (uc *CommunityUsecase) UpdateOwnRequest(ctx context.Context, userID string, req *model.WasteRequest) (*model.WasteRequest, error) {
	existing, err := uc.requests.GetRequestByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotRequestOwner
	}
	if existing.Status != model.RequestPending {
		return nil, ErrRequestNotPending
	}

	req.UserID = existing.UserID
	req.Status = existing.Status
	if err := req.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.requests.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}
	return uc.requests.GetRequestByID(ctx, req.ID)
}

// SetRequestStatus moves a request through its life. Staff only.
func (uc *CommunityUsecase) SetRequestStatus(ctx context.Context, id string, status model.RequestStatus) (*model.WasteRequest, error) {
	switch status {
	case model.RequestPending, model.RequestApproved, model.RequestCompleted, model.RequestCancelled:
	default:
		return nil, apperrors.NewValidationError("invalid request status")
	}

	req, err := uc.requests.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Status = status
	if err := uc.requests.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// CancelOwnRequest lets a householder withdraw their own pending request.
func (uc *CommunityUsecase) CancelOwnRequest(ctx context.Context, userID, id string) error {
	existing, err := uc.requests.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotRequestOwner
	}
	if existing.Status != model.RequestPending {
		return ErrRequestNotPending
	}

	existing.Status = model.RequestCancelled
	return uc.requests.UpdateRequest(ctx, existing)
}

// CreateInquiry files a question or complaint. New inquiries start pending.
func (uc *CommunityUsecase) CreateInquiry(ctx context.Context, inq *model.Inquiry) (*model.Inquiry, error) {
	inq.Status = model.InquiryPending
	inq.Response = ""
	inq.ResponseDate = nil
	if err := inq.ValidateFields(); err != nil {
		return nil, err
	}

	inq.ID = uuid.New().String()
	if err := uc.inquiries.CreateInquiry(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

// GetInquiry retrieves an inquiry by its document ID
func (uc *CommunityUsecase) GetInquiry(ctx context.Context, id string) (*model.Inquiry, error) {
	return uc.inquiries.GetInquiryByID(ctx, id)
}

// ListInquiries returns inquiries, optionally narrowed to one user and
// status
func (uc *CommunityUsecase) ListInquiries(ctx context.Context, userID string, status model.InquiryStatus) ([]*model.Inquiry, error) {
	return uc.inquiries.ListInquiries(ctx, userID, status)
}

// RespondToInquiry records a staff answer and marks the inquiry responded.
func (uc *CommunityUsecase) RespondToInquiry(ctx context.Context, id, response string) (*model.Inquiry, error) {
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyResponse
	}

	inq, err := uc.inquiries.GetInquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inq.Response = response
	inq.ResponseDate = &now
	inq.Status = model.InquiryResponded

	if err := uc.inquiries.UpdateInquiry(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

// DeleteInquiry removes an inquiry permanently.
func (uc *CommunityUsecase) DeleteInquiry(ctx context.Context, id string) error {
	return uc.inquiries.DeleteInquiry(ctx, id)
}

// CreateAnnouncement publishes a notice. Type defaults to general and new
// announcements are active.
func (uc *CommunityUsecase) CreateAnnouncement(ctx context.Context, ann *model.Announcement) (*model.Announcement, error) {
	if ann.Type == "" {
		ann.Type = model.AnnouncementGeneral
	}
	ann.IsActive = true
	if err := ann.ValidateFields(); err != nil {
		return nil, err
	}

	ann.ID = uuid.New().String()
	if err := uc.announcements.CreateAnnouncement(ctx, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

// GetAnnouncement retrieves an announcement by its document ID
func (uc *CommunityUsecase) GetAnnouncement(ctx context.Context, id string) (*model.Announcement, error) {
	return uc.announcements.GetAnnouncementByID(ctx, id)
}

// ListAnnouncements returns announcements, newest first
func (uc *CommunityUsecase) ListAnnouncements(ctx context.Context, activeOnly bool) ([]*model.Announcement, error) {
	return uc.announcements.ListAnnouncements(ctx, activeOnly)
}

// UpdateAnnouncement applies the provided changes to an announcement.
func (uc *CommunityUsecase) UpdateAnnouncement(ctx context.Context, ann *model.Announcement) (*model.Announcement, error) {
	if err := ann.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.announcements.UpdateAnnouncement(ctx, ann); err != nil {
		return nil, err
	}
	return uc.announcements.GetAnnouncementByID(ctx, ann.ID)
}

// DeleteAnnouncement removes an announcement permanently.
func (uc *CommunityUsecase) DeleteAnnouncement(ctx context.Context, id string) error {
	return uc.announcements.DeleteAnnouncement(ctx, id)
}

// Ensure CommunityUsecase implements CommunityUsecaseInterface
var _ CommunityUsecaseInterface = (*CommunityUsecase)(nil)
