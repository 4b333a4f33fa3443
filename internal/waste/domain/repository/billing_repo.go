package repository

import (
	"context"

	"wastetrack/internal/waste/domain/model"
)

// BillingRepository defines persistence operations for monthly bills.
type BillingRepository interface {
	CreateBilling(ctx context.Context, bill *model.Billing) error
	GetBillingByID(ctx context.Context, id string) (*model.Billing, error)

	// GetByHouseholderMonth returns the bill for one householder and month,
	// or model.ErrBillingNotFound. Billing accrual upserts through this.
	GetByHouseholderMonth(ctx context.Context, householderID, month string) (*model.Billing, error)

	ListBillings(ctx context.Context, filter BillingFilter) ([]*model.Billing, error)
	UpdateBilling(ctx context.Context, bill *model.Billing) error
	DeleteBilling(ctx context.Context, id string) error
}

// BillingFilter narrows a billing listing. Zero-valued fields are ignored.
type BillingFilter struct {
	CityID        string
	HouseholderID string
	Month         string
	PaymentStatus model.PaymentStatus
}
