package usecase

import (
	"context"
	"fmt"
	"time"

	"wastetrack/internal/shared/eventbus"
	"wastetrack/internal/shared/logger"
	"wastetrack/internal/waste/domain/model"
	"wastetrack/internal/waste/domain/repository"

	"github.com/google/uuid"
)

// BillingUsecaseInterface covers monthly bill management and accrual.
type BillingUsecaseInterface interface {
	GetBilling(ctx context.Context, id string) (*model.Billing, error)
	ListBillings(ctx context.Context, filter repository.BillingFilter) ([]*model.Billing, error)
	MarkPaid(ctx context.Context, id, paymentMethod string) (*model.Billing, error)
	DeleteBilling(ctx context.Context, id string) error

	// AccrueCollection folds one pickup into the householder's bill for the
	// month it happened in, creating the bill if needed.
	AccrueCollection(ctx context.Context, rec *model.CollectionRecord) (*model.Billing, error)
}

// BillingUsecase accrues bills from collection records using the rates of
// the city's active configuration at pickup time. It subscribes to the
// collection.recorded event, so recording a pickup and billing it stay
// decoupled.
type BillingUsecase struct {
	repo     repository.BillingRepository
	rates    BillingRates
	dueDay   int
	eventBus eventbus.EventBusInterface
	logger   logger.Logger
}

// NewBillingUsecase creates the billing service and registers its accrual
// handler on the bus.
func NewBillingUsecase(
	repo repository.BillingRepository,
	rates BillingRates,
	dueDay int,
	bus eventbus.EventBusInterface,
	log logger.Logger,
) *BillingUsecase {
	if dueDay < 1 || dueDay > 28 {
		dueDay = 15
	}
	uc := &BillingUsecase{
		repo:     repo,
		rates:    rates,
		dueDay:   dueDay,
		eventBus: bus,
		logger:   log.WithComponent("billing_usecase"),
	}

	bus.Subscribe(eventbus.EventTypeCollectionRecorded, uc.handleCollectionRecorded)

	return uc
}

func (uc *BillingUsecase) handleCollectionRecorded(ctx context.Context, event eventbus.Event) error {
	rec, ok := event.Data().(*model.CollectionRecord)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", event.Data(), event.Type())
	}
	_, err := uc.AccrueCollection(ctx, rec)
	return err
}

// AccrueCollection folds a pickup into the householder's monthly bill. Under
// the flat model every month carries the base rate once; under weight-based
// the charge grows with each kilogram collected. Recyclable weight earns the
// configured credit per kilogram either way.
func (uc *BillingUsecase) AccrueCollection(ctx context.Context, rec *model.CollectionRecord) (*model.Billing, error) {
	cfg, err := uc.rates.GetActive(ctx, rec.CityID)
	if err != nil {
		return nil, fmt.Errorf("cannot accrue without an active configuration for city %s: %w", rec.CityID, err)
	}

	month := rec.CollectedAt.Format("2006-01")
	bill, err := uc.repo.GetByHouseholderMonth(ctx, rec.HouseholderID, month)
	if err != nil {
		if err != model.ErrBillingNotFound {
			return nil, err
		}
		bill = uc.newBill(rec.HouseholderID, rec.CityID, month, cfg)
		if err := uc.repo.CreateBilling(ctx, bill); err != nil {
			return nil, err
		}
	}

	bill.WasteWeight += rec.WasteWeight
	switch rec.WasteType {
	case model.WasteGeneral:
		bill.WasteBreakdown.General += rec.WasteWeight
	case model.WasteRecyclable:
		bill.WasteBreakdown.Recyclable += rec.WasteWeight
		bill.RecyclingCredits += rec.WasteWeight * cfg.RecyclingCredit
	case model.WasteOrganic:
		bill.WasteBreakdown.Organic += rec.WasteWeight
	case model.WasteEWaste:
		bill.WasteBreakdown.EWaste += rec.WasteWeight
	}

	if cfg.PricingModel == model.PricingWeightBased {
		bill.BaseCharge += rec.WasteWeight * cfg.BaseRate
	}
	bill.Recalculate()

	if err := uc.repo.UpdateBilling(ctx, bill); err != nil {
		return nil, err
	}

	uc.logger.WithFields(map[string]interface{}{
		"billingId":     bill.BillingID,
		"householderId": bill.HouseholderID,
		"month":         bill.Month,
		"total":         bill.TotalAmount,
	}).Debug("Bill accrued")

	return bill, nil
}

func (uc *BillingUsecase) newBill(householderID, cityID, month string, cfg *model.CityConfig) *model.Billing {
	baseCharge := 0.0
	if cfg.PricingModel == model.PricingFlat {
		baseCharge = cfg.BaseRate
	}

	monthStart, _ := time.Parse("2006-01", month)
	dueDate := monthStart.AddDate(0, 1, uc.dueDay-1)

	bill := &model.Billing{
		ID:            uuid.New().String(),
		BillingID:     model.MakeBillingID(month, householderID),
		HouseholderID: householderID,
		Month:         month,
		BaseCharge:    baseCharge,
		PaymentStatus: model.PaymentPending,
		DueDate:       dueDate,
		CityID:        cityID,
	}
	bill.Recalculate()
	return bill
}

// GetBilling retrieves a bill by its document ID
func (uc *BillingUsecase) GetBilling(ctx context.Context, id string) (*model.Billing, error) {
	return uc.repo.GetBillingByID(ctx, id)
}

// ListBillings returns bills matching the filter
func (uc *BillingUsecase) ListBillings(ctx context.Context, filter repository.BillingFilter) ([]*model.Billing, error) {
	return uc.repo.ListBillings(ctx, filter)
}

// MarkPaid settles a pending bill.
func (uc *BillingUsecase) MarkPaid(ctx context.Context, id, paymentMethod string) (*model.Billing, error) {
	bill, err := uc.repo.GetBillingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.PaymentStatus == model.PaymentPaid {
		return bill, nil
	}

	now := time.Now()
	bill.PaymentStatus = model.PaymentPaid
	bill.PaymentDate = &now
	bill.PaymentMethod = paymentMethod

	if err := uc.repo.UpdateBilling(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBilling removes a bill permanently.
func (uc *BillingUsecase) DeleteBilling(ctx context.Context, id string) error {
	return uc.repo.DeleteBilling(ctx, id)
}

// Ensure BillingUsecase implements BillingUsecaseInterface
var _ BillingUsecaseInterface = (*BillingUsecase)(nil)
