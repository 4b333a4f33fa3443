package model_test

import (
	"testing"

	"wastetrack/internal/waste/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() model.ConfigDraft {
	return model.ConfigDraft{
		CityID:          "city-001",
		CityName:        "Colombo",
		WasteTypes:      []model.WasteType{model.WasteGeneral, model.WasteRecyclable},
		PricingModel:    model.PricingWeightBased,
		BaseRate:        2.5,
		RecyclingCredit: 0.5,
		PickupFrequency: map[string]model.PickupFrequency{
			"Zone A": model.PickupWeekly,
			"Zone B": model.PickupBiWeekly,
		},
	}
}

func TestConfigDraftValidate_ValidDraft(t *testing.T) {
	ve := validDraft().Validate()
	assert.False(t, ve.HasErrors())
	assert.Empty(t, ve.Messages())
}

func TestConfigDraftValidate_ReportsAllViolationsAtOnce(t *testing.T) {
	draft := model.ConfigDraft{
		CityID:          "city-001",
		CityName:        "",
		WasteTypes:      []model.WasteType{},
		PricingModel:    model.PricingFlat,
		BaseRate:        -5,
		RecyclingCredit: 0,
		PickupFrequency: map[string]model.PickupFrequency{},
	}

	ve := draft.Validate()
	require.True(t, ve.HasErrors())

	msgs := ve.Messages()
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs, "City name is required")
	assert.Contains(t, msgs, "At least one waste type is required")
	assert.Contains(t, msgs, "Base rate cannot be negative")
	assert.Contains(t, msgs, "At least one zone pickup frequency is required")
}

func TestConfigDraftValidate_NegativeRecyclingCredit(t *testing.T) {
	draft := validDraft()
	draft.RecyclingCredit = -1

	ve := draft.Validate()
	require.True(t, ve.HasErrors())
	assert.Contains(t, ve.Messages(), "Recycling credit cannot be negative")
}

func TestConfigDraftValidate_InvalidPricingModel(t *testing.T) {
	draft := validDraft()
	draft.PricingModel = "tiered"

	ve := draft.Validate()
	require.True(t, ve.HasErrors())
	assert.Contains(t, ve.Messages(), "Invalid pricing model")
}

func TestConfigDraftValidate_UnknownWasteType(t *testing.T) {
	draft := validDraft()
	draft.WasteTypes = append(draft.WasteTypes, "nuclear")

	ve := draft.Validate()
	require.True(t, ve.HasErrors())
	assert.Contains(t, ve.Messages(), "Invalid waste type: nuclear")
}

func TestConfigDraftValidate_UnknownPickupFrequency(t *testing.T) {
	draft := validDraft()
	draft.PickupFrequency["Zone C"] = "hourly"

	ve := draft.Validate()
	require.True(t, ve.HasErrors())
	assert.Contains(t, ve.Messages(), "Invalid pickup frequency for zone Zone C")
}

func TestConfigDraftValidate_WhitespaceCityName(t *testing.T) {
	draft := validDraft()
	draft.CityName = "   "

	ve := draft.Validate()
	require.True(t, ve.HasErrors())
	assert.Contains(t, ve.Messages(), "City name is required")
}

func TestBillingRecalculate(t *testing.T) {
	bill := model.Billing{BaseCharge: 120, RecyclingCredits: 17.5}
	bill.Recalculate()
	assert.Equal(t, 102.5, bill.TotalAmount)
}

func TestMakeBillingID(t *testing.T) {
	assert.Equal(t, "BILL-2026-08-abcdef", model.MakeBillingID("2026-08", "user-abcdef"))
	assert.Equal(t, "BILL-2026-08-u1", model.MakeBillingID("2026-08", "u1"))
}
