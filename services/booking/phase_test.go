package booking

import (
	"testing"

	"tourdesk/models"

	"github.com/stretchr/testify/assert"
)

func configuredSlot() *models.Slot {
	return &models.Slot{
		ID:   "av-1",
		Date: "2026-09-12",
		Options: []models.SlotOption{
			{ID: "opt-time", Label: "Time", Required: true, Answer: "09:00", Choices: []string{"09:00", "14:00"}},
			{ID: "opt-lang", Label: "Language", Required: false},
		},
		Categories: []models.PricingCategory{
			{ID: "cat-adult", Label: "Adult", Units: 2, MinUnits: 1, MaxUnits: 10},
			{ID: "cat-child", Label: "Child", Units: 0, MinUnits: 0, MaxUnits: 10},
		},
	}
}

func TestSlotPhaseProgression(t *testing.T) {
	slot := &models.Slot{ID: "av-1"}
	assert.Equal(t, models.SlotSelected, SlotPhaseOf(slot))

	slot.Options = []models.SlotOption{{ID: "opt-time", Label: "Time", Required: true}}
	assert.Equal(t, models.SlotOptionsIncomplete, SlotPhaseOf(slot))

	slot.Options[0].Answer = "09:00"
	assert.Equal(t, models.SlotOptionsComplete, SlotPhaseOf(slot))

	slot.Categories = []models.PricingCategory{{ID: "cat-adult", MinUnits: 1, MaxUnits: 4}}
	assert.Equal(t, models.SlotPricingUnset, SlotPhaseOf(slot))

	slot.Categories[0].Units = 5
	assert.Equal(t, models.SlotInvalid, SlotPhaseOf(slot))

	slot.Categories[0].Units = 2
	assert.Equal(t, models.SlotValid, SlotPhaseOf(slot))
}

// A slot can never be valid while its options are incomplete, whatever the
// pricing looks like.
func TestSlotValidRequiresOptionsComplete(t *testing.T) {
	slot := configuredSlot()
	assert.True(t, SlotIsValid(slot))

	slot.Options[0].Answer = ""
	assert.False(t, OptionsComplete(slot))
	assert.False(t, SlotIsValid(slot))
}

func TestSlotInvalidWhenBelowMinUnits(t *testing.T) {
	slot := configuredSlot()
	slot.Categories[0].Units = 0
	assert.False(t, SlotIsValid(slot))
	assert.Equal(t, models.SlotPricingUnset, SlotPhaseOf(slot))
}

func TestSlotInvalidWhenNoUnitsAssigned(t *testing.T) {
	slot := configuredSlot()
	slot.Categories[0].MinUnits = 0
	slot.Categories[0].Units = 0
	assert.False(t, SlotIsValid(slot))
}

func TestSlotMaxUnitsZeroMeansUnbounded(t *testing.T) {
	slot := configuredSlot()
	slot.Categories[0].MaxUnits = 0
	slot.Categories[0].Units = 50
	assert.True(t, SlotIsValid(slot))
}

func TestBookingPhaseOf(t *testing.T) {
	cases := []struct {
		name    string
		booking models.Booking
		want    models.BookingPhase
	}{
		{"open empty", models.Booking{State: models.BookingOpen}, models.PhaseDraft},
		{"open with items, questions missing", models.Booking{
			State: models.BookingOpen,
			Items: []models.BookingItem{{ID: "it-1"}},
		}, models.PhaseNeedsQuestions},
		{"open, committable", models.Booking{
			State:     models.BookingOpen,
			Items:     []models.BookingItem{{ID: "it-1"}},
			CanCommit: true,
		}, models.PhaseReadyToCommit},
		{"open, committable, payment required", models.Booking{
			State:        models.BookingOpen,
			Items:        []models.BookingItem{{ID: "it-1"}},
			CanCommit:    true,
			PaymentState: models.PaymentRequired,
		}, models.PhaseNeedsPayment},
		{"pending", models.Booking{State: models.BookingPending}, models.PhaseCommittedPending},
		{"confirmed", models.Booking{State: models.BookingConfirmed}, models.PhaseConfirmed},
		{"cancelled", models.Booking{State: models.BookingCancelled}, models.PhaseCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BookingPhaseOf(&tc.booking))
		})
	}
}

// Phase inference is a pure function: recomputing on unchanged input yields
// identical output.
func TestBookingPhaseIsPure(t *testing.T) {
	b := models.Booking{
		State:        models.BookingOpen,
		Items:        []models.BookingItem{{ID: "it-1"}},
		CanCommit:    true,
		PaymentState: models.PaymentRequired,
	}
	first := BookingPhaseOf(&b)
	second := BookingPhaseOf(&b)
	assert.Equal(t, first, second)
	assert.Equal(t, models.PhaseNeedsPayment, first)
}

func TestConfirmedPhaseHasNoNextActions(t *testing.T) {
	assert.Empty(t, NextForBooking(models.PhaseConfirmed))
	assert.NotEmpty(t, NextForBooking(models.PhaseDraft))
	assert.NotEmpty(t, NextForBooking(models.PhaseCommittedPending))
}
