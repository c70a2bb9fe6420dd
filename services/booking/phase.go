package booking

import "tourdesk/models"

// Phase inference lives here and only here. Both functions are pure: they
// read a snapshot and return a value, so recomputing on unchanged input
// always yields the same answer.

// OptionsComplete reports whether every required option carries a non-empty
// answer. A slot without options is trivially complete.
func OptionsComplete(s *models.Slot) bool {
	for _, opt := range s.Options {
		if opt.Required && opt.Answer == "" {
			return false
		}
	}
	return true
}

// SlotIsValid reports whether the slot is eligible for attachment: options
// complete, pricing present, every category's assigned units within its
// min/max bounds, and at least one unit assigned somewhere.
func SlotIsValid(s *models.Slot) bool {
	if !OptionsComplete(s) || len(s.Categories) == 0 {
		return false
	}
	total := 0
	for _, cat := range s.Categories {
		if cat.Units < cat.MinUnits {
			return false
		}
		if cat.MaxUnits > 0 && cat.Units > cat.MaxUnits {
			return false
		}
		total += cat.Units
	}
	return total > 0
}

// SlotPhaseOf derives the slot's configuration phase from its snapshot.
func SlotPhaseOf(s *models.Slot) models.SlotPhase {
	if len(s.Options) == 0 && len(s.Categories) == 0 {
		return models.SlotSelected
	}
	if !OptionsComplete(s) {
		return models.SlotOptionsIncomplete
	}
	if len(s.Categories) == 0 {
		return models.SlotOptionsComplete
	}
	assigned := 0
	for _, cat := range s.Categories {
		assigned += cat.Units
	}
	if assigned == 0 {
		return models.SlotPricingUnset
	}
	if !SlotIsValid(s) {
		return models.SlotInvalid
	}
	return models.SlotValid
}

// BookingPhaseOf derives the booking's phase from the latest fetch. It is a
// function of the supplier state, item count, canCommit, and paymentState
// fields; nothing is read from a cache.
func BookingPhaseOf(b *models.Booking) models.BookingPhase {
	switch b.State {
	case models.BookingConfirmed:
		return models.PhaseConfirmed
	case models.BookingCancelled:
		return models.PhaseCancelled
	case models.BookingPending:
		return models.PhaseCommittedPending
	}
	if len(b.Items) == 0 {
		return models.PhaseDraft
	}
	if !b.CanCommit {
		return models.PhaseNeedsQuestions
	}
	if b.PaymentState == models.PaymentRequired {
		return models.PhaseNeedsPayment
	}
	return models.PhaseReadyToCommit
}
