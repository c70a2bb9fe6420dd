package booking

import "tourdesk/models"

// Tool names, shared by the advisor, the HTTP surface, and the MCP surface.
const (
	ToolLookupSlots     = "lookup_slots"
	ToolGetSlotConfig   = "get_slot_config"
	ToolAnswerOptions   = "answer_slot_options"
	ToolGetSlotPricing  = "get_slot_pricing"
	ToolSetSlotPricing  = "set_slot_pricing"
	ToolConfigureSlot   = "configure_slot"
	ToolCreateBooking   = "create_booking"
	ToolAttachSlot      = "attach_slot"
	ToolGetQuestions    = "get_booking_questions"
	ToolAnswerQuestions = "answer_booking_questions"
	ToolGetPaymentInfo  = "get_payment_info"
	ToolCommitBooking   = "commit_booking"
	ToolWaitConfirm     = "wait_confirmation"
	ToolGetStatus       = "get_booking_status"
	ToolCancelBooking   = "cancel_booking"
)

func act(tool, reason string) models.NextAction {
	return models.NextAction{Tool: tool, Reason: reason}
}

// NextForBooking computes the ordered tool calls a caller should attempt
// next, given the booking's current phase. An empty list signals flow
// completion.
func NextForBooking(phase models.BookingPhase) []models.NextAction {
	switch phase {
	case models.PhaseDraft:
		return []models.NextAction{
			act(ToolAttachSlot, "the booking is empty; attach a valid slot"),
		}
	case models.PhaseNeedsQuestions:
		return []models.NextAction{
			act(ToolGetQuestions, "required questions are unanswered; fetch them first"),
			act(ToolAnswerQuestions, "submit the lead passenger name and answers"),
		}
	case models.PhaseReadyToCommit:
		return []models.NextAction{
			act(ToolGetPaymentInfo, "check whether consumer payment is required before committing"),
			act(ToolCommitBooking, "all required questions are answered; commit the booking"),
		}
	case models.PhaseNeedsPayment:
		return []models.NextAction{
			act(ToolGetPaymentInfo, "payment is required; fetch the payment intent or checkout link"),
		}
	case models.PhaseCommittedPending:
		return []models.NextAction{
			act(ToolWaitConfirm, "the supplier is confirming asynchronously; wait or poll"),
			act(ToolGetStatus, "re-check the booking later"),
		}
	case models.PhaseConfirmed:
		return nil
	case models.PhaseCancelled:
		return nil
	}
	return []models.NextAction{act(ToolGetStatus, "re-fetch the booking to determine the current phase")}
}

// NextForSlot computes the next tool calls for a slot being configured.
func NextForSlot(phase models.SlotPhase) []models.NextAction {
	switch phase {
	case models.SlotSelected:
		return []models.NextAction{
			act(ToolGetSlotConfig, "fetch the slot's options and pricing detail"),
		}
	case models.SlotOptionsIncomplete:
		return []models.NextAction{
			act(ToolAnswerOptions, "required options are unanswered"),
		}
	case models.SlotOptionsComplete:
		return []models.NextAction{
			act(ToolGetSlotPricing, "options are complete; fetch pricing categories"),
		}
	case models.SlotPricingUnset:
		return []models.NextAction{
			act(ToolSetSlotPricing, "assign participant counts to pricing categories"),
		}
	case models.SlotInvalid:
		return []models.NextAction{
			act(ToolSetSlotPricing, "assigned units violate a category's min/max bounds; reassign"),
		}
	case models.SlotValid:
		return []models.NextAction{
			act(ToolAttachSlot, "the slot is valid; attach it to a booking"),
		}
	}
	return nil
}

// SlotRemediation is the four-step configuration sequence returned with
// SLOT_NOT_CONFIGURED errors.
func SlotRemediation() []models.NextAction {
	return []models.NextAction{
		act(ToolAnswerOptions, "answer every required slot option"),
		act(ToolGetSlotPricing, "fetch pricing categories once options are complete"),
		act(ToolSetSlotPricing, "assign participant units within each category's bounds"),
		act(ToolGetSlotConfig, "verify the slot reports isValid before attaching"),
	}
}
