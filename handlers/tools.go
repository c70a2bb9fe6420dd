package handlers

import (
	"context"
	"fmt"
	"strings"

	"tourdesk/models"
	"tourdesk/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ToolSet is the surface-agnostic implementation of every tool. The gin
// routes and the MCP server both dispatch into these methods, so the two
// surfaces cannot drift apart.
type ToolSet struct {
	Availability booking.AvailabilityService
	Bookings     booking.BookingService
	Logger       *zap.Logger
}

// ToolSpec names a tool and documents its preconditions and call order for
// the caller-facing tool listing.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Specs lists every tool in protocol order.
func Specs() []ToolSpec {
	return []ToolSpec{
		{booking.ToolLookupSlots, "List bookable slots for an experience within a date range, with date, guide price, and sold-out flag. Pure read; call this first."},
		{booking.ToolGetSlotConfig, "Fetch a slot's options and pricing detail plus the derived optionsComplete and isValid flags. Side-effect-free."},
		{booking.ToolAnswerOptions, "Submit answers for a slot's options. Repeatable; later answers overwrite earlier ones. Required before pricing is meaningful."},
		{booking.ToolGetSlotPricing, "Fetch a slot's pricing categories with unit price and min/max bounds. Check optionsComplete first; categories may be absent before that."},
		{booking.ToolSetSlotPricing, "Assign per-category participant counts. The slot becomes valid only when every category's bounds are satisfied and at least one unit is assigned."},
		{booking.ToolConfigureSlot, "Answer options and assign pricing in one call. Pricing is only attempted once options are complete; otherwise the call returns early with the remaining options."},
		{booking.ToolCreateBooking, "Open an empty booking basket with supplier auto-fill enabled. Call before attaching slots."},
		{booking.ToolAttachSlot, "Attach a VALID slot to a booking. An unconfigured slot is rejected with SLOT_NOT_CONFIGURED and the remediation steps."},
		{booking.ToolGetQuestions, "List unanswered booking, item, and person questions grouped by scope with their allowed choices."},
		{booking.ToolAnswerQuestions, "Submit the lead passenger name plus question answers in one call, then recompute canCommit."},
		{booking.ToolGetPaymentInfo, "Check whether consumer payment is required. Returns the payment intent and a checkout link, or reports the booking as on-account."},
		{booking.ToolCommitBooking, "Finalize the booking. Requires canCommit and, if payment is required, a completed payment. Set wait=true to block on supplier confirmation for up to 30 seconds."},
		{booking.ToolWaitConfirm, "Poll a committed booking for asynchronous supplier confirmation, bounded to 15 attempts at 2-second intervals."},
		{booking.ToolGetStatus, "Fetch the booking and recompute its phase fresh. The nextActions list tells you what to call next; empty means the flow is complete."},
		{booking.ToolCancelBooking, "Cancel a booking with the supplier. Terminal."},
	}
}

// Tool input types. The jsonschema tags feed the MCP input schemas; the
// HTTP surface binds the same JSON shapes.

type LookupSlotsInput struct {
	ExperienceID string `json:"experienceId" jsonschema:"identifier of the experience to search"`
	From         string `json:"from" jsonschema:"start of the date range, YYYY-MM-DD"`
	To           string `json:"to" jsonschema:"end of the date range, YYYY-MM-DD"`
}

type SlotInput struct {
	SlotID string `json:"slotId" jsonschema:"identifier of the slot"`
}

type AnswerOptionsInput struct {
	SlotID  string            `json:"slotId" jsonschema:"identifier of the slot"`
	Answers map[string]string `json:"answers" jsonschema:"option id to answer value"`
}

type SetPricingInput struct {
	SlotID string         `json:"slotId" jsonschema:"identifier of the slot"`
	Units  map[string]int `json:"units" jsonschema:"pricing category id to participant count"`
}

type ConfigureSlotInput struct {
	SlotID  string            `json:"slotId" jsonschema:"identifier of the slot"`
	Answers map[string]string `json:"answers,omitempty" jsonschema:"option id to answer value"`
	Units   map[string]int    `json:"units,omitempty" jsonschema:"pricing category id to participant count"`
}

type CreateBookingInput struct {
	Currency string `json:"currency,omitempty" jsonschema:"ISO currency code for the basket"`
}

type AttachSlotInput struct {
	BookingID string `json:"bookingId" jsonschema:"identifier of the booking"`
	SlotID    string `json:"slotId" jsonschema:"identifier of the slot; must be VALID"`
}

type BookingInput struct {
	BookingID string `json:"bookingId" jsonschema:"identifier of the booking"`
}

type AnswerQuestionsInput struct {
	BookingID string                  `json:"bookingId" jsonschema:"identifier of the booking"`
	LeadName  string                  `json:"leadName" jsonschema:"full name of the lead passenger"`
	Answers   []models.QuestionAnswer `json:"answers" jsonschema:"question id and value pairs"`
}

type CommitInput struct {
	BookingID string `json:"bookingId" jsonschema:"identifier of the booking"`
	Wait      bool   `json:"wait,omitempty" jsonschema:"block on supplier confirmation for up to 30 seconds"`
}

func success(narrative string, data any, next []models.NextAction) *models.ToolResult {
	return &models.ToolResult{
		RequestID:   uuid.New().String(),
		Narrative:   narrative,
		Data:        data,
		NextActions: next,
	}
}

func (t *ToolSet) failure(err error, cc booking.CallContext) *models.ToolResult {
	ce := booking.Classify(err, cc)
	t.Logger.Warn("tool call failed",
		zap.String("code", ce.Code),
		zap.String("bookingID", cc.BookingID),
		zap.String("slotID", cc.SlotID),
		zap.Error(err))
	return &models.ToolResult{
		RequestID: uuid.New().String(),
		IsError:   true,
		Error: &models.ToolError{
			Code:        ce.Code,
			Message:     ce.Message,
			Missing:     ce.Missing,
			NextActions: ce.NextActions,
		},
	}
}

func (t *ToolSet) LookupSlots(ctx context.Context, in LookupSlotsInput) *models.ToolResult {
	slots, err := t.Availability.SearchSlots(ctx, in.ExperienceID, in.From, in.To)
	if err != nil {
		return t.failure(err, booking.CallContext{})
	}
	open := 0
	for _, s := range slots {
		if !s.SoldOut {
			open++
		}
	}
	narrative := fmt.Sprintf("Found %d slots between %s and %s (%d bookable).", len(slots), in.From, in.To, open)
	return success(narrative, map[string]any{"slots": slots}, []models.NextAction{
		{Tool: booking.ToolGetSlotConfig, Reason: "pick a slot and fetch its configuration"},
	})
}

func (t *ToolSet) GetSlotConfig(ctx context.Context, in SlotInput) *models.ToolResult {
	cfg, err := t.Availability.GetSlotConfig(ctx, in.SlotID)
	if err != nil {
		return t.failure(err, booking.CallContext{SlotID: in.SlotID})
	}
	return success(slotNarrative(cfg), cfg, cfg.NextActions)
}

func (t *ToolSet) AnswerSlotOptions(ctx context.Context, in AnswerOptionsInput) *models.ToolResult {
	cfg, err := t.Availability.AnswerOptions(ctx, in.SlotID, in.Answers)
	if err != nil {
		return t.failure(err, booking.CallContext{SlotID: in.SlotID})
	}
	return success(slotNarrative(cfg), cfg, cfg.NextActions)
}

func (t *ToolSet) GetSlotPricing(ctx context.Context, in SlotInput) *models.ToolResult {
	cfg, err := t.Availability.GetPricing(ctx, in.SlotID)
	if err != nil {
		return t.failure(err, booking.CallContext{SlotID: in.SlotID})
	}
	narrative := slotNarrative(cfg)
	if !cfg.OptionsComplete {
		narrative = "Options are not complete yet; pricing categories may be absent or incomplete. " + narrative
	}
	return success(narrative, cfg, cfg.NextActions)
}

func (t *ToolSet) SetSlotPricing(ctx context.Context, in SetPricingInput) *models.ToolResult {
	cfg, err := t.Availability.AssignPricing(ctx, in.SlotID, in.Units)
	if err != nil {
		return t.failure(err, booking.CallContext{SlotID: in.SlotID})
	}
	return success(slotNarrative(cfg), cfg, cfg.NextActions)
}

func (t *ToolSet) ConfigureSlot(ctx context.Context, in ConfigureSlotInput) *models.ToolResult {
	cfg, err := t.Availability.ConfigureSlot(ctx, in.SlotID, in.Answers, in.Units)
	if err != nil {
		return t.failure(err, booking.CallContext{SlotID: in.SlotID})
	}
	return success(slotNarrative(cfg), cfg, cfg.NextActions)
}

func (t *ToolSet) CreateBooking(ctx context.Context, in CreateBookingInput) *models.ToolResult {
	st, err := t.Bookings.Create(ctx, in.Currency)
	if err != nil {
		return t.failure(err, booking.CallContext{})
	}
	narrative := fmt.Sprintf("Booking %s (%s) created.", st.Booking.ID, st.Booking.Code)
	return success(narrative, st, st.NextActions)
}

func (t *ToolSet) AttachSlot(ctx context.Context, in AttachSlotInput) *models.ToolResult {
	st, err := t.Bookings.AttachSlot(ctx, in.BookingID, in.SlotID)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID, SlotID: in.SlotID})
	}
	narrative := fmt.Sprintf("Slot %s attached to booking %s.", in.SlotID, in.BookingID)
	if st.Booking.CanCommit {
		narrative += " All required questions are already answered."
	} else {
		narrative += fmt.Sprintf(" %d required questions remain.", len(st.Missing))
	}
	return success(narrative, st, st.NextActions)
}

func (t *ToolSet) GetBookingQuestions(ctx context.Context, in BookingInput) *models.ToolResult {
	qr, err := t.Bookings.Questions(ctx, in.BookingID)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	total := 0
	for _, g := range qr.Groups {
		total += len(g.Questions)
	}
	narrative := fmt.Sprintf("%d unanswered questions across %d scopes.", total, len(qr.Groups))
	if total == 0 {
		narrative = "No unanswered questions remain."
	}
	return success(narrative, qr, qr.NextActions)
}

func (t *ToolSet) AnswerBookingQuestions(ctx context.Context, in AnswerQuestionsInput) *models.ToolResult {
	st, err := t.Bookings.AnswerQuestions(ctx, in.BookingID, in.LeadName, in.Answers)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	narrative := fmt.Sprintf("Answers recorded for booking %s.", in.BookingID)
	if st.Booking.CanCommit {
		narrative += " The booking is ready to commit."
	} else {
		narrative += fmt.Sprintf(" Still missing: %s.", strings.Join(st.Missing, ", "))
	}
	return success(narrative, st, st.NextActions)
}

func (t *ToolSet) GetPaymentInfo(ctx context.Context, in BookingInput, partner string) *models.ToolResult {
	info, err := t.Bookings.PaymentInfo(ctx, in.BookingID, partner)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	narrative := "No consumer payment is required; this is an on-account booking."
	if info.Required {
		narrative = fmt.Sprintf("Payment of %d %s is required before commit.", info.Intent.Amount, info.Intent.Currency)
		if info.CheckoutURL != "" {
			narrative += " A checkout link valid for 15 minutes is included."
		}
	}
	return success(narrative, info, info.NextActions)
}

func (t *ToolSet) CommitBooking(ctx context.Context, in CommitInput) *models.ToolResult {
	st, err := t.Bookings.Commit(ctx, in.BookingID, in.Wait)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	return success(commitNarrative(st), st, st.NextActions)
}

func (t *ToolSet) WaitConfirmation(ctx context.Context, in BookingInput) *models.ToolResult {
	st, err := t.Bookings.WaitConfirmation(ctx, in.BookingID)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	return success(commitNarrative(st), st, st.NextActions)
}

func (t *ToolSet) GetBookingStatus(ctx context.Context, in BookingInput) *models.ToolResult {
	st, err := t.Bookings.Status(ctx, in.BookingID)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	narrative := fmt.Sprintf("Booking %s is in phase %s.", in.BookingID, st.Phase)
	return success(narrative, st, st.NextActions)
}

func (t *ToolSet) CancelBooking(ctx context.Context, in BookingInput) *models.ToolResult {
	st, err := t.Bookings.Cancel(ctx, in.BookingID)
	if err != nil {
		return t.failure(err, booking.CallContext{BookingID: in.BookingID})
	}
	narrative := fmt.Sprintf("Booking %s cancelled.", in.BookingID)
	return success(narrative, st, st.NextActions)
}

func slotNarrative(cfg *booking.SlotConfig) string {
	switch cfg.Phase {
	case models.SlotValid:
		return fmt.Sprintf("Slot %s is valid and ready to attach.", cfg.Slot.ID)
	case models.SlotInvalid:
		return fmt.Sprintf("Slot %s has pricing assigned but a category's min/max bounds are violated.", cfg.Slot.ID)
	case models.SlotPricingUnset:
		return fmt.Sprintf("Slot %s has complete options; assign participant units next.", cfg.Slot.ID)
	case models.SlotOptionsComplete:
		return fmt.Sprintf("Slot %s has complete options; fetch pricing next.", cfg.Slot.ID)
	case models.SlotOptionsIncomplete:
		return fmt.Sprintf("Slot %s still has required options without answers.", cfg.Slot.ID)
	}
	return fmt.Sprintf("Slot %s selected; fetch its configuration.", cfg.Slot.ID)
}

func commitNarrative(st *booking.BookingStatus) string {
	switch st.Phase {
	case models.PhaseConfirmed:
		narrative := fmt.Sprintf("Booking %s is confirmed.", st.Booking.ID)
		if st.Booking.VoucherURL != "" {
			narrative += " Voucher: " + st.Booking.VoucherURL
		}
		return narrative
	case models.PhaseCommittedPending:
		return fmt.Sprintf("Booking %s is committed; the supplier has not confirmed yet. Check status later.", st.Booking.ID)
	case models.PhaseCancelled:
		return fmt.Sprintf("Booking %s was cancelled by the supplier.", st.Booking.ID)
	}
	return fmt.Sprintf("Booking %s is in phase %s.", st.Booking.ID, st.Phase)
}
