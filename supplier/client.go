package supplier

import (
	"context"
	"errors"
	"fmt"

	"tourdesk/models"
)

// Client is the interface to the supplier's booking API. Implementations
// own their own timeouts and transport behavior; callers drive retries.
type Client interface {
	// Availability.
	SearchSlots(ctx context.Context, experienceID, from, to string) ([]models.Slot, error)
	GetSlot(ctx context.Context, slotID string) (*models.Slot, error)
	SetSlotOptions(ctx context.Context, slotID string, answers map[string]string) (*models.Slot, error)
	SetSlotPricing(ctx context.Context, slotID string, units map[string]int) (*models.Slot, error)

	// Booking basket.
	CreateBooking(ctx context.Context, opts CreateBookingOptions) (*models.Booking, error)
	AddBookingItem(ctx context.Context, bookingID, slotID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	SetBookingAnswers(ctx context.Context, bookingID, leadName string, answers []models.QuestionAnswer) (*models.Booking, error)
	CommitBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	// Payment.
	GetPaymentIntent(ctx context.Context, bookingID string) (*models.PaymentIntent, error)
}

// CreateBookingOptions controls basket creation. AutoFill asks the supplier
// to pre-answer every question it can resolve on its own.
type CreateBookingOptions struct {
	AutoFill bool
	Currency string
}

// Supplier error codes we know how to act on. Anything else surfaces as an
// unclassified *Error.
const (
	CodeSlotNotBookable      = "AVAILABILITY_NOT_BOOKABLE"
	CodePaymentNotCompleted  = "PAYMENT_NOT_COMPLETED"
	CodeQuestionsIncomplete  = "QUESTIONS_INCOMPLETE"
	CodePaymentUnavailable   = "PAYMENT_INTENT_UNAVAILABLE"
	CodeBookingNotFound      = "BOOKING_NOT_FOUND"
	CodeAvailabilityNotFound = "AVAILABILITY_NOT_FOUND"
)

// Error is a typed supplier failure carrying the supplier's error code
// verbatim alongside its message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError extracts a typed supplier error from an error chain.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	se, ok := AsError(err)
	return ok && se.Code == code
}

// IsSlotNotBookable reports whether the supplier rejected an attach because
// the slot is not yet valid for booking.
func IsSlotNotBookable(err error) bool { return hasCode(err, CodeSlotNotBookable) }

// IsPaymentNotCompleted reports whether a commit was rejected for missing
// payment.
func IsPaymentNotCompleted(err error) bool { return hasCode(err, CodePaymentNotCompleted) }

// IsQuestionsIncomplete reports whether a commit was rejected for
// unanswered required questions.
func IsQuestionsIncomplete(err error) bool { return hasCode(err, CodeQuestionsIncomplete) }

// IsPaymentUnavailable reports the supplier's "no payment intent for this
// booking" signature, which means the booking is on-account.
func IsPaymentUnavailable(err error) bool { return hasCode(err, CodePaymentUnavailable) }
