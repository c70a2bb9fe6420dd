package booking

import (
	"errors"
	"fmt"
	"strings"

	"tourdesk/models"
	"tourdesk/supplier"
)

// Error codes surfaced to callers. The set is closed: anything the
// classifier does not recognize degrades to CodeSupplierError with the raw
// message preserved.
const (
	CodeSlotNotConfigured = "SLOT_NOT_CONFIGURED"
	CodePaymentRequired   = "PAYMENT_REQUIRED"
	CodeMissingQuestions  = "MISSING_REQUIRED_QUESTIONS"
	CodeSupplierError     = "SUPPLIER_ERROR"
)

// ClassifiedError is a typed, recoverable condition with a prescribed
// remedy. It wraps the raw cause so nothing is silently swallowed.
type ClassifiedError struct {
	Code        string
	Message     string
	Missing     []string
	NextActions []models.NextAction
	Cause       error
}

func (e *ClassifiedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ClassifiedError) Unwrap() error { return e.Cause }

// CallContext identifies the call being classified, so remediation can name
// the specific booking or slot and compute the missing-question list.
type CallContext struct {
	BookingID string
	SlotID    string
	// Booking is the freshest snapshot available at call time, used to
	// compute the exact missing-question list for completeness errors.
	Booking *models.Booking
}

// Classify maps a raw upstream failure plus call context into the closed
// error taxonomy. Typed supplier error variants are matched first; message
// signatures are a fallback for suppliers that only return text.
func Classify(err error, cc CallContext) *ClassifiedError {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case supplier.IsSlotNotBookable(err):
		return slotNotConfigured(cc.SlotID, err)
	case supplier.IsPaymentNotCompleted(err):
		return paymentRequired(cc.BookingID, err)
	case supplier.IsQuestionsIncomplete(err):
		return missingQuestions(cc, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not bookable"), strings.Contains(msg, "not configured"):
		return slotNotConfigured(cc.SlotID, err)
	case strings.Contains(msg, "payment"):
		return paymentRequired(cc.BookingID, err)
	case strings.Contains(msg, "question"):
		return missingQuestions(cc, err)
	}

	return &ClassifiedError{
		Code:    CodeSupplierError,
		Message: err.Error(),
		NextActions: []models.NextAction{
			act(ToolGetStatus, "re-fetch the booking to determine the current phase"),
		},
		Cause: err,
	}
}

func slotNotConfigured(slotID string, cause error) *ClassifiedError {
	msg := "the slot is not valid for booking yet; complete its options and pricing first"
	if slotID != "" {
		msg = fmt.Sprintf("slot %s is not valid for booking yet; complete its options and pricing first", slotID)
	}
	return &ClassifiedError{
		Code:        CodeSlotNotConfigured,
		Message:     msg,
		NextActions: SlotRemediation(),
		Cause:       cause,
	}
}

func paymentRequired(bookingID string, cause error) *ClassifiedError {
	msg := "payment has not been completed; finish payment, then retry the commit"
	if bookingID != "" {
		msg = fmt.Sprintf("booking %s requires payment before commit; finish payment, then retry", bookingID)
	}
	return &ClassifiedError{
		Code:    CodePaymentRequired,
		Message: msg,
		NextActions: []models.NextAction{
			act(ToolGetPaymentInfo, "fetch the payment intent or checkout link and complete payment"),
			act(ToolCommitBooking, "retry the commit once payment is complete"),
		},
		Cause: cause,
	}
}

func missingQuestions(cc CallContext, cause error) *ClassifiedError {
	var missing []string
	if cc.Booking != nil {
		missing = MissingQuestions(cc.Booking)
	}
	msg := "required questions are unanswered"
	if len(missing) > 0 {
		msg = fmt.Sprintf("required questions are unanswered: %s", strings.Join(missing, ", "))
	}
	return &ClassifiedError{
		Code:    CodeMissingQuestions,
		Message: msg,
		Missing: missing,
		NextActions: []models.NextAction{
			act(ToolGetQuestions, "fetch the specific unanswered questions"),
			act(ToolAnswerQuestions, "answer them, then retry the commit"),
		},
		Cause: cause,
	}
}
