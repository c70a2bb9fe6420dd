package booking

import (
	"errors"
	"testing"

	"tourdesk/models"
	"tourdesk/supplier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionTools(actions []models.NextAction) []string {
	tools := make([]string, 0, len(actions))
	for _, a := range actions {
		tools = append(tools, a.Tool)
	}
	return tools
}

func TestClassifyTypedSupplierErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not bookable", &supplier.Error{Code: "AVAILABILITY_NOT_BOOKABLE", Message: "availability is not bookable"}, CodeSlotNotConfigured},
		{"payment outstanding", &supplier.Error{Code: "PAYMENT_NOT_COMPLETED", Message: "payment not completed"}, CodePaymentRequired},
		{"questions incomplete", &supplier.Error{Code: "QUESTIONS_INCOMPLETE", Message: "mandatory questions unanswered"}, CodeMissingQuestions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ce := Classify(tc.err, CallContext{BookingID: "bk-1", SlotID: "av-1"})
			assert.Equal(t, tc.want, ce.Code)
			assert.ErrorIs(t, ce, tc.err)
			assert.NotEmpty(t, ce.NextActions)
		})
	}
}

func TestClassifyMessageFallback(t *testing.T) {
	ce := Classify(errors.New("availability is not bookable in its current state"), CallContext{SlotID: "av-9"})
	assert.Equal(t, CodeSlotNotConfigured, ce.Code)
	assert.Contains(t, ce.Message, "av-9")

	ce = Classify(errors.New("Payment has not been completed"), CallContext{BookingID: "bk-9"})
	assert.Equal(t, CodePaymentRequired, ce.Code)
	assert.Equal(t,
		[]string{ToolGetPaymentInfo, ToolCommitBooking},
		actionTools(ce.NextActions))
}

func TestClassifyUnknownPreservesRawMessage(t *testing.T) {
	raw := errors.New("upstream exploded: code 7731")
	ce := Classify(raw, CallContext{})
	assert.Equal(t, CodeSupplierError, ce.Code)
	assert.Equal(t, raw.Error(), ce.Message)
	require.Len(t, ce.NextActions, 1)
	assert.Equal(t, ToolGetStatus, ce.NextActions[0].Tool)
}

func TestClassifyMissingQuestionsListsLabels(t *testing.T) {
	b := nestedBooking()
	ce := Classify(
		&supplier.Error{Code: "QUESTIONS_INCOMPLETE", Message: "mandatory questions unanswered"},
		CallContext{BookingID: b.ID, Booking: b},
	)
	assert.Equal(t, CodeMissingQuestions, ce.Code)
	assert.Equal(t, []string{"Lead traveller name", "EMAIL", "Pickup location", "Dietary needs"}, ce.Missing)
	assert.Equal(t, []string{ToolGetQuestions, ToolAnswerQuestions}, actionTools(ce.NextActions))
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	orig := slotNotConfigured("av-1", errors.New("boom"))
	wrapped := Classify(orig, CallContext{})
	assert.Same(t, orig, wrapped)
}

func TestSlotRemediationOrder(t *testing.T) {
	assert.Equal(t,
		[]string{ToolAnswerOptions, ToolGetSlotPricing, ToolSetSlotPricing, ToolGetSlotConfig},
		actionTools(SlotRemediation()))
}
