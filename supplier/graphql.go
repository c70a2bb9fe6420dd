package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tourdesk/models"
)

// GraphQLClient talks to the supplier's GraphQL endpoint. It is a thin
// transport: one HTTP POST per operation, typed errors extracted from the
// GraphQL error extensions, no retries.
type GraphQLClient struct {
	hc       *http.Client
	endpoint string
	apiKey   string
}

func NewGraphQLClient(endpoint, apiKey string) *GraphQLClient {
	return &GraphQLClient{
		hc:       &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

const (
	fragmentSlot = `
fragment SlotFields on Availability {
  id experienceId date startTime soldOut
  guidePrice { amount currency }
  options { id label dataType required answer choices }
  pricingCategories { id label units minUnits maxUnits unitPrice { amount currency } totalPrice { amount currency } }
}`
	fragmentBooking = `
fragment BookingFields on Booking {
  id code state canCommit paymentState voucherUrl
  totalPrice { amount currency }
  questions { id label required answer suggestedAnswer choices }
  items {
    id slotId
    questions { id label required answer suggestedAnswer choices }
    persons { id label questions { id label required answer suggestedAnswer choices } }
  }
}`

	querySearchSlots = `query Slots($experienceId: ID!, $from: String!, $to: String!) {
  availabilities(experienceId: $experienceId, from: $from, to: $to) { ...SlotFields }
}` + fragmentSlot
	queryGetSlot = `query Slot($id: ID!) {
  availability(id: $id) { ...SlotFields }
}` + fragmentSlot
	mutationSetOptions = `mutation SetOptions($id: ID!, $answers: [OptionAnswerInput!]!) {
  availabilitySetOptions(id: $id, answers: $answers) { ...SlotFields }
}` + fragmentSlot
	mutationSetPricing = `mutation SetPricing($id: ID!, $units: [UnitCountInput!]!) {
  availabilitySetPricing(id: $id, units: $units) { ...SlotFields }
}` + fragmentSlot
	mutationCreateBooking = `mutation CreateBooking($autoFill: Boolean!, $currency: String) {
  bookingCreate(autoFill: $autoFill, currency: $currency) { ...BookingFields }
}` + fragmentBooking
	mutationAddItem = `mutation AddItem($bookingId: ID!, $availabilityId: ID!) {
  bookingAddAvailability(bookingId: $bookingId, availabilityId: $availabilityId) { ...BookingFields }
}` + fragmentBooking
	queryGetBooking = `query Booking($id: ID!) {
  booking(id: $id) { ...BookingFields }
}` + fragmentBooking
	mutationSetAnswers = `mutation SetAnswers($bookingId: ID!, $leadName: String!, $answers: [QuestionAnswerInput!]!) {
  bookingSetAnswers(bookingId: $bookingId, leadName: $leadName, answers: $answers) { ...BookingFields }
}` + fragmentBooking
	mutationCommit = `mutation Commit($bookingId: ID!) {
  bookingCommit(bookingId: $bookingId) { ...BookingFields }
}` + fragmentBooking
	mutationCancel = `mutation Cancel($bookingId: ID!) {
  bookingCancel(bookingId: $bookingId) { ...BookingFields }
}` + fragmentBooking
	queryPaymentIntent = `query PaymentIntent($bookingId: ID!) {
  bookingPaymentIntent(bookingId: $bookingId) { id amount currency clientSecret publishableKey }
}`
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlEnvelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

// do posts one GraphQL operation and decodes the named result field into
// out. GraphQL errors become *Error values with the supplier's code.
func (c *GraphQLClient) do(ctx context.Context, query string, vars map[string]any, field string, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to marshal supplier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build supplier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("supplier request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read supplier response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &Error{
			Code:    fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message: string(raw),
		}
	}

	var env gqlEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode supplier response: %w", err)
	}
	if len(env.Errors) > 0 {
		first := env.Errors[0]
		code := first.Extensions.Code
		if code == "" {
			code = "SUPPLIER_ERROR"
		}
		return &Error{Code: code, Message: first.Message}
	}

	data, ok := env.Data[field]
	if !ok || len(data) == 0 || string(data) == "null" {
		return &Error{Code: "EMPTY_RESPONSE", Message: fmt.Sprintf("supplier returned no %s", field)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode supplier %s: %w", field, err)
	}
	return nil
}

func (c *GraphQLClient) SearchSlots(ctx context.Context, experienceID, from, to string) ([]models.Slot, error) {
	var slots []models.Slot
	err := c.do(ctx, querySearchSlots, map[string]any{
		"experienceId": experienceID,
		"from":         from,
		"to":           to,
	}, "availabilities", &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *GraphQLClient) GetSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	var slot models.Slot
	if err := c.do(ctx, queryGetSlot, map[string]any{"id": slotID}, "availability", &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *GraphQLClient) SetSlotOptions(ctx context.Context, slotID string, answers map[string]string) (*models.Slot, error) {
	input := make([]map[string]string, 0, len(answers))
	for id, value := range answers {
		input = append(input, map[string]string{"optionId": id, "value": value})
	}
	var slot models.Slot
	err := c.do(ctx, mutationSetOptions, map[string]any{
		"id":      slotID,
		"answers": input,
	}, "availabilitySetOptions", &slot)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *GraphQLClient) SetSlotPricing(ctx context.Context, slotID string, units map[string]int) (*models.Slot, error) {
	input := make([]map[string]any, 0, len(units))
	for id, count := range units {
		input = append(input, map[string]any{"categoryId": id, "units": count})
	}
	var slot models.Slot
	err := c.do(ctx, mutationSetPricing, map[string]any{
		"id":    slotID,
		"units": input,
	}, "availabilitySetPricing", &slot)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *GraphQLClient) CreateBooking(ctx context.Context, opts CreateBookingOptions) (*models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, mutationCreateBooking, map[string]any{
		"autoFill": opts.AutoFill,
		"currency": opts.Currency,
	}, "bookingCreate", &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) AddBookingItem(ctx context.Context, bookingID, slotID string) (*models.Booking, error) {
	var booking models.Booking
	err := c.do(ctx, mutationAddItem, map[string]any{
		"bookingId":      bookingID,
		"availabilityId": slotID,
	}, "bookingAddAvailability", &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, queryGetBooking, map[string]any{"id": bookingID}, "booking", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) SetBookingAnswers(ctx context.Context, bookingID, leadName string, answers []models.QuestionAnswer) (*models.Booking, error) {
	input := make([]map[string]string, 0, len(answers))
	for _, a := range answers {
		input = append(input, map[string]string{"questionId": a.QuestionID, "value": a.Value})
	}
	var booking models.Booking
	err := c.do(ctx, mutationSetAnswers, map[string]any{
		"bookingId": bookingID,
		"leadName":  leadName,
		"answers":   input,
	}, "bookingSetAnswers", &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) CommitBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, mutationCommit, map[string]any{"bookingId": bookingID}, "bookingCommit", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.do(ctx, mutationCancel, map[string]any{"bookingId": bookingID}, "bookingCancel", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *GraphQLClient) GetPaymentIntent(ctx context.Context, bookingID string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := c.do(ctx, queryPaymentIntent, map[string]any{"bookingId": bookingID}, "bookingPaymentIntent", &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}
