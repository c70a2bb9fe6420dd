package booking

import (
	"context"
	"time"

	"tourdesk/models"
	"tourdesk/supplier"

	"go.uber.org/zap"
)

// BookingStatus is a booking snapshot with its derived phase, the missing
// required questions, and the advised next calls.
type BookingStatus struct {
	Booking     models.Booking      `json:"booking"`
	Phase       models.BookingPhase `json:"phase"`
	Missing     []string            `json:"missingQuestions,omitempty"`
	NextActions []models.NextAction `json:"nextActions"`
}

// QuestionsResult is the unanswered question trees grouped by scope.
type QuestionsResult struct {
	BookingID   string              `json:"bookingId"`
	CanCommit   bool                `json:"canCommit"`
	Groups      []QuestionGroup     `json:"groups"`
	NextActions []models.NextAction `json:"nextActions"`
}

// PaymentInfo reports whether consumer payment is needed. Required=false
// means the booking is on-account and the caller proceeds straight to
// commit.
type PaymentInfo struct {
	BookingID   string                `json:"bookingId"`
	Required    bool                  `json:"required"`
	Intent      *models.PaymentIntent `json:"paymentIntent,omitempty"`
	CheckoutURL string                `json:"checkoutUrl,omitempty"`
	NextActions []models.NextAction   `json:"nextActions"`
}

// BookingService drives a booking basket from creation through commit and
// asynchronous supplier confirmation.
type BookingService interface {
	Create(ctx context.Context, currency string) (*BookingStatus, error)
	AttachSlot(ctx context.Context, bookingID, slotID string) (*BookingStatus, error)
	Questions(ctx context.Context, bookingID string) (*QuestionsResult, error)
	AnswerQuestions(ctx context.Context, bookingID, leadName string, answers []models.QuestionAnswer) (*BookingStatus, error)
	PaymentInfo(ctx context.Context, bookingID, partner string) (*PaymentInfo, error)
	Commit(ctx context.Context, bookingID string, wait bool) (*BookingStatus, error)
	WaitConfirmation(ctx context.Context, bookingID string) (*BookingStatus, error)
	Status(ctx context.Context, bookingID string) (*BookingStatus, error)
	Cancel(ctx context.Context, bookingID string) (*BookingStatus, error)
}

// DefaultBookingService implements BookingService. It holds no booking
// state of its own: every read goes to the supplier and the phase is
// recomputed from the fresh snapshot.
type DefaultBookingService struct {
	Supplier        supplier.Client
	Checkout        *CheckoutIssuer
	CheckoutBaseURL string
	Logger          *zap.Logger

	// Confirmation poll bounds. Zero values fall back to 15 x 2s.
	PollAttempts int
	PollInterval time.Duration
}

func status(b *models.Booking) *BookingStatus {
	phase := BookingPhaseOf(b)
	return &BookingStatus{
		Booking:     *b,
		Phase:       phase,
		Missing:     MissingQuestions(b),
		NextActions: NextForBooking(phase),
	}
}

// Create opens an empty basket with supplier auto-fill enabled.
func (s *DefaultBookingService) Create(ctx context.Context, currency string) (*BookingStatus, error) {
	b, err := s.Supplier.CreateBooking(ctx, supplier.CreateBookingOptions{
		AutoFill: true,
		Currency: currency,
	})
	if err != nil {
		return nil, Classify(err, CallContext{})
	}
	s.Logger.Info("booking created", zap.String("bookingID", b.ID), zap.String("code", b.Code))
	return status(b), nil
}

// AttachSlot attaches a configured slot to the basket. The slot must be
// VALID; an unconfigured slot is rejected before any supplier mutation and
// classified with the full four-step remediation.
func (s *DefaultBookingService) AttachSlot(ctx context.Context, bookingID, slotID string) (*BookingStatus, error) {
	cc := CallContext{BookingID: bookingID, SlotID: slotID}

	slot, err := s.Supplier.GetSlot(ctx, slotID)
	if err != nil {
		return nil, Classify(err, cc)
	}
	if !SlotIsValid(slot) {
		return nil, slotNotConfigured(slotID, nil)
	}

	b, err := s.Supplier.AddBookingItem(ctx, bookingID, slotID)
	if err != nil {
		return nil, Classify(err, cc)
	}
	s.Logger.Info("slot attached",
		zap.String("bookingID", bookingID),
		zap.String("slotID", slotID),
		zap.Bool("canCommit", b.CanCommit))
	return status(b), nil
}

// Questions reads the booking-, item-, and person-scoped question trees and
// returns the unanswered ones grouped by scope. Read-only.
func (s *DefaultBookingService) Questions(ctx context.Context, bookingID string) (*QuestionsResult, error) {
	b, err := s.Supplier.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, Classify(err, CallContext{BookingID: bookingID})
	}
	return &QuestionsResult{
		BookingID:   b.ID,
		CanCommit:   b.CanCommit,
		Groups:      UnansweredByScope(b),
		NextActions: NextForBooking(BookingPhaseOf(b)),
	}, nil
}

// AnswerQuestions submits the lead passenger name and the answer set in a
// single call, then recomputes canCommit from the supplier's response.
// Re-invocable; later answers overwrite earlier ones.
func (s *DefaultBookingService) AnswerQuestions(ctx context.Context, bookingID, leadName string, answers []models.QuestionAnswer) (*BookingStatus, error) {
	b, err := s.Supplier.SetBookingAnswers(ctx, bookingID, leadName, answers)
	if err != nil {
		return nil, Classify(err, CallContext{BookingID: bookingID})
	}
	s.Logger.Info("booking answers submitted",
		zap.String("bookingID", bookingID),
		zap.Int("answers", len(answers)),
		zap.Bool("canCommit", b.CanCommit))
	return status(b), nil
}

// PaymentInfo queries for a payment intent. The two outcomes are
// distinguished by classification: an intent means consumer payment is
// needed; the supplier's payment-unavailable signature means the booking is
// on-account and the caller commits directly.
func (s *DefaultBookingService) PaymentInfo(ctx context.Context, bookingID, partner string) (*PaymentInfo, error) {
	intent, err := s.Supplier.GetPaymentIntent(ctx, bookingID)
	if err != nil {
		if supplier.IsPaymentUnavailable(err) {
			return s.onAccount(bookingID), nil
		}
		if se, ok := supplier.AsError(err); ok && se.Code == "EMPTY_RESPONSE" {
			return s.onAccount(bookingID), nil
		}
		return nil, Classify(err, CallContext{BookingID: bookingID})
	}
	if intent == nil || intent.ClientSecret == "" {
		return s.onAccount(bookingID), nil
	}

	info := &PaymentInfo{
		BookingID: bookingID,
		Required:  true,
		Intent:    intent,
		NextActions: []models.NextAction{
			act(ToolCommitBooking, "commit once payment has been completed"),
		},
	}
	if s.Checkout != nil && s.CheckoutBaseURL != "" {
		token, err := s.Checkout.Generate(bookingID, partner, intent.Amount, intent.Currency)
		if err != nil {
			s.Logger.Error("failed to mint checkout token", zap.String("bookingID", bookingID), zap.Error(err))
		} else {
			info.CheckoutURL = s.CheckoutBaseURL + "/checkout/" + token
		}
	}
	return info, nil
}

func (s *DefaultBookingService) onAccount(bookingID string) *PaymentInfo {
	return &PaymentInfo{
		BookingID: bookingID,
		Required:  false,
		NextActions: []models.NextAction{
			act(ToolCommitBooking, "no consumer payment is required; commit directly"),
		},
	}
}

// Commit finalizes the booking. Preconditions: canCommit must hold, and if
// a payment intent exists the payment must already be completed upstream -
// we only observe the supplier's rejection when it is not. With wait=true a
// PENDING result is followed by the bounded confirmation poll.
func (s *DefaultBookingService) Commit(ctx context.Context, bookingID string, wait bool) (*BookingStatus, error) {
	cc := CallContext{BookingID: bookingID}

	b, err := s.Supplier.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, Classify(err, cc)
	}
	if !b.CanCommit {
		return nil, missingQuestions(CallContext{BookingID: bookingID, Booking: b}, nil)
	}

	cc.Booking = b
	committed, err := s.Supplier.CommitBooking(ctx, bookingID)
	if err != nil {
		return nil, Classify(err, cc)
	}
	s.Logger.Info("booking committed",
		zap.String("bookingID", bookingID),
		zap.String("state", string(committed.State)))

	if committed.State == models.BookingPending && wait {
		return s.WaitConfirmation(ctx, bookingID)
	}
	return status(committed), nil
}

// WaitConfirmation polls the supplier for the asynchronous confirmation, at
// most PollAttempts full re-fetches spaced PollInterval apart. Running out
// of attempts is not an error: the commit already succeeded upstream, so
// the caller is simply told to check status later.
func (s *DefaultBookingService) WaitConfirmation(ctx context.Context, bookingID string) (*BookingStatus, error) {
	attempts := s.PollAttempts
	if attempts <= 0 {
		attempts = 15
	}
	interval := s.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var last *models.Booking
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		b, err := s.Supplier.GetBooking(ctx, bookingID)
		if err != nil {
			return nil, Classify(err, CallContext{BookingID: bookingID})
		}
		last = b
		if b.State != models.BookingPending {
			s.Logger.Info("booking confirmation observed",
				zap.String("bookingID", bookingID),
				zap.String("state", string(b.State)),
				zap.Int("polls", i+1))
			return status(b), nil
		}
	}

	s.Logger.Info("confirmation poll budget exhausted; booking still pending",
		zap.String("bookingID", bookingID),
		zap.Int("attempts", attempts))
	return status(last), nil
}

// Status is an idempotent read: fetch fresh, recompute the phase, advise
// the next calls. An empty next-action list signals flow completion.
func (s *DefaultBookingService) Status(ctx context.Context, bookingID string) (*BookingStatus, error) {
	b, err := s.Supplier.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, Classify(err, CallContext{BookingID: bookingID})
	}
	return status(b), nil
}

// Cancel asks the supplier to cancel the booking. Terminal.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) (*BookingStatus, error) {
	b, err := s.Supplier.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, Classify(err, CallContext{BookingID: bookingID})
	}
	s.Logger.Info("booking cancelled", zap.String("bookingID", bookingID))
	return status(b), nil
}
