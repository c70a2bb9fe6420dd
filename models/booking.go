package models

// BookingState is the supplier-defined lifecycle state of a booking.
type BookingState string

const (
	BookingOpen      BookingState = "OPEN"
	BookingPending   BookingState = "PENDING"
	BookingConfirmed BookingState = "CONFIRMED"
	BookingCancelled BookingState = "CANCELLED"
)

// PaymentState reports what the supplier expects payment-wise.
type PaymentState string

const (
	PaymentUnknown     PaymentState = ""
	PaymentRequired    PaymentState = "REQUIRED"
	PaymentCompleted   PaymentState = "COMPLETED"
	PaymentNotRequired PaymentState = "NOT_REQUIRED"
)

// Booking is the transaction basket. All fields are the supplier's last
// answer; nothing here is authoritative between fetches.
type Booking struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	State        BookingState      `json:"state"`
	CanCommit    bool              `json:"canCommit"`
	TotalPrice   Money             `json:"totalPrice"`
	Items        []BookingItem     `json:"items,omitempty"`
	Questions    []BookingQuestion `json:"questions,omitempty"`
	PaymentState PaymentState      `json:"paymentState,omitempty"`
	VoucherURL   string            `json:"voucherUrl,omitempty"`
}

// BookingItem is an attached availability slot with its own question tree.
type BookingItem struct {
	ID        string            `json:"id"`
	SlotID    string            `json:"slotId"`
	Questions []BookingQuestion `json:"questions,omitempty"`
	Persons   []BookingPerson   `json:"persons,omitempty"`
}

// BookingPerson is a participant on an item, carrying per-person questions.
type BookingPerson struct {
	ID        string            `json:"id"`
	Label     string            `json:"label,omitempty"`
	Questions []BookingQuestion `json:"questions,omitempty"`
}

// BookingQuestion is a required or optional field at booking, item, or
// person scope.
type BookingQuestion struct {
	ID              string   `json:"id"`
	Label           string   `json:"label"`
	Required        bool     `json:"required"`
	Answer          string   `json:"answer,omitempty"`
	SuggestedAnswer string   `json:"suggestedAnswer,omitempty"`
	Choices         []string `json:"choices,omitempty"`
}

// QuestionAnswer pairs a question id with the value to submit.
type QuestionAnswer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// BookingPhase is derived on demand from the latest booking fetch; it is
// never persisted anywhere.
type BookingPhase string

const (
	PhaseDraft            BookingPhase = "DRAFT"
	PhaseNeedsQuestions   BookingPhase = "NEEDS_QUESTIONS"
	PhaseReadyToCommit    BookingPhase = "READY_TO_COMMIT"
	PhaseNeedsPayment     BookingPhase = "NEEDS_PAYMENT"
	PhaseCommittedPending BookingPhase = "COMMITTED_PENDING"
	PhaseConfirmed        BookingPhase = "CONFIRMED"
	PhaseCancelled        BookingPhase = "CANCELLED"
)
