package models

import "time"

// PaymentIntent is an externally issued payment handle. It exists only when
// the supplier requires consumer-collected payment; its absence (classified
// by the orchestrator, never assumed) means an on-account booking.
type PaymentIntent struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	ClientSecret   string `json:"clientSecret"`
	PublishableKey string `json:"publishableKey"`
}

// CheckoutClaims is the decrypted content of a checkout token. Validity is
// re-derived from ExpiresAt on every decrypt; there is no server-side state.
type CheckoutClaims struct {
	Type      string    `json:"typ"`
	BookingID string    `json:"bookingId"`
	Partner   string    `json:"partner"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"exp"`
}
