package booking

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tourdesk/models"

	"golang.org/x/crypto/chacha20poly1305"
)

// CheckoutTTL is the hard expiry baked into every checkout token.
const CheckoutTTL = 15 * time.Minute

const checkoutTokenType = "checkout"

// CheckoutIssuer mints and validates the short-lived encrypted tokens that
// let a human complete payment out-of-band. The issuer is stateless;
// validity is re-derived on decrypt, never looked up.
type CheckoutIssuer struct {
	aead cipher.AEAD
	now  func() time.Time
}

// NewCheckoutIssuer derives a 256-bit key from the configured secret.
func NewCheckoutIssuer(secret string) (*CheckoutIssuer, error) {
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout cipher: %w", err)
	}
	return &CheckoutIssuer{aead: aead, now: time.Now}, nil
}

// Generate produces an opaque, URL-safe token embedding the booking id,
// caller credential, amount, and currency, with the expiry inside the
// ciphertext.
func (i *CheckoutIssuer) Generate(bookingID, partner string, amount int64, currency string) (string, error) {
	claims := models.CheckoutClaims{
		Type:      checkoutTokenType,
		BookingID: bookingID,
		Partner:   partner,
		Amount:    amount,
		Currency:  currency,
		ExpiresAt: i.now().Add(CheckoutTTL),
	}
	plaintext, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal checkout claims: %w", err)
	}

	nonce := make([]byte, i.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	// Nonce is prepended to the ciphertext so it travels with the token.
	sealed := i.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Validate decrypts the token and checks the type tag and expiry. It
// returns nil on any failure - tamper, wrong type, or elapsed TTL - without
// distinguishing the reason, since the caller's behavior is the same in
// every case: restart from get_payment_info.
func (i *CheckoutIssuer) Validate(token string) *models.CheckoutClaims {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	if len(sealed) < i.aead.NonceSize() {
		return nil
	}
	nonce, ciphertext := sealed[:i.aead.NonceSize()], sealed[i.aead.NonceSize():]
	plaintext, err := i.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil
	}

	var claims models.CheckoutClaims
	if err := json.Unmarshal(plaintext, &claims); err != nil {
		return nil
	}
	if claims.Type != checkoutTokenType {
		return nil
	}
	if i.now().After(claims.ExpiresAt) {
		return nil
	}
	return &claims
}
