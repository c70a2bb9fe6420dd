package booking

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *CheckoutIssuer {
	t.Helper()
	issuer, err := NewCheckoutIssuer("checkout-secret-for-tests")
	require.NoError(t, err)
	return issuer
}

func TestCheckoutTokenRoundTrip(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Generate("bk-1", "acme", 12900, "EUR")
	require.NoError(t, err)

	claims := issuer.Validate(token)
	require.NotNil(t, claims)
	assert.Equal(t, "bk-1", claims.BookingID)
	assert.Equal(t, "acme", claims.Partner)
	assert.Equal(t, int64(12900), claims.Amount)
	assert.Equal(t, "EUR", claims.Currency)
	assert.WithinDuration(t, time.Now().Add(CheckoutTTL), claims.ExpiresAt, 5*time.Second)
}

func TestCheckoutTokenIsOpaque(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Generate("bk-1", "acme", 12900, "EUR")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bk-1")
	assert.NotContains(t, string(raw), "acme")
}

func TestCheckoutTokenExpiry(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Generate("bk-1", "acme", 12900, "EUR")
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(CheckoutTTL - time.Second) }
	assert.NotNil(t, issuer.Validate(token))

	issuer.now = func() time.Time { return time.Now().Add(CheckoutTTL + time.Millisecond) }
	assert.Nil(t, issuer.Validate(token))
}

func TestCheckoutTokenTamperRejected(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Generate("bk-1", "acme", 12900, "EUR")
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	assert.Nil(t, issuer.Validate(base64.RawURLEncoding.EncodeToString(raw)))
}

func TestCheckoutTokenGarbageRejected(t *testing.T) {
	issuer := testIssuer(t)
	assert.Nil(t, issuer.Validate("not a token"))
	assert.Nil(t, issuer.Validate(""))
	assert.Nil(t, issuer.Validate(base64.RawURLEncoding.EncodeToString([]byte("short"))))
}

func TestCheckoutTokenBoundToSecret(t *testing.T) {
	issuer := testIssuer(t)
	token, err := issuer.Generate("bk-1", "acme", 12900, "EUR")
	require.NoError(t, err)

	other, err := NewCheckoutIssuer("a-different-secret")
	require.NoError(t, err)
	assert.Nil(t, other.Validate(token))
}
