package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// CheckoutHandler serves the public payment handoff page data. The token in
// the path is the only credential; on any validation failure the human is
// told to request a fresh link, since the agent must restart from
// get_payment_info regardless of why the token failed.
func (h *HandlerBundle) CheckoutHandler(c *gin.Context) {
	claims := h.Checkout.Validate(c.Param("token"))
	if claims == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "this checkout link is invalid or has expired; please request a new one",
		})
		return
	}

	// Fetch the live intent rather than trusting the token's snapshot; the
	// supplier may have re-priced the basket since the link was minted.
	intent, err := h.Supplier.GetPaymentIntent(c.Request.Context(), claims.BookingID)
	if err != nil {
		h.Tools.Logger.Error("checkout: payment intent fetch failed",
			zap.String("bookingID", claims.BookingID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "payment details are unavailable right now; please retry shortly",
		})
		return
	}

	payload := gin.H{
		"bookingId":      claims.BookingID,
		"amount":         intent.Amount,
		"currency":       intent.Currency,
		"clientSecret":   intent.ClientSecret,
		"publishableKey": intent.PublishableKey,
	}

	// With a Stripe key configured we can report whether payment already
	// went through, so the page can short-circuit to a done state.
	if h.StripeKey != "" {
		pi, err := paymentintent.Get(intent.ID, nil)
		if err != nil {
			h.Tools.Logger.Warn("checkout: stripe intent lookup failed",
				zap.String("intentID", intent.ID), zap.Error(err))
		} else {
			payload["paymentStatus"] = string(pi.Status)
			payload["paid"] = pi.Status == stripe.PaymentIntentStatusSucceeded
		}
	}

	c.JSON(http.StatusOK, payload)
}
