package handlers

import (
	"net/http"

	"tourdesk/models"
	"tourdesk/services/booking"
	"tourdesk/supplier"
	"tourdesk/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle carries everything the HTTP surface needs.
type HandlerBundle struct {
	Tools     *ToolSet
	Checkout  *booking.CheckoutIssuer
	Supplier  supplier.Client
	StripeKey string
}

// statusFor maps classified error codes onto HTTP statuses. The body shape
// is identical either way; HTTP callers can branch on the status, tool
// callers on isError.
func statusFor(code string) int {
	switch code {
	case booking.CodeSlotNotConfigured:
		return http.StatusConflict
	case booking.CodePaymentRequired:
		return http.StatusPaymentRequired
	case booking.CodeMissingQuestions:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func respond(c *gin.Context, result *models.ToolResult) {
	if result.IsError {
		c.JSON(statusFor(result.Error.Code), result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindInput(c *gin.Context, in any) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return false
	}
	return true
}

// ListToolsHandler returns every tool with its description, so a caller can
// discover the protocol without out-of-band documentation.
func (h *HandlerBundle) ListToolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": Specs()})
}

func (h *HandlerBundle) LookupSlotsHandler(c *gin.Context) {
	var in LookupSlotsInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.LookupSlots(c.Request.Context(), in))
}

func (h *HandlerBundle) GetSlotConfigHandler(c *gin.Context) {
	var in SlotInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.GetSlotConfig(c.Request.Context(), in))
}

func (h *HandlerBundle) AnswerSlotOptionsHandler(c *gin.Context) {
	var in AnswerOptionsInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.AnswerSlotOptions(c.Request.Context(), in))
}

func (h *HandlerBundle) GetSlotPricingHandler(c *gin.Context) {
	var in SlotInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.GetSlotPricing(c.Request.Context(), in))
}

func (h *HandlerBundle) SetSlotPricingHandler(c *gin.Context) {
	var in SetPricingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.SetSlotPricing(c.Request.Context(), in))
}

func (h *HandlerBundle) ConfigureSlotHandler(c *gin.Context) {
	var in ConfigureSlotInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.ConfigureSlot(c.Request.Context(), in))
}

func (h *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var in CreateBookingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.CreateBooking(c.Request.Context(), in))
}

func (h *HandlerBundle) AttachSlotHandler(c *gin.Context) {
	var in AttachSlotInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.AttachSlot(c.Request.Context(), in))
}

func (h *HandlerBundle) GetQuestionsHandler(c *gin.Context) {
	var in BookingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.GetBookingQuestions(c.Request.Context(), in))
}

func (h *HandlerBundle) AnswerQuestionsHandler(c *gin.Context) {
	var in AnswerQuestionsInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.AnswerBookingQuestions(c.Request.Context(), in))
}

func (h *HandlerBundle) GetPaymentInfoHandler(c *gin.Context) {
	var in BookingInput
	if !bindInput(c, &in) {
		return
	}
	partner := c.GetString("partner")
	respond(c, h.Tools.GetPaymentInfo(c.Request.Context(), in, partner))
}

func (h *HandlerBundle) CommitBookingHandler(c *gin.Context) {
	var in CommitInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.CommitBooking(c.Request.Context(), in))
}

func (h *HandlerBundle) WaitConfirmationHandler(c *gin.Context) {
	var in BookingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.WaitConfirmation(c.Request.Context(), in))
}

func (h *HandlerBundle) GetStatusHandler(c *gin.Context) {
	var in BookingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.GetBookingStatus(c.Request.Context(), in))
}

func (h *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	var in BookingInput
	if !bindInput(c, &in) {
		return
	}
	respond(c, h.Tools.CancelBooking(c.Request.Context(), in))
}
