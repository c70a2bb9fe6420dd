package routes

import (
	"net/http"

	"tourdesk/handlers"
	"tourdesk/middleware"
	"tourdesk/services/booking"

	"github.com/gin-gonic/gin"
)

// RegisterToolRoutes registers the authenticated tool endpoints. One POST
// per tool, same names as the MCP surface.
func RegisterToolRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tools")
	api.Use(middleware.PartnerAuthMiddleware())
	{
		api.GET("", hb.ListToolsHandler)

		api.POST("/"+booking.ToolLookupSlots, hb.LookupSlotsHandler)
		api.POST("/"+booking.ToolGetSlotConfig, hb.GetSlotConfigHandler)
		api.POST("/"+booking.ToolAnswerOptions, hb.AnswerSlotOptionsHandler)
		api.POST("/"+booking.ToolGetSlotPricing, hb.GetSlotPricingHandler)
		api.POST("/"+booking.ToolSetSlotPricing, hb.SetSlotPricingHandler)
		api.POST("/"+booking.ToolConfigureSlot, hb.ConfigureSlotHandler)

		api.POST("/"+booking.ToolCreateBooking, hb.CreateBookingHandler)
		api.POST("/"+booking.ToolAttachSlot, hb.AttachSlotHandler)
		api.POST("/"+booking.ToolGetQuestions, hb.GetQuestionsHandler)
		api.POST("/"+booking.ToolAnswerQuestions, hb.AnswerQuestionsHandler)
		api.POST("/"+booking.ToolGetPaymentInfo, hb.GetPaymentInfoHandler)
		api.POST("/"+booking.ToolCommitBooking, hb.CommitBookingHandler)
		api.POST("/"+booking.ToolWaitConfirm, hb.WaitConfirmationHandler)
		api.POST("/"+booking.ToolGetStatus, hb.GetStatusHandler)
		api.POST("/"+booking.ToolCancelBooking, hb.CancelBookingHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated endpoints: the human
// payment handoff page and the health probe. The checkout token in the URL
// is the credential for its route.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/checkout/:token", hb.CheckoutHandler)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
