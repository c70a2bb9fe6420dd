package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourdesk/config"
	"tourdesk/handlers"
	"tourdesk/middleware"
	"tourdesk/routes"
	"tourdesk/services/booking"
	"tourdesk/supplier"
	"tourdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	mcpMode := flag.Bool("mcp", false, "serve tools over MCP stdio instead of HTTP")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	stripe.Key = config.AppConfig.StripeKey

	// The supplier client is the only holder of upstream state; everything
	// below it recomputes from fresh fetches.
	supplierClient := supplier.NewGraphQLClient(
		config.AppConfig.SupplierURL,
		config.AppConfig.SupplierAPIKey,
	)

	issuer, err := booking.NewCheckoutIssuer(config.AppConfig.CheckoutSecret)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize checkout issuer: %v", err)
	}

	availabilityService := &booking.DefaultAvailabilityService{
		Supplier: supplierClient,
		CacheTTL: time.Duration(config.AppConfig.SlotSearchCacheSecs) * time.Second,
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		Supplier:        supplierClient,
		Checkout:        issuer,
		CheckoutBaseURL: config.AppConfig.CheckoutBaseURL,
		Logger:          logger,
	}
	toolSet := &handlers.ToolSet{
		Availability: availabilityService,
		Bookings:     bookingService,
		Logger:       logger,
	}

	if *mcpMode {
		// stdio carries a single principal; the first configured partner
		// key identifies it.
		partner := "stdio"
		if keys := config.PartnerKeys(); len(keys) > 0 {
			partner = keys[0]
		}
		logger.Sugar().Info("main: serving tools over MCP stdio")
		if err := handlers.ServeMCP(context.Background(), toolSet, partner); err != nil {
			logger.Sugar().Fatalf("main: MCP server failed: %v", err)
		}
		return
	}

	// Redis only backs the slot-search cache; the HTTP mode wires it in.
	utils.InitCache()
	availabilityService.Cache = utils.GetCacheClient()

	bundle := &handlers.HandlerBundle{
		Tools:     toolSet,
		Checkout:  issuer,
		Supplier:  supplierClient,
		StripeKey: config.AppConfig.StripeKey,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	routes.RegisterToolRoutes(router, bundle)
	routes.RegisterPublicRoutes(router, bundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
