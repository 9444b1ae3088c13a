// File: pawfolio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawfolio/config"
	"pawfolio/database"
	bookingRepo "pawfolio/database/repository/booking"
	seriesRepo "pawfolio/database/repository/series"
	sitterRepo "pawfolio/database/repository/sitter"
	"pawfolio/handlers"
	"pawfolio/routes"
	"pawfolio/services/identity"
	"pawfolio/services/scheduling"
	"pawfolio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	verifier, err := identity.NewFirebaseRoleVerifier(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize role verifier: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Repositories.
	db := database.DB()
	bookings := bookingRepo.NewMongoBookingRepo(db)
	series := seriesRepo.NewMongoSeriesRepo(db)
	sitters := sitterRepo.NewMongoSitterDirectory(db)

	// Scheduling engine.
	scorer := &scheduling.DefaultSitterScorer{
		Remote: scheduling.NewHTTPScoringClient(
			config.AppConfig.ScorerURL,
			time.Duration(config.AppConfig.ScorerTimeoutMS)*time.Millisecond,
		),
	}
	pacing := time.Duration(config.AppConfig.SiblingPacingMS) * time.Millisecond
	coordinator := &scheduling.SeriesCoordinator{
		Bookings:    bookings,
		Sitters:     sitters,
		Scorer:      scorer,
		PacingDelay: pacing,
	}
	orchestrator := &scheduling.Orchestrator{
		Bookings:    bookings,
		Series:      series,
		Sitters:     sitters,
		Verifier:    verifier,
		Scorer:      scorer,
		Coordinator: coordinator,
		ChunkSize:   config.AppConfig.BatchChunkSize,
		PacingDelay: pacing,
	}

	adminBookingHandler := &handlers.AdminBookingHandler{
		Orchestrator:      orchestrator,
		AutoAssignDefault: config.AppConfig.AutoAssignByDefault,
	}

	routes.RegisterAdminBookingRoutes(router, adminBookingHandler)
	routes.RegisterHealthRoutes(router)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Start the HTTP server.
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
