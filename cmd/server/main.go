package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/emx/guzellikharitam-backend/internal/app/controller"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/db"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/emx/guzellikharitam-backend/internal/router"
	"github.com/emx/guzellikharitam-backend/internal/scheduler"
	"github.com/emx/guzellikharitam-backend/internal/storage"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"github.com/emx/guzellikharitam-backend/pkg/push/fcm"
	redispkg "github.com/emx/guzellikharitam-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Güzellik Haritam backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	conn, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(conn); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Details cache is optional; without redis every request hits the database.
	var detailsCache service.DetailsCache
	if cfg.Redis.Enabled() {
		client, err := redispkg.Connect(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, venue details cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache := redispkg.NewDetailsCache(client, cfg.Redis.DetailsTTL)
			defer cache.Close()
			detailsCache = cache
		}
	}

	var pushSender service.PushSender
	if cfg.Push.FCMServerKey != "" {
		client, err := fcm.NewClient(fcm.Config{
			ServerKey: cfg.Push.FCMServerKey,
			Endpoint:  cfg.Push.FCMEndpoint,
		})
		if err != nil {
			logger.Fatal("Failed to create push client", err)
		}
		pushSender = client
	} else {
		logger.Warn("FCM_SERVER_KEY not set, push relay will answer 500")
	}

	m := metrics.New()
	objectStorage := storage.NewS3Storage(&cfg.S3)

	// Repositories
	venueRepo := repository.NewVenueRepository(conn)
	assignmentRepo := repository.NewServiceAssignmentRepository(conn)
	specialistRepo := repository.NewSpecialistRepository(conn)
	photoRepo := repository.NewPhotoRepository(conn)
	subscriptionRepo := repository.NewSubscriptionRepository(conn)
	locationRepo := repository.NewLocationRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)

	// Services
	venueService := service.NewVenueService(venueRepo, assignmentRepo, specialistRepo, photoRepo, subscriptionRepo, detailsCache, m)
	detailService := service.NewVenueDetailService(venueRepo, detailsCache)
	locationService := service.NewLocationService(locationRepo)
	uploadService := service.NewUploadService(objectStorage, venueRepo, cfg.Upload.MaxPhotoBytes, m)
	subscriptionService := service.NewSubscriptionService(venueRepo, subscriptionRepo, detailsCache)
	reviewService := service.NewReviewService(reviewRepo, venueRepo, detailsCache)
	notificationService := service.NewNotificationService(pushSender)

	expiry := scheduler.NewSubscriptionScheduler(subscriptionService, cfg.Scheduler.SubscriptionExpirySpec)
	if err := expiry.Start(); err != nil {
		logger.Fatal("Failed to start subscription scheduler", err)
	}
	defer expiry.Stop()

	r := router.NewRouter(
		controller.NewVenueController(venueService),
		controller.NewVenueDetailController(detailService),
		controller.NewLocationController(locationService),
		controller.NewUploadController(uploadService),
		controller.NewSubscriptionController(subscriptionService),
		controller.NewReviewController(reviewService),
		controller.NewNotificationController(notificationService),
		middleware.NewAuthMiddleware(cfg.JWT.Secret),
		m,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
