package router

import (
	"net/http"
	"strings"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/emx/guzellikharitam-backend/internal/app/controller"
	"github.com/emx/guzellikharitam-backend/internal/metrics"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const edgePrefix = "/functions/"

type Router struct {
	venueController        *controller.VenueController
	venueDetailController  *controller.VenueDetailController
	locationController     *controller.LocationController
	uploadController       *controller.UploadController
	subscriptionController *controller.SubscriptionController
	reviewController       *controller.ReviewController
	notificationController *controller.NotificationController
	authMiddleware         *middleware.AuthMiddleware
	metrics                *metrics.Metrics
	config                 *config.Config
}

func NewRouter(
	venueController *controller.VenueController,
	venueDetailController *controller.VenueDetailController,
	locationController *controller.LocationController,
	uploadController *controller.UploadController,
	subscriptionController *controller.SubscriptionController,
	reviewController *controller.ReviewController,
	notificationController *controller.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	cfg *config.Config,
) *Router {
	return &Router{
		venueController:        venueController,
		venueDetailController:  venueDetailController,
		locationController:     locationController,
		uploadController:       uploadController,
		subscriptionController: subscriptionController,
		reviewController:       reviewController,
		notificationController: notificationController,
		authMiddleware:         authMiddleware,
		metrics:                m,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Güzellik Haritam API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(r.metrics.Handler()))

	auth := r.authMiddleware
	panel := []gin.HandlerFunc{auth.Authenticate(), auth.RequireRole(middleware.RoleOperator, middleware.RoleBusiness)}
	operatorOnly := []gin.HandlerFunc{auth.Authenticate(), auth.RequireRole(middleware.RoleOperator)}
	ownVenue := with(panel, auth.RequireVenueAccess("id"))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/provinces", r.locationController.ListProvinces)
		v1.GET("/provinces/:id/districts", r.locationController.ListDistricts)
		v1.GET("/venue-categories", r.locationController.ListVenueCategories)
		v1.GET("/service-categories", r.locationController.ListServiceCategories)

		venues := v1.Group("/venues")
		{
			venues.GET("", with(operatorOnly, r.venueController.ListVenues)...)
			venues.POST("", with(operatorOnly, r.venueController.CreateVenue)...)
			venues.GET("/:id", with(ownVenue, r.venueController.GetVenue)...)
			venues.PUT("/:id", with(ownVenue, r.venueController.UpdateVenue)...)
			venues.DELETE("/:id", with(operatorOnly, r.venueController.DeleteVenue)...)

			venues.GET("/:id/services", with(ownVenue, r.venueController.ListServices)...)
			venues.GET("/:id/specialists", with(ownVenue, r.venueController.ListSpecialists)...)
			venues.GET("/:id/photos", with(ownVenue, r.venueController.ListPhotos)...)
			venues.POST("/:id/photos/upload", with(ownVenue, r.uploadController.UploadVenuePhoto)...)

			venues.GET("/:id/subscription", with(ownVenue, r.subscriptionController.GetSubscription)...)
			venues.PUT("/:id/subscription", with(operatorOnly, r.subscriptionController.ChangePlan)...)

			venues.GET("/:id/reviews", r.reviewController.GetVenueReviews)
			venues.GET("/:id/campaigns", with(ownVenue, r.reviewController.ListCampaigns)...)
			venues.POST("/:id/campaigns", with(ownVenue, r.reviewController.CreateCampaign)...)
		}

		v1.POST("/upload/presigned-url", with(panel, r.uploadController.GeneratePresignedURL)...)
		v1.POST("/notifications/send", with(panel, r.notificationController.SendPush)...)
	}

	edge := router.Group("/functions/v1")
	edge.Use(edgeCORSMiddleware())
	{
		edge.GET("/get-venue-details", r.venueDetailController.GetVenueDetails)
		edge.OPTIONS("/get-venue-details", edgePreflight)
	}

	return router
}

func with(chain []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(chain)+1)
	handlers = append(handlers, chain...)
	return append(handlers, handler)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Edge functions carry their own permissive CORS headers.
		if strings.HasPrefix(c.Request.URL.Path, edgePrefix) {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func edgeCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Next()
	}
}

func edgePreflight(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
