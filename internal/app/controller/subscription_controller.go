package controller

import (
	"net/http"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionController(subscriptionService service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

type ChangePlanRequest struct {
	PlanID    string     `json:"plan_id"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// GetSubscription GET /api/v1/venues/:id/subscription
func (ctrl *SubscriptionController) GetSubscription(c *gin.Context) {
	subscription, err := ctrl.subscriptionService.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "subscription")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}

// ChangePlan PUT /api/v1/venues/:id/subscription
func (ctrl *SubscriptionController) ChangePlan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	venueID := c.Param("id")

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	subscription, err := ctrl.subscriptionService.ChangePlan(c.Request.Context(), venueID, service.ChangePlanInput{
		Plan:      model.SubscriptionPlan(req.PlanID),
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		log.Warn("Failed to change subscription plan", map[string]interface{}{
			"venue_id": venueID,
			"plan_id":  req.PlanID,
			"error":    err.Error(),
		})
		respondServiceError(c, err, "venue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": subscription})
}
