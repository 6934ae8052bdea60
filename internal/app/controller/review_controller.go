package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// GetVenueReviews GET /api/v1/venues/:id/reviews?page=&page_size=
func (ctrl *ReviewController) GetVenueReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := ctrl.reviewService.GetVenueReviews(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "venue")
		return
	}
	c.JSON(http.StatusOK, result)
}

type CreateCampaignRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DiscountPercent int        `json:"discount_percent"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
}

// ListCampaigns GET /api/v1/venues/:id/campaigns
func (ctrl *ReviewController) ListCampaigns(c *gin.Context) {
	campaigns, err := ctrl.reviewService.GetActiveCampaigns(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// CreateCampaign POST /api/v1/venues/:id/campaigns
func (ctrl *ReviewController) CreateCampaign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	venueID := c.Param("id")

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	campaign, err := ctrl.reviewService.CreateCampaign(c.Request.Context(), venueID, service.CampaignInput{
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	})
	if err != nil {
		respondServiceError(c, err, "venue")
		return
	}

	log.Info("Campaign created", map[string]interface{}{
		"venue_id":    venueID,
		"campaign_id": campaign.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}
