package controller

import (
	"errors"
	"net/http"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// VenueDetailController serves the public venue-details function consumed by the mobile app.
// Its error bodies are plain {"error": "..."} objects.
type VenueDetailController struct {
	detailService service.VenueDetailService
}

func NewVenueDetailController(detailService service.VenueDetailService) *VenueDetailController {
	return &VenueDetailController{detailService: detailService}
}

// GetVenueDetails GET /functions/v1/get-venue-details?id=
func (ctrl *VenueDetailController) GetVenueDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	venueID := c.Query("id")
	if venueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "venue_id is required. Use ?id=UUID"})
		return
	}

	payload, err := ctrl.detailService.GetDetailsJSON(c.Request.Context(), venueID)
	if err != nil {
		var serr *service.StoreError
		if errors.As(err, &serr) {
			log.Warn("Venue details lookup failed", map[string]interface{}{
				"venue_id": venueID,
				"error":    err.Error(),
			})
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error("Unexpected venue details failure", err, map[string]interface{}{
			"venue_id": venueID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
