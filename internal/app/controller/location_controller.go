package controller

import (
	"net/http"
	"strconv"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	apperrors "github.com/emx/guzellikharitam-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

// LocationController serves the public lookup lists used by the venue forms.
type LocationController struct {
	locationService service.LocationService
}

func NewLocationController(locationService service.LocationService) *LocationController {
	return &LocationController{locationService: locationService}
}

func (ctrl *LocationController) ListProvinces(c *gin.Context) {
	provinces, err := ctrl.locationService.ListProvinces(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"provinces": provinces})
}

func (ctrl *LocationController) ListDistricts(c *gin.Context) {
	provinceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz il numarası")
		return
	}

	districts, err := ctrl.locationService.ListDistricts(c.Request.Context(), uint(provinceID))
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"districts": districts})
}

func (ctrl *LocationController) ListVenueCategories(c *gin.Context) {
	categories, err := ctrl.locationService.ListVenueCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (ctrl *LocationController) ListServiceCategories(c *gin.Context) {
	categories, err := ctrl.locationService.ListServiceCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
