package controller

import (
	"net/http"
	"strconv"

	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type VenueController struct {
	venueService service.VenueService
}

func NewVenueController(venueService service.VenueService) *VenueController {
	return &VenueController{venueService: venueService}
}

type VenueRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Icon           string              `json:"icon"`
	Address        string              `json:"address"`
	CategoryID     string              `json:"category_id"`
	ProvinceID     uint                `json:"province_id"`
	DistrictID     *uint               `json:"district_id"`
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`
	IsVerified     bool                `json:"is_verified"`
	IsPreferred    bool                `json:"is_preferred"`
	IsHygienic     bool                `json:"is_hygienic"`
	SocialLinks    model.SocialLinks   `json:"social_links"`
	WorkingHours   model.WorkingHours  `json:"working_hours"`
	Features       []string            `json:"features"`
	PaymentOptions []string            `json:"payment_options"`
	Accessibility  model.Accessibility `json:"accessibility"`
	Certifications []string            `json:"certifications"`
	FAQ            []model.FAQItem     `json:"faq"`
}

type ServiceAssignmentRequest struct {
	ServiceID       string  `json:"service_id"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        *bool   `json:"is_active"`
}

type SpecialistRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
	IsActive *bool  `json:"is_active"`
}

type PhotoRequest struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// SaveVenueRequest is the aggregate payload: the root plus the complete child collections.
type SaveVenueRequest struct {
	Venue       VenueRequest               `json:"venue"`
	Services    []ServiceAssignmentRequest `json:"services"`
	Specialists []SpecialistRequest        `json:"specialists"`
	Photos      []PhotoRequest             `json:"photos"`
	Plan        string                     `json:"plan"`
}

func (r SaveVenueRequest) toServiceRequest(venueID string) service.SaveVenueRequest {
	v := r.Venue
	req := service.SaveVenueRequest{
		Venue: service.VenueInput{
			ID:             venueID,
			Name:           v.Name,
			Description:    v.Description,
			Icon:           v.Icon,
			Address:        v.Address,
			CategoryID:     v.CategoryID,
			ProvinceID:     v.ProvinceID,
			DistrictID:     v.DistrictID,
			Latitude:       v.Latitude,
			Longitude:      v.Longitude,
			IsVerified:     v.IsVerified,
			IsPreferred:    v.IsPreferred,
			IsHygienic:     v.IsHygienic,
			SocialLinks:    v.SocialLinks,
			WorkingHours:   v.WorkingHours,
			Features:       v.Features,
			PaymentOptions: v.PaymentOptions,
			Accessibility:  v.Accessibility,
			Certifications: v.Certifications,
			FAQ:            v.FAQ,
		},
		Plan: model.SubscriptionPlan(r.Plan),
	}
	for _, s := range r.Services {
		req.Services = append(req.Services, service.ServiceAssignmentInput{
			ServiceID:       s.ServiceID,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			IsActive:        s.IsActive,
		})
	}
	for _, s := range r.Specialists {
		req.Specialists = append(req.Specialists, service.SpecialistInput{
			ID:       s.ID,
			Name:     s.Name,
			Title:    s.Title,
			Bio:      s.Bio,
			ImageURL: s.ImageURL,
			IsActive: s.IsActive,
		})
	}
	for _, p := range r.Photos {
		req.Photos = append(req.Photos, service.PhotoInput{
			ID:       p.ID,
			URL:      p.URL,
			Category: p.Category,
		})
	}
	return req
}

// CreateVenue POST /api/v1/venues
func (ctrl *VenueController) CreateVenue(c *gin.Context) {
	ctrl.saveVenue(c, "")
}

// UpdateVenue PUT /api/v1/venues/:id
func (ctrl *VenueController) UpdateVenue(c *gin.Context) {
	ctrl.saveVenue(c, c.Param("id"))
}

func (ctrl *VenueController) saveVenue(c *gin.Context, venueID string) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid venue save request", map[string]interface{}{
			"venue_id": venueID,
			"error":    err.Error(),
		})
		respondInvalidBody(c, err)
		return
	}

	result, err := ctrl.venueService.SaveVenue(c.Request.Context(), req.toServiceRequest(venueID))
	if err != nil {
		status, body := serviceErrorBody(err, "venue")
		if result != nil {
			// The root was written; the caller re-runs the save with this id.
			body["venue_id"] = result.VenueID
		}
		log.Warn("Venue save failed", map[string]interface{}{
			"venue_id": venueID,
			"status":   status,
			"error":    err.Error(),
		})
		c.JSON(status, body)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"venue_id": result.VenueID,
		"created":  result.Created,
		"venue":    result.Venue,
	})
}

// ListVenues GET /api/v1/venues?search=&page=&page_size=
func (ctrl *VenueController) ListVenues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := ctrl.venueService.ListVenues(c.Request.Context(), service.VenueListOptions{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list venues", err)
		respondServiceError(c, err, "venue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"venues": result.Venues,
		"total":  result.TotalCount,
	})
}

// GetVenue GET /api/v1/venues/:id
func (ctrl *VenueController) GetVenue(c *gin.Context) {
	venue, err := ctrl.venueService.GetVenue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

// DeleteVenue DELETE /api/v1/venues/:id
func (ctrl *VenueController) DeleteVenue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	venueID := c.Param("id")

	if err := ctrl.venueService.DeleteVenue(c.Request.Context(), venueID); err != nil {
		log.Warn("Failed to delete venue", map[string]interface{}{
			"venue_id": venueID,
			"error":    err.Error(),
		})
		respondServiceError(c, err, "venue")
		return
	}

	log.Info("Venue deleted", map[string]interface{}{
		"venue_id": venueID,
	})
	c.Status(http.StatusNoContent)
}

// ListServices GET /api/v1/venues/:id/services
func (ctrl *VenueController) ListServices(c *gin.Context) {
	services, err := ctrl.venueService.ListServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "venue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListSpecialists GET /api/v1/venues/:id/specialists
func (ctrl *VenueController) ListSpecialists(c *gin.Context) {
	specialists, err := ctrl.venueService.ListSpecialists(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "specialist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialists": specialists})
}

// ListPhotos GET /api/v1/venues/:id/photos
func (ctrl *VenueController) ListPhotos(c *gin.Context) {
	photos, err := ctrl.venueService.ListPhotos(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "photo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}
