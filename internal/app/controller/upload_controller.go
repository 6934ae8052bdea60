package controller

import (
	"net/http"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	apperrors "github.com/emx/guzellikharitam-backend/internal/errors"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// UploadVenuePhoto stores one multipart "file" and returns its public URL.
// POST /api/v1/venues/:id/photos/upload
func (ctrl *UploadController) UploadVenuePhoto(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	venueID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Photo upload without file", map[string]interface{}{
			"venue_id": venueID,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFile, "Yüklenecek dosya bulunamadı")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFile, "Dosya okunamadı")
		return
	}
	defer file.Close()

	url, err := ctrl.uploadService.UploadVenuePhoto(c.Request.Context(), service.PhotoUpload{
		VenueID:     venueID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		log.Warn("Photo upload failed", map[string]interface{}{
			"venue_id": venueID,
			"filename": fileHeader.Filename,
			"error":    err.Error(),
		})
		respondServiceError(c, err, "upload")
		return
	}

	log.Info("Venue photo uploaded", map[string]interface{}{
		"venue_id": venueID,
		"url":      url,
	})
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

type GeneratePresignedURLRequest struct {
	VenueID     string `json:"venue_id" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// GeneratePresignedURL returns a presigned PUT URL for a direct browser upload.
// POST /api/v1/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		respondInvalidBody(c, err)
		return
	}

	if role, _ := middleware.GetUserRole(c); role == middleware.RoleBusiness {
		if venueID, _ := middleware.GetVenueID(c); venueID != req.VenueID {
			apperrors.Forbidden(c, apperrors.AuthzVenueAccess, "Bu işletmeye erişim yetkiniz yok")
			return
		}
	}

	response, err := ctrl.uploadService.PresignVenuePhoto(c.Request.Context(), req.VenueID, req.Filename, req.ContentType)
	if err != nil {
		log.Warn("Failed to generate presigned URL", map[string]interface{}{
			"venue_id":     req.VenueID,
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"error":        err.Error(),
		})
		respondServiceError(c, err, "upload")
		return
	}

	log.Info("Presigned URL generated successfully", map[string]interface{}{
		"venue_id": req.VenueID,
		"key":      response.Key,
	})
	c.JSON(http.StatusOK, response)
}
