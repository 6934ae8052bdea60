package controller

import (
	"errors"
	"net/http"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	apperrors "github.com/emx/guzellikharitam-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

// serviceErrorBody maps a service error to a status and JSON body. The message is always the
// raw error text; store failures get a code and hint from ParseError.
func serviceErrorBody(err error, context string) (int, gin.H) {
	var verr *service.ValidationError
	var serr *service.StoreError
	var uerr *service.UploadError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, gin.H{
			"error":   apperrors.ValidationRequired,
			"message": err.Error(),
			"fields":  verr.Fields,
		}
	case errors.As(err, &uerr):
		return http.StatusBadGateway, gin.H{
			"error":   apperrors.UploadFailed,
			"message": err.Error(),
		}
	case errors.As(err, &serr):
		status := http.StatusInternalServerError
		if service.IsNotFound(err) {
			status = http.StatusNotFound
			context = notFoundContext(err, context)
		}
		info := apperrors.ParseError(serr.Err, context)
		return status, gin.H{
			"error":   info.Code,
			"message": err.Error(),
			"hint":    info.Message,
		}
	case errors.Is(err, service.ErrPushNotConfigured):
		return http.StatusInternalServerError, gin.H{
			"error":   apperrors.PushNotConfigured,
			"message": err.Error(),
		}
	}
	return http.StatusInternalServerError, gin.H{
		"error":   apperrors.InternalServerError,
		"message": err.Error(),
	}
}

// notFoundContext names the entity a not-found sentinel refers to.
func notFoundContext(err error, fallback string) string {
	switch {
	case errors.Is(err, service.ErrSpecialistNotFound):
		return "specialist"
	case errors.Is(err, service.ErrPhotoNotFound):
		return "photo"
	case errors.Is(err, service.ErrVenueNotFound):
		return "venue"
	}
	return fallback
}

func respondServiceError(c *gin.Context, err error, context string) {
	status, body := serviceErrorBody(err, context)
	c.JSON(status, body)
}

func respondInvalidBody(c *gin.Context, err error) {
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "İstek gövdesi okunamadı: "+err.Error())
}
