package controller

import (
	"errors"
	"net/http"

	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/emx/guzellikharitam-backend/pkg/push/fcm"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

type SendPushRequest struct {
	Token string                 `json:"token"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
}

// SendPush relays one notification and answers with the gateway JSON untouched.
// The token is forwarded as given; the gateway reports unknown or empty tokens itself.
// Any failure other than a missing server key answers 400.
// POST /api/v1/notifications/send
func (ctrl *NotificationController) SendPush(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid push request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ctrl.notificationService.SendPush(c.Request.Context(), fcm.Message{
		Token: req.Token,
		Title: req.Title,
		Body:  req.Body,
		Data:  req.Data,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrPushNotConfigured) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
}
