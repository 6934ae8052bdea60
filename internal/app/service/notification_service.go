package service

import (
	"context"

	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"github.com/emx/guzellikharitam-backend/pkg/push/fcm"
)

// PushSender delivers one message to the push gateway.
type PushSender interface {
	Send(ctx context.Context, msg fcm.Message) (*fcm.Response, error)
}

type NotificationService interface {
	// SendPush relays the message and returns the gateway JSON verbatim.
	SendPush(ctx context.Context, msg fcm.Message) (*fcm.Response, error)
}

type notificationService struct {
	sender PushSender
}

// NewNotificationService accepts a nil sender when no server key is configured;
// every send then fails with ErrPushNotConfigured.
func NewNotificationService(sender PushSender) NotificationService {
	return &notificationService{sender: sender}
}

func (s *notificationService) SendPush(ctx context.Context, msg fcm.Message) (*fcm.Response, error) {
	if s.sender == nil {
		logger.Error("Push relay called without server key", ErrPushNotConfigured)
		return nil, ErrPushNotConfigured
	}

	resp, err := s.sender.Send(ctx, msg)
	if err != nil {
		logger.Error("Failed to relay push notification", err, map[string]interface{}{
			"title": msg.Title,
		})
		return nil, err
	}

	logger.Info("Push notification relayed", map[string]interface{}{
		"gateway_status": resp.StatusCode,
	})
	return resp, nil
}
