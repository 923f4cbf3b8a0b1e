package get_client_notifications

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	GetClientNotifications(ctx context.Context, clientID int64) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
