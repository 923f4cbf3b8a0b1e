package create_notification

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	Notify(ctx context.Context, req *models.NotifyRequest) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
