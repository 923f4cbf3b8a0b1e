package get_proprietor_notifications

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	GetProprietorNotifications(ctx context.Context, proprietorID int64) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
