package get_notification_settings

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	GetSettings(ctx context.Context, companyID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
