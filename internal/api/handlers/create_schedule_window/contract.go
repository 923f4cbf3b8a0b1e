package create_schedule_window

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
