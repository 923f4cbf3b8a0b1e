package delete_schedule_window

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	DeleteWindow(ctx context.Context, req *models.DeleteWindowRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
