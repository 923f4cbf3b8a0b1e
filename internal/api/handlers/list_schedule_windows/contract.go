package list_schedule_windows

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
