package find_schedule_orphans

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

type ScheduleService interface {
	FindOrphans(ctx context.Context) (*models.OrphanResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
