package check_availability

import (
	"context"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория компаний и услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	List(ctx context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountForServiceAndDate(ctx context.Context, serviceID int64, date time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
