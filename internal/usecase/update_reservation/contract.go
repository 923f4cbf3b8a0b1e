package update_reservation

import (
	"context"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	CountForServiceAndDate(ctx context.Context, serviceID int64, date time.Time) (int, error)
}

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	List(ctx context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error)
}

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
