package create_reservation

import (
	"context"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	CountForServiceAndDate(ctx context.Context, serviceID int64, date time.Time) (int, error)
}

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	List(ctx context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error)
}

// CatalogRepository интерфейс репозитория компаний, услуг и клиентов
type CatalogRepository interface {
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
}

// Notifier интерфейс диспетчера уведомлений
// Вызывается после коммита; ошибка уведомления не откатывает бронирование
type Notifier interface {
	NotifyReservationCreated(ctx context.Context, reservation *domain.Reservation) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
