package reservations

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListByCompany(ctx context.Context, filter domain.CompanyReservationsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
	DeleteByClient(ctx context.Context, clientID int64) error
	DeleteByCompany(ctx context.Context, companyID int64) error
}

// CatalogRepository интерфейс репозитория компаний и клиентов
type CatalogRepository interface {
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	NotifyReservationCancelled(ctx context.Context, reservation *domain.Reservation, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
