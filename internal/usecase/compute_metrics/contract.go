package compute_metrics

import (
	"context"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	AggregateMonthly(ctx context.Context, companyID int64, from, to time.Time) ([]reservationRepo.MonthlyAggregate, error)
	CountDistinctClients(ctx context.Context, companyID int64, from, to time.Time) (int, error)
}

// CatalogRepository интерфейс репозитория компаний
type CatalogRepository interface {
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
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
