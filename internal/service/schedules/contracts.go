package schedules

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	Create(ctx context.Context, window *domain.ScheduleWindow) (*domain.ScheduleWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleWindow, error)
	List(ctx context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error)
	FindOrphans(ctx context.Context) ([]*domain.ScheduleWindow, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCompany(ctx context.Context, companyID int64) error
}

// CatalogRepository интерфейс репозитория компаний и услуг
type CatalogRepository interface {
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
