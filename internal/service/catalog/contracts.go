package catalog

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория компаний, услуг и клиентов
type CatalogRepository interface {
	CreateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	UpdateCompany(ctx context.Context, company *domain.Company) error
	DeleteCompany(ctx context.Context, id int64) error

	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, companyID int64) ([]*domain.Service, error)
	DeleteService(ctx context.Context, id int64) error

	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// ReservationCascader каскадно удаляет бронирования при удалении владельца
type ReservationCascader interface {
	DeleteByClient(ctx context.Context, clientID int64) error
	DeleteByCompany(ctx context.Context, companyID int64) error
}

// ScheduleCascader каскадно удаляет рабочие окна при удалении компании
type ScheduleCascader interface {
	DeleteByCompany(ctx context.Context, companyID int64) error
}

// PasswordHasher хэширует пароли при регистрации
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
