package notifications

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Notification, error)
	ListByProprietor(ctx context.Context, proprietorID int64) ([]*domain.Notification, error)
	GetSettings(ctx context.Context, companyID int64) (*domain.NotificationSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error)
}

// CatalogRepository интерфейс репозитория компаний и клиентов
type CatalogRepository interface {
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
